package services

import (
	"context"
	"strings"
	"time"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"github.com/SundayYogurt/projecthub/internal/repository"
	"go.uber.org/zap"
)

type TaskService interface {
	List(ctx context.Context, profileID uint, projectID string, page dto.PageRequest) ([]dto.TaskResponse, int64, error)
	Create(ctx context.Context, profileID uint, projectID string, input dto.CreateTaskRequest) (dto.TaskResponse, error)
	Get(ctx context.Context, profileID uint, projectID, taskID string) (dto.TaskResponse, error)
	Update(ctx context.Context, profileID uint, projectID, taskID string, input dto.UpdateTaskRequest) (dto.TaskResponse, error)
	Delete(ctx context.Context, profileID uint, projectID, taskID string) error
}

type taskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	members  repository.MembershipRepository
	log      *zap.Logger
	now      func() time.Time
}

func NewTaskService(
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
	members repository.MembershipRepository,
	log *zap.Logger,
) TaskService {
	return &taskService{
		tasks:    tasks,
		projects: projects,
		members:  members,
		log:      log.Named("tasks"),
		now:      time.Now,
	}
}

// Tasks are visible to every member, viewers included.
func (s *taskService) readable(ctx context.Context, profileID uint, projectID string) (projectAccess, error) {
	access, err := loadAccess(ctx, s.projects, s.members, projectID, profileID)
	if err != nil {
		return projectAccess{}, err
	}
	if !access.IsMember() {
		return projectAccess{}, access.deny()
	}
	return access, nil
}

func (s *taskService) writable(ctx context.Context, profileID uint, projectID string) (projectAccess, error) {
	access, err := loadAccess(ctx, s.projects, s.members, projectID, profileID)
	if err != nil {
		return projectAccess{}, err
	}
	if !access.CanWrite() {
		return projectAccess{}, access.deny()
	}
	return access, nil
}

func (s *taskService) List(ctx context.Context, profileID uint, projectID string, page dto.PageRequest) ([]dto.TaskResponse, int64, error) {
	if _, err := s.readable(ctx, profileID, projectID); err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.tasks.ListForProject(ctx, projectID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, dto.NewTaskResponse(t))
	}
	return out, total, nil
}

// Create requires the assignee, when given, to hold a membership on the
// project and the due date to be no earlier than the creation time.
func (s *taskService) Create(ctx context.Context, profileID uint, projectID string, input dto.CreateTaskRequest) (dto.TaskResponse, error) {
	if _, err := s.writable(ctx, profileID, projectID); err != nil {
		return dto.TaskResponse{}, err
	}
	if err := helper.ValidateStruct(input); err != nil {
		return dto.TaskResponse{}, err
	}

	creator := profileID
	task := &domain.Task{
		ProjectID:   projectID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		AssigneeID:  input.AssigneeID,
		CreatedByID: &creator,
		Status:      domain.TaskTodo,
		Priority:    domain.PriorityMedium,
		DueDate:     input.DueDate,
		CreatedAt:   s.now().UTC(),
	}
	if input.Priority != "" {
		task.Priority = domain.TaskPriority(input.Priority)
	}
	if task.DueBeforeCreation() {
		return dto.TaskResponse{}, domain.ErrInvalidDueDate
	}
	if err := s.checkAssignee(ctx, projectID, task.AssigneeID); err != nil {
		return dto.TaskResponse{}, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return dto.TaskResponse{}, err
	}
	s.log.Info("task created", zap.String("task_id", task.ID), zap.String("project_id", projectID))
	return dto.NewTaskResponse(*task), nil
}

func (s *taskService) checkAssignee(ctx context.Context, projectID string, assigneeID *uint) error {
	if assigneeID == nil {
		return nil
	}
	role, err := s.members.RoleOf(ctx, projectID, *assigneeID)
	if err != nil {
		return err
	}
	if role == "" {
		return domain.ErrNotAMember
	}
	return nil
}

func (s *taskService) Get(ctx context.Context, profileID uint, projectID, taskID string) (dto.TaskResponse, error) {
	if _, err := s.readable(ctx, profileID, projectID); err != nil {
		return dto.TaskResponse{}, err
	}
	task, err := s.tasks.FindByID(ctx, projectID, taskID)
	if err != nil {
		return dto.TaskResponse{}, err
	}
	return dto.NewTaskResponse(*task), nil
}

func (s *taskService) Update(ctx context.Context, profileID uint, projectID, taskID string, input dto.UpdateTaskRequest) (dto.TaskResponse, error) {
	if _, err := s.writable(ctx, profileID, projectID); err != nil {
		return dto.TaskResponse{}, err
	}
	if err := helper.ValidateStruct(input); err != nil {
		return dto.TaskResponse{}, err
	}

	current, err := s.tasks.FindByID(ctx, projectID, taskID)
	if err != nil {
		return dto.TaskResponse{}, err
	}

	fields := map[string]any{}
	if input.Title != nil {
		fields["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Status != nil {
		fields["status"] = domain.TaskStatus(*input.Status)
	}
	if input.Priority != nil {
		fields["priority"] = domain.TaskPriority(*input.Priority)
	}
	if input.DueDate != nil {
		if input.DueDate.Before(current.CreatedAt) {
			return dto.TaskResponse{}, domain.ErrInvalidDueDate
		}
		fields["due_date"] = *input.DueDate
	}
	if input.AssigneeID != nil {
		if err := s.checkAssignee(ctx, projectID, input.AssigneeID); err != nil {
			return dto.TaskResponse{}, err
		}
		fields["assignee_id"] = *input.AssigneeID
	}

	task, err := s.tasks.Update(ctx, projectID, taskID, fields)
	if err != nil {
		return dto.TaskResponse{}, err
	}
	return dto.NewTaskResponse(*task), nil
}

func (s *taskService) Delete(ctx context.Context, profileID uint, projectID, taskID string) error {
	if _, err := s.writable(ctx, profileID, projectID); err != nil {
		return err
	}
	if err := s.tasks.SoftDelete(ctx, projectID, taskID, s.now().UTC()); err != nil {
		return err
	}
	s.log.Info("task deleted", zap.String("task_id", taskID), zap.Uint("by", profileID))
	return nil
}
