package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, projectID, taskID string) (*domain.Task, error)
	ListForProject(ctx context.Context, projectID string, limit, offset int) ([]domain.Task, int64, error)
	Update(ctx context.Context, projectID, taskID string, fields map[string]any) (*domain.Task, error)
	SoftDelete(ctx context.Context, projectID, taskID string, at time.Time) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Omit("Project", "Assignee", "CreatedBy").Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *taskRepository) live(ctx context.Context, projectID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("project_id = ? AND is_deleted = ?", projectID, false)
}

func (r *taskRepository) FindByID(ctx context.Context, projectID, taskID string) (*domain.Task, error) {
	var t domain.Task
	if err := r.live(ctx, projectID).Where("id = ?", taskID).Take(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &t, nil
}

// ListForProject orders by due date (undated last), then priority from high
// to low, then creation time.
func (r *taskRepository) ListForProject(ctx context.Context, projectID string, limit, offset int) ([]domain.Task, int64, error) {
	var total int64
	if err := r.live(ctx, projectID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	var tasks []domain.Task
	err := r.live(ctx, projectID).
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").
		Order("due_date ASC").
		Order("CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, total, nil
}

func (r *taskRepository) Update(ctx context.Context, projectID, taskID string, fields map[string]any) (*domain.Task, error) {
	if len(fields) > 0 {
		res := r.live(ctx, projectID).Where("id = ?", taskID).Updates(fields)
		if res.Error != nil {
			return nil, fmt.Errorf("update task: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrTaskNotFound
		}
	}
	return r.FindByID(ctx, projectID, taskID)
}

func (r *taskRepository) SoftDelete(ctx context.Context, projectID, taskID string, at time.Time) error {
	res := r.live(ctx, projectID).Where("id = ?", taskID).
		Updates(map[string]any{"is_deleted": true, "deleted_at": at})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
