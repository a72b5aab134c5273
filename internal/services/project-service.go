package services

import (
	"context"
	"strings"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"github.com/SundayYogurt/projecthub/internal/repository"
	"go.uber.org/zap"
)

type ProjectService interface {
	ListPublic(ctx context.Context, page dto.PageRequest) ([]dto.ProjectResponse, int64, error)
	ListVisible(ctx context.Context, profileID uint, page dto.PageRequest) ([]dto.ProjectResponse, int64, error)
	Create(ctx context.Context, profileID uint, input dto.CreateProjectRequest) (dto.ProjectResponse, error)
	Get(ctx context.Context, profileID uint, projectID string) (dto.ProjectResponse, error)
	Update(ctx context.Context, profileID uint, projectID string, input dto.UpdateProjectRequest) (dto.ProjectResponse, error)
	Delete(ctx context.Context, profileID uint, projectID string) error
	ListMembers(ctx context.Context, profileID uint, projectID string, roles []domain.Role) ([]dto.MemberResponse, error)
}

type projectService struct {
	projects repository.ProjectRepository
	members  repository.MembershipRepository
	log      *zap.Logger
}

func NewProjectService(
	projects repository.ProjectRepository,
	members repository.MembershipRepository,
	log *zap.Logger,
) ProjectService {
	return &projectService{
		projects: projects,
		members:  members,
		log:      log.Named("projects"),
	}
}

func (s *projectService) ListPublic(ctx context.Context, page dto.PageRequest) ([]dto.ProjectResponse, int64, error) {
	projects, total, err := s.projects.ListPublic(ctx, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.NewProjectResponse(p, ""))
	}
	return out, total, nil
}

func (s *projectService) ListVisible(ctx context.Context, profileID uint, page dto.PageRequest) ([]dto.ProjectResponse, int64, error) {
	rows, total, err := s.projects.ListVisible(ctx, profileID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ProjectResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.NewProjectResponse(row.Project, row.ViewerRole))
	}
	return out, total, nil
}

func (s *projectService) Create(ctx context.Context, profileID uint, input dto.CreateProjectRequest) (dto.ProjectResponse, error) {
	if err := helper.ValidateStruct(input); err != nil {
		return dto.ProjectResponse{}, err
	}

	project := &domain.Project{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		OwnerID:     profileID,
		Visibility:  domain.Visibility(input.Visibility),
	}
	if err := s.projects.CreateWithOwner(ctx, project); err != nil {
		return dto.ProjectResponse{}, err
	}

	s.log.Info("project created", zap.String("project_id", project.ID), zap.Uint("owner_id", profileID))
	return dto.NewProjectResponse(*project, domain.RoleOwner), nil
}

func (s *projectService) Get(ctx context.Context, profileID uint, projectID string) (dto.ProjectResponse, error) {
	access, err := loadAccess(ctx, s.projects, s.members, projectID, profileID)
	if err != nil {
		return dto.ProjectResponse{}, err
	}
	if !access.CanRead() {
		return dto.ProjectResponse{}, domain.ErrProjectNotFound
	}
	return dto.NewProjectResponse(*access.project, access.role), nil
}

func (s *projectService) Update(ctx context.Context, profileID uint, projectID string, input dto.UpdateProjectRequest) (dto.ProjectResponse, error) {
	access, err := loadAccess(ctx, s.projects, s.members, projectID, profileID)
	if err != nil {
		return dto.ProjectResponse{}, err
	}
	if !access.CanManage() {
		return dto.ProjectResponse{}, access.deny()
	}
	if err := helper.ValidateStruct(input); err != nil {
		return dto.ProjectResponse{}, err
	}

	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Visibility != nil {
		fields["visibility"] = domain.Visibility(*input.Visibility)
	}

	project, err := s.projects.Update(ctx, projectID, fields)
	if err != nil {
		return dto.ProjectResponse{}, err
	}
	return dto.NewProjectResponse(*project, access.role), nil
}

func (s *projectService) Delete(ctx context.Context, profileID uint, projectID string) error {
	access, err := loadAccess(ctx, s.projects, s.members, projectID, profileID)
	if err != nil {
		return err
	}
	if !access.CanManage() {
		return access.deny()
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	s.log.Info("project deleted", zap.String("project_id", projectID), zap.Uint("by", profileID))
	return nil
}

func (s *projectService) ListMembers(ctx context.Context, profileID uint, projectID string, roles []domain.Role) ([]dto.MemberResponse, error) {
	access, err := loadAccess(ctx, s.projects, s.members, projectID, profileID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead() {
		return nil, domain.ErrProjectNotFound
	}

	for _, r := range roles {
		if !r.Valid() {
			ve := domain.NewValidationError()
			ve.Add("role", "Must be one of: owner, admin, member, viewer.")
			return nil, ve
		}
	}

	members, err := s.members.ListForProject(ctx, projectID, roles...)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, dto.NewMemberResponse(m))
	}
	return out, nil
}
