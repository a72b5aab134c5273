package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"gorm.io/gorm"
)

// VisibleProject is a project row annotated with the viewer's role on it.
type VisibleProject struct {
	domain.Project
	ViewerRole domain.Role
}

type ProjectRepository interface {
	CreateWithOwner(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	ListPublic(ctx context.Context, limit, offset int) ([]domain.Project, int64, error)
	ListVisible(ctx context.Context, profileID uint, limit, offset int) ([]VisibleProject, int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// CreateWithOwner stores the project and the owner's OWNER membership
// in one transaction.
func (r *projectRepository) CreateWithOwner(ctx context.Context, project *domain.Project) error {
	if project == nil || project.OwnerID == 0 {
		return errors.New("project needs an owner")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Owner").Create(project).Error; err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		if _, err := NewMembershipRepository(tx).Add(ctx, project.ID, project.OwnerID, domain.RoleOwner); err != nil {
			return err
		}
		return nil
	})
}

func (r *projectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}

func (r *projectRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Project, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.Project{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, fmt.Errorf("update project: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrProjectNotFound
		}
	}
	return r.FindByID(ctx, id)
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&domain.Task{}, &domain.Invitation{}, &domain.Membership{}} {
			if err := tx.Where("project_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("delete project dependents: %w", err)
			}
		}

		res := tx.Where("id = ?", id).Delete(&domain.Project{})
		if res.Error != nil {
			return fmt.Errorf("delete project: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrProjectNotFound
		}
		return nil
	})
}

func (r *projectRepository) ListPublic(ctx context.Context, limit, offset int) ([]domain.Project, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.Project{}).Where("visibility = ?", domain.VisibilityPublic)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count public projects: %w", err)
	}

	var projects []domain.Project
	err := base().Order("created_at DESC").Order("id").Limit(limit).Offset(offset).Find(&projects).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list public projects: %w", err)
	}
	return projects, total, nil
}

// visibleRoles are the membership roles that put a project on a member's
// list. Viewers reach projects by id only.
var visibleRoles = []domain.Role{domain.RoleOwner, domain.RoleAdmin, domain.RoleMember}

// ListVisible returns the projects the profile owns or holds a non-viewer
// membership on, each with the profile's role, in a single joined query.
func (r *projectRepository) ListVisible(ctx context.Context, profileID uint, limit, offset int) ([]VisibleProject, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.Project{}).
			Joins("LEFT JOIN memberships ON memberships.project_id = projects.id AND memberships.profile_id = ?", profileID).
			Where("projects.owner_id = ? OR memberships.role IN ?", profileID, visibleRoles)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count visible projects: %w", err)
	}

	var rows []VisibleProject
	err := base().
		Select("projects.*, CASE WHEN projects.owner_id = ? THEN 'owner' ELSE memberships.role END AS viewer_role", profileID).
		Order("projects.created_at DESC").
		Order("projects.id").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list visible projects: %w", err)
	}
	return rows, total, nil
}
