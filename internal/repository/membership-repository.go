package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"gorm.io/gorm"
)

type MembershipRepository interface {
	Add(ctx context.Context, projectID string, profileID uint, role domain.Role) (*domain.Membership, error)
	RoleOf(ctx context.Context, projectID string, profileID uint) (domain.Role, error)
	ListForProject(ctx context.Context, projectID string, roles ...domain.Role) ([]domain.Membership, error)
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository binds the store to db, which may be a transaction.
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Add(ctx context.Context, projectID string, profileID uint, role domain.Role) (*domain.Membership, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrInvalidInput)
	}

	m := &domain.Membership{
		ProjectID: projectID,
		ProfileID: profileID,
		Role:      role,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateMembership
		}
		return nil, fmt.Errorf("add membership: %w", err)
	}
	return m, nil
}

// RoleOf returns the profile's role on the project, or "" when there is no
// membership row.
func (r *membershipRepository) RoleOf(ctx context.Context, projectID string, profileID uint) (domain.Role, error) {
	var m domain.Membership
	err := r.db.WithContext(ctx).
		Select("role").
		Where("project_id = ? AND profile_id = ?", projectID, profileID).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("role of: %w", err)
	}
	return m.Role, nil
}

// ListForProject returns the members holding any of roles, oldest first.
// No roles means every member.
func (r *membershipRepository) ListForProject(ctx context.Context, projectID string, roles ...domain.Role) ([]domain.Membership, error) {
	q := r.db.WithContext(ctx).Preload("Profile").Where("project_id = ?", projectID)
	if len(roles) > 0 {
		q = q.Where("role IN ?", roles)
	}

	var members []domain.Membership
	if err := q.Order("joined_at ASC").Order("id ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}
