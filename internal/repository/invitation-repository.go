package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"gorm.io/gorm"
)

// InvitationKey identifies an invitation together with the facts the
// invitee's token asserts about it. A transition only applies when every
// field still matches the stored row.
type InvitationKey struct {
	ID        string
	ProjectID string
	InviteeID uint
	Role      domain.Role
}

type InvitationRepository interface {
	CreatePending(ctx context.Context, inv *domain.Invitation, now time.Time, ttl time.Duration) error
	Accept(ctx context.Context, key InvitationKey) (*domain.Membership, error)
	Revoke(ctx context.Context, key InvitationKey) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Invitation, error)
	ListForProject(ctx context.Context, projectID string) ([]domain.Invitation, error)
	ListPendingForInvitee(ctx context.Context, profileID uint, createdAfter time.Time) ([]domain.Invitation, error)
}

type invitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

// CreatePending inserts a pending invitation for the (project, invitee) pair.
// A live pending row for the pair is a duplicate. Any other existing row
// (accepted, revoked, or pending past ttl) is replaced so the unique pair
// index keeps holding.
func (r *invitationRepository) CreatePending(ctx context.Context, inv *domain.Invitation, now time.Time, ttl time.Duration) error {
	if inv == nil {
		return errors.New("nil invitation")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Invitation
		err := tx.Where("project_id = ? AND invitee_id = ?", inv.ProjectID, inv.InviteeID).Take(&existing).Error
		switch {
		case err == nil:
			if existing.Status == domain.InvitationPending && !existing.IsStale(now, ttl) {
				return domain.ErrDuplicateInvitation
			}
			if err := tx.Where("id = ?", existing.ID).Delete(&domain.Invitation{}).Error; err != nil {
				return fmt.Errorf("replace stale invitation: %w", err)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("find invitation: %w", err)
		}

		inv.Status = domain.InvitationPending
		if inv.CreatedAt.IsZero() {
			inv.CreatedAt = now
		}
		if err := tx.Omit("Project", "Invitee", "InvitedBy").Create(inv).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return domain.ErrDuplicateInvitation
			}
			return fmt.Errorf("create invitation: %w", err)
		}
		return nil
	})
}

// Accept moves the invitation from pending to accepted and inserts the
// membership in the same transaction. The conditional update makes the
// transition happen at most once; a concurrent loser sees zero rows.
func (r *invitationRepository) Accept(ctx context.Context, key InvitationKey) (*domain.Membership, error) {
	var membership *domain.Membership

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := transition(tx, key, domain.InvitationAccepted); err != nil {
			return err
		}

		m, err := NewMembershipRepository(tx).Add(ctx, key.ProjectID, key.InviteeID, key.Role)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateMembership) {
				return domain.ErrAlreadyMember
			}
			return err
		}
		membership = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

func (r *invitationRepository) Revoke(ctx context.Context, key InvitationKey) error {
	return transition(r.db.WithContext(ctx), key, domain.InvitationRevoked)
}

func transition(db *gorm.DB, key InvitationKey, to domain.InvitationStatus) error {
	res := db.Model(&domain.Invitation{}).
		Where("id = ? AND project_id = ? AND invitee_id = ? AND role = ? AND status = ?",
			key.ID, key.ProjectID, key.InviteeID, key.Role, domain.InvitationPending).
		Update("status", to)
	if res.Error != nil {
		return fmt.Errorf("update invitation status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvitationNotFound
	}
	return nil
}

func (r *invitationRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Invitation{}).Error; err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}

func (r *invitationRepository) FindByID(ctx context.Context, id string) (*domain.Invitation, error) {
	var inv domain.Invitation
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	return &inv, nil
}

func (r *invitationRepository) ListForProject(ctx context.Context, projectID string) ([]domain.Invitation, error) {
	var invs []domain.Invitation
	err := r.db.WithContext(ctx).
		Preload("Invitee").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&invs).Error
	if err != nil {
		return nil, fmt.Errorf("list project invitations: %w", err)
	}
	return invs, nil
}

func (r *invitationRepository) ListPendingForInvitee(ctx context.Context, profileID uint, createdAfter time.Time) ([]domain.Invitation, error) {
	var invs []domain.Invitation
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("invitee_id = ? AND status = ? AND created_at > ?", profileID, domain.InvitationPending, createdAfter).
		Order("created_at DESC").
		Find(&invs).Error
	if err != nil {
		return nil, fmt.Errorf("list my invitations: %w", err)
	}
	return invs, nil
}
