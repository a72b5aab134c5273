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

type AccountRepository interface {
	CreateWithProfile(ctx context.Context, account *domain.Account, profile *domain.Profile) error
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id uint) (*domain.Account, error)
	FindByResetTokenHash(ctx context.Context, hash string) (*domain.Account, error)
	Save(ctx context.Context, account *domain.Account) error
	MarkVerified(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// CreateWithProfile inserts the account and its profile in one transaction,
// so an account never exists without a profile.
func (r *accountRepository) CreateWithProfile(ctx context.Context, account *domain.Account, profile *domain.Profile) error {
	if account == nil || profile == nil {
		return errors.New("nil account or profile")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(account).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return domain.ErrEmailTaken
			}
			return fmt.Errorf("create account: %w", err)
		}

		profile.AccountID = account.ID
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		account.Profile = profile
		return nil
	})
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, "email = ?", domain.NormalizeEmail(email))
}

func (r *accountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *accountRepository) FindByResetTokenHash(ctx context.Context, hash string) (*domain.Account, error) {
	return r.findOne(ctx, "reset_token_hash = ?", hash)
}

func (r *accountRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	account := &domain.Account{}
	err := r.db.WithContext(ctx).Preload("Profile").Where(query, args...).Take(account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

func (r *accountRepository) Save(ctx context.Context, account *domain.Account) error {
	if account == nil {
		return errors.New("nil account")
	}
	if err := r.db.WithContext(ctx).Omit("Profile").Save(account).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// MarkVerified flips is_verified only while it is still false, so two
// concurrent activations cannot both succeed.
func (r *accountRepository) MarkVerified(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&domain.Account{}).
		Where("id = ? AND is_verified = ?", id, false).
		Updates(map[string]any{"is_verified": true, "is_active": true})
	if res.Error != nil {
		return fmt.Errorf("mark verified: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyVerified
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return purgeAccounts(tx, []uint{id})
	})
}

// DeleteUnverifiedBefore removes every unverified account created before
// cutoff together with everything hanging off its profile.
func (r *accountRepository) DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Account{}).
		Where("is_verified = ? AND created_at < ?", false, cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("find unverified accounts: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return purgeAccounts(tx, ids)
	})
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

// purgeAccounts deletes dependents explicitly instead of relying on the
// driver honouring ON DELETE CASCADE.
func purgeAccounts(tx *gorm.DB, accountIDs []uint) error {
	profiles := tx.Model(&domain.Profile{}).Select("id").Where("account_id IN ?", accountIDs)
	owned := tx.Model(&domain.Project{}).Select("id").Where("owner_id IN (?)", profiles)

	steps := []struct {
		name string
		run  func() error
	}{
		{"owned project tasks", func() error {
			return tx.Where("project_id IN (?)", owned).Delete(&domain.Task{}).Error
		}},
		{"owned project invitations", func() error {
			return tx.Where("project_id IN (?)", owned).Delete(&domain.Invitation{}).Error
		}},
		{"owned project memberships", func() error {
			return tx.Where("project_id IN (?)", owned).Delete(&domain.Membership{}).Error
		}},
		{"owned projects", func() error {
			return tx.Where("owner_id IN (?)", profiles).Delete(&domain.Project{}).Error
		}},
		{"invitations", func() error {
			return tx.Where("invitee_id IN (?) OR invited_by_id IN (?)", profiles, profiles).Delete(&domain.Invitation{}).Error
		}},
		{"memberships", func() error {
			return tx.Where("profile_id IN (?)", profiles).Delete(&domain.Membership{}).Error
		}},
		{"task assignees", func() error {
			return tx.Model(&domain.Task{}).Where("assignee_id IN (?)", profiles).Update("assignee_id", nil).Error
		}},
		{"task creators", func() error {
			return tx.Model(&domain.Task{}).Where("created_by_id IN (?)", profiles).Update("created_by_id", nil).Error
		}},
		{"email change requests", func() error {
			return tx.Where("account_id IN ?", accountIDs).Delete(&domain.EmailChangeRequest{}).Error
		}},
		{"profiles", func() error {
			return tx.Where("account_id IN ?", accountIDs).Delete(&domain.Profile{}).Error
		}},
		{"accounts", func() error {
			return tx.Where("id IN ?", accountIDs).Delete(&domain.Account{}).Error
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("delete %s: %w", step.name, err)
		}
	}
	return nil
}
