package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"gorm.io/gorm"
)

type EmailChangeRepository interface {
	Create(ctx context.Context, req *domain.EmailChangeRequest) error
	FindLatestPending(ctx context.Context, accountID uint) (*domain.EmailChangeRequest, error)
	Confirm(ctx context.Context, req *domain.EmailChangeRequest) error
	Delete(ctx context.Context, id uint) error
}

type emailChangeRepository struct {
	db *gorm.DB
}

func NewEmailChangeRepository(db *gorm.DB) EmailChangeRepository {
	return &emailChangeRepository{db: db}
}

// Create supersedes any unconfirmed request of the same account.
func (r *emailChangeRepository) Create(ctx context.Context, req *domain.EmailChangeRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ? AND is_verified = ?", req.AccountID, false).
			Delete(&domain.EmailChangeRequest{}).Error; err != nil {
			return fmt.Errorf("drop previous email change: %w", err)
		}
		if err := tx.Omit("Account").Create(req).Error; err != nil {
			return fmt.Errorf("create email change: %w", err)
		}
		return nil
	})
}

func (r *emailChangeRepository) FindLatestPending(ctx context.Context, accountID uint) (*domain.EmailChangeRequest, error) {
	var req domain.EmailChangeRequest
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND is_verified = ?", accountID, false).
		Order("created_at DESC").
		Take(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCode
		}
		return nil, fmt.Errorf("find email change: %w", err)
	}
	return &req, nil
}

// Confirm marks the request verified and moves the account to the new
// address atomically.
func (r *emailChangeRepository) Confirm(ctx context.Context, req *domain.EmailChangeRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.EmailChangeRequest{}).
			Where("id = ? AND is_verified = ?", req.ID, false).
			Update("is_verified", true)
		if res.Error != nil {
			return fmt.Errorf("confirm email change: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidCode
		}

		err := tx.Model(&domain.Account{}).Where("id = ?", req.AccountID).
			Update("email", domain.NormalizeEmail(req.NewEmail)).Error
		if err != nil {
			if helper.IsUniqueViolation(err) {
				return domain.ErrEmailTaken
			}
			return fmt.Errorf("update email: %w", err)
		}
		return nil
	})
}

func (r *emailChangeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.EmailChangeRequest{}).Error; err != nil {
		return fmt.Errorf("delete email change: %w", err)
	}
	return nil
}
