package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Profile, error)
	FindByAccountID(ctx context.Context, accountID uint) (*domain.Profile, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*domain.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(ctx context.Context, id uint) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).Take(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

func (r *profileRepository) FindByAccountID(ctx context.Context, accountID uint) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, id uint, fields map[string]any) (*domain.Profile, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.Profile{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, fmt.Errorf("update profile: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrProfileNotFound
		}
	}
	return r.FindByID(ctx, id)
}
