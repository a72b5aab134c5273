package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"github.com/SundayYogurt/projecthub/internal/interfaces"
	"github.com/SundayYogurt/projecthub/internal/repository"
	"github.com/SundayYogurt/projecthub/pkg/utils"
	"go.uber.org/zap"
)

const (
	avatarFolder   = "projecthub/avatars"
	avatarMaxWidth = 512
	avatarQuality  = 85
)

var ErrUploaderDisabled = errors.New("avatar upload is not configured")

type ProfileService interface {
	GetMe(ctx context.Context, accountID uint) (dto.ProfileResponse, error)
	UpdateMe(ctx context.Context, accountID uint, input dto.UpdateProfileRequest) (dto.ProfileResponse, error)
	UploadAvatar(ctx context.Context, accountID uint, image []byte) (dto.ProfileResponse, error)
}

type profileService struct {
	accounts repository.AccountRepository
	profiles repository.ProfileRepository
	uploader interfaces.Uploader
	log      *zap.Logger
}

// NewProfileService accepts a nil uploader; avatar uploads then fail with
// ErrUploaderDisabled.
func NewProfileService(
	accounts repository.AccountRepository,
	profiles repository.ProfileRepository,
	uploader interfaces.Uploader,
	log *zap.Logger,
) ProfileService {
	return &profileService{
		accounts: accounts,
		profiles: profiles,
		uploader: uploader,
		log:      log.Named("profiles"),
	}
}

func (s *profileService) GetMe(ctx context.Context, accountID uint) (dto.ProfileResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	if account.Profile == nil {
		return dto.ProfileResponse{}, domain.ErrProfileNotFound
	}
	return dto.NewProfileResponse(*account.Profile, account.Email), nil
}

func (s *profileService) UpdateMe(ctx context.Context, accountID uint, input dto.UpdateProfileRequest) (dto.ProfileResponse, error) {
	if err := helper.ValidateStruct(input); err != nil {
		return dto.ProfileResponse{}, err
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	if account.Profile == nil {
		return dto.ProfileResponse{}, domain.ErrProfileNotFound
	}

	fields := map[string]any{}
	if input.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.Description != nil {
		fields["description"] = strings.TrimSpace(*input.Description)
	}

	profile, err := s.profiles.Update(ctx, account.Profile.ID, fields)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	return dto.NewProfileResponse(*profile, account.Email), nil
}

// UploadAvatar normalises the image to a bounded JPEG before upload so EXIF
// rotation and oversized originals never reach the CDN.
func (s *profileService) UploadAvatar(ctx context.Context, accountID uint, image []byte) (dto.ProfileResponse, error) {
	if s.uploader == nil {
		return dto.ProfileResponse{}, ErrUploaderDisabled
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	if account.Profile == nil {
		return dto.ProfileResponse{}, domain.ErrProfileNotFound
	}

	jpg, err := utils.NormalizeToJPG(image, avatarMaxWidth, avatarQuality)
	if err != nil {
		s.log.Debug("avatar rejected", zap.Uint("account_id", accountID), zap.Error(err))
		return dto.ProfileResponse{}, domain.ErrInvalidImage
	}

	url, err := s.uploader.UploadBytes(ctx, avatarFolder, fmt.Sprintf("profile_%d", account.Profile.ID), jpg)
	if err != nil {
		return dto.ProfileResponse{}, fmt.Errorf("upload avatar: %w", err)
	}

	profile, err := s.profiles.Update(ctx, account.Profile.ID, map[string]any{"avatar_url": url})
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	s.log.Info("avatar updated", zap.Uint("profile_id", profile.ID))
	return dto.NewProfileResponse(*profile, account.Email), nil
}
