package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SundayYogurt/projecthub/config"
	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"github.com/SundayYogurt/projecthub/internal/helper/utils"
	"github.com/SundayYogurt/projecthub/internal/repository"
	"go.uber.org/zap"
)

type AccountService interface {
	Register(ctx context.Context, input dto.RegisterRequest) (dto.RegisterResponse, error)
	Activate(ctx context.Context, token string) error
	ResendActivation(ctx context.Context, email string) error
	Login(ctx context.Context, input dto.UserLogin) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, accountID uint, input dto.ChangePasswordRequest) error
	RequestEmailChange(ctx context.Context, accountID uint, input dto.ChangeEmailRequest) error
	ConfirmEmailChange(ctx context.Context, accountID uint, input dto.ConfirmEmailChangeRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input dto.SetPasswordRequest) error
	SweepUnverified(ctx context.Context) (int64, error)
}

type accountService struct {
	accounts     repository.AccountRepository
	emailChanges repository.EmailChangeRepository
	codec        helper.TokenCodec
	auth         helper.Auth
	notifier     *Notifier
	cfg          config.Config
	log          *zap.Logger
	now          func() time.Time
}

func NewAccountService(
	accounts repository.AccountRepository,
	emailChanges repository.EmailChangeRepository,
	codec helper.TokenCodec,
	auth helper.Auth,
	notifier *Notifier,
	cfg config.Config,
	log *zap.Logger,
) AccountService {
	return &accountService{
		accounts:     accounts,
		emailChanges: emailChanges,
		codec:        codec,
		auth:         auth,
		notifier:     notifier,
		cfg:          cfg,
		log:          log.Named("accounts"),
		now:          time.Now,
	}
}

// Register creates the account and its profile, then publishes the
// activation mail. When the mail cannot be handed off the account is
// deleted again so the address can register later.
func (s *accountService) Register(ctx context.Context, input dto.RegisterRequest) (dto.RegisterResponse, error) {
	if err := validateNewPassword(input, input.Email); err != nil {
		return dto.RegisterResponse{}, err
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return dto.RegisterResponse{}, err
	}

	account := &domain.Account{
		Email:        domain.NormalizeEmail(input.Email),
		PasswordHash: hash,
		IsActive:     true,
	}
	profile := &domain.Profile{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
	}
	if err := s.accounts.CreateWithProfile(ctx, account, profile); err != nil {
		return dto.RegisterResponse{}, err
	}

	if err := s.sendActivation(ctx, account, profile); err != nil {
		s.log.Error("activation mail not dispatched, removing account",
			zap.Uint("account_id", account.ID),
			zap.String("email", utils.MaskEmail(account.Email)),
			zap.Error(err),
		)
		if delErr := s.accounts.Delete(context.WithoutCancel(ctx), account.ID); delErr != nil {
			s.log.Error("compensating account delete failed", zap.Uint("account_id", account.ID), zap.Error(delErr))
		}
		return dto.RegisterResponse{}, domain.ErrDeliveryFailed
	}

	s.log.Info("account registered", zap.Uint("account_id", account.ID))
	return dto.RegisterResponse{
		Email:    account.Email,
		FullName: profile.FullName(),
	}, nil
}

func validateNewPassword(input dto.RegisterRequest, email string) error {
	ve := domain.NewValidationError()
	if err := helper.ValidateStruct(input); err != nil {
		if !errors.As(err, &ve) {
			return err
		}
	}
	for _, msg := range helper.ValidatePassword(input.Password, email) {
		ve.Add("password", msg)
	}
	if input.Password != input.PasswordConfirm {
		ve.Add("password_confirm", "Passwords do not match.")
	}
	return ve.OrNil()
}

func (s *accountService) sendActivation(ctx context.Context, account *domain.Account, profile *domain.Profile) error {
	token, err := s.codec.Encode(helper.Claims{
		Purpose: helper.PurposeActivation,
		UserID:  account.ID,
		Email:   account.Email,
	}, s.cfg.ActivationTokenTTL)
	if err != nil {
		return err
	}

	var fullName string
	if profile != nil {
		fullName = profile.FullName()
	}
	return s.notifier.Publish(ctx, dto.EventActivation, dto.ActivationEvent{
		UserID:    account.ID,
		Email:     account.Email,
		FullName:  fullName,
		Token:     token,
		ExpiresAt: s.now().UTC().Add(s.cfg.ActivationTokenTTL).Format(time.RFC3339),
	})
}

func (s *accountService) Activate(ctx context.Context, token string) error {
	claims, err := s.codec.Decode(token, helper.PurposeActivation)
	if err != nil {
		return err
	}

	account, err := s.accounts.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// swept or deleted; indistinguishable from a forged token
			return domain.ErrInvalidToken
		}
		return err
	}
	if account.Email != claims.Email {
		return domain.ErrInvalidToken
	}

	if err := s.accounts.MarkVerified(ctx, account.ID); err != nil {
		return err
	}
	s.log.Info("account activated", zap.Uint("account_id", account.ID))
	return nil
}

func (s *accountService) ResendActivation(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.IsVerified {
		return domain.ErrAlreadyVerified
	}
	if err := s.sendActivation(ctx, account, account.Profile); err != nil {
		s.log.Error("activation resend failed", zap.Uint("account_id", account.ID), zap.Error(err))
		return domain.ErrDeliveryFailed
	}
	return nil
}

func (s *accountService) Login(ctx context.Context, input dto.UserLogin) (dto.LoginResponse, error) {
	if err := helper.ValidateStruct(input); err != nil {
		return dto.LoginResponse{}, err
	}

	account, err := s.accounts.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return dto.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}
	if !helper.VerifyPassword(input.Password, account.PasswordHash) || !account.IsActive {
		return dto.LoginResponse{}, domain.ErrInvalidCredentials
	}
	if !account.IsVerified {
		return dto.LoginResponse{}, domain.ErrAccountNotVerified
	}
	if account.Profile == nil {
		return dto.LoginResponse{}, domain.ErrProfileNotFound
	}

	token, err := s.auth.GenerateToken(account.ID, account.Profile.ID, account.Email)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	return dto.LoginResponse{
		Access:    token,
		UserID:    account.ID,
		UserEmail: account.Email,
	}, nil
}

func (s *accountService) ChangePassword(ctx context.Context, accountID uint, input dto.ChangePasswordRequest) error {
	if err := helper.ValidateStruct(input); err != nil {
		return err
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !helper.VerifyPassword(input.OldPassword, account.PasswordHash) {
		return domain.ErrWrongPassword
	}

	ve := domain.NewValidationError()
	for _, msg := range helper.ValidatePassword(input.NewPassword, account.Email) {
		ve.Add("new_password", msg)
	}
	if input.NewPassword != input.PasswordConfirm {
		ve.Add("password_confirm", "Passwords do not match.")
	}
	if err := ve.OrNil(); err != nil {
		return err
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	return s.accounts.Save(ctx, account)
}

// RequestEmailChange mails a 6-digit code to the new address. Only a bcrypt
// hash of the code is stored.
func (s *accountService) RequestEmailChange(ctx context.Context, accountID uint, input dto.ChangeEmailRequest) error {
	if err := helper.ValidateStruct(input); err != nil {
		return err
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	newEmail := domain.NormalizeEmail(input.NewEmail)
	ve := domain.NewValidationError()
	if newEmail == account.Email {
		ve.Add("new_email", "This is already your email address.")
	} else if _, err := s.accounts.FindByEmail(ctx, newEmail); err == nil {
		ve.Add("new_email", "This email is already in use.")
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}
	if err := ve.OrNil(); err != nil {
		return err
	}

	code, err := helper.NewNumericCode(6)
	if err != nil {
		return err
	}
	codeHash, err := helper.HashPassword(code)
	if err != nil {
		return err
	}

	req := &domain.EmailChangeRequest{
		AccountID: account.ID,
		NewEmail:  newEmail,
		CodeHash:  codeHash,
		CreatedAt: s.now().UTC(),
	}
	if err := s.emailChanges.Create(ctx, req); err != nil {
		return err
	}

	err = s.notifier.Publish(ctx, dto.EventChangeEmail, dto.ChangeEmailEvent{
		UserID:    account.ID,
		Email:     newEmail,
		Code:      code,
		ExpiresAt: req.CreatedAt.Add(s.cfg.EmailChangeTTL).Format(time.RFC3339),
	})
	if err != nil {
		s.log.Error("email change code not dispatched, removing request", zap.Uint("account_id", account.ID), zap.Error(err))
		if delErr := s.emailChanges.Delete(context.WithoutCancel(ctx), req.ID); delErr != nil {
			s.log.Error("compensating email change delete failed", zap.Uint("request_id", req.ID), zap.Error(delErr))
		}
		return domain.ErrDeliveryFailed
	}
	return nil
}

func (s *accountService) ConfirmEmailChange(ctx context.Context, accountID uint, input dto.ConfirmEmailChangeRequest) error {
	if err := helper.ValidateStruct(input); err != nil {
		return err
	}

	req, err := s.emailChanges.FindLatestPending(ctx, accountID)
	if err != nil {
		return err
	}
	if req.Expired(s.now(), s.cfg.EmailChangeTTL) {
		return domain.ErrCodeExpired
	}
	if !helper.VerifyPassword(input.Code, req.CodeHash) {
		return domain.ErrInvalidCode
	}

	if err := s.emailChanges.Confirm(ctx, req); err != nil {
		return err
	}
	s.log.Info("email changed", zap.Uint("account_id", accountID))
	return nil
}

// ForgotPassword answers the same way for unknown addresses.
func (s *accountService) ForgotPassword(ctx context.Context, email string) error {
	if err := helper.ValidateStruct(dto.ForgotPasswordRequest{Email: email}); err != nil {
		return err
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.log.Debug("password reset for unknown email", zap.String("email", utils.MaskEmail(email)))
			return nil
		}
		return err
	}

	raw, hash, err := helper.NewOpaqueToken()
	if err != nil {
		return err
	}
	expires := s.now().UTC().Add(s.cfg.ResetTokenTTL)
	account.ResetTokenHash = &hash
	account.ResetTokenExpiresAt = &expires
	if err := s.accounts.Save(ctx, account); err != nil {
		return err
	}

	err = s.notifier.Publish(ctx, dto.EventResetPassword, dto.ResetPasswordEvent{
		UserID:    account.ID,
		Email:     account.Email,
		Token:     raw,
		ExpiresAt: expires.Format(time.RFC3339),
	})
	if err != nil {
		s.log.Error("reset mail not dispatched, clearing token", zap.Uint("account_id", account.ID), zap.Error(err))
		account.ResetTokenHash = nil
		account.ResetTokenExpiresAt = nil
		if saveErr := s.accounts.Save(context.WithoutCancel(ctx), account); saveErr != nil {
			s.log.Error("clearing reset token failed", zap.Uint("account_id", account.ID), zap.Error(saveErr))
		}
		return domain.ErrDeliveryFailed
	}
	return nil
}

func (s *accountService) ResetPassword(ctx context.Context, input dto.SetPasswordRequest) error {
	if err := helper.ValidateStruct(input); err != nil {
		return err
	}

	account, err := s.accounts.FindByResetTokenHash(ctx, helper.HashOpaqueToken(input.Token))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrInvalidResetLink
		}
		return err
	}
	if account.ResetTokenExpiresAt == nil || s.now().After(*account.ResetTokenExpiresAt) {
		return domain.ErrInvalidResetLink
	}

	ve := domain.NewValidationError()
	for _, msg := range helper.ValidatePassword(input.NewPassword, account.Email) {
		ve.Add("new_password", msg)
	}
	if input.NewPassword != input.PasswordConfirm {
		ve.Add("password_confirm", "Passwords do not match.")
	}
	if err := ve.OrNil(); err != nil {
		return err
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	account.ResetTokenHash = nil
	account.ResetTokenExpiresAt = nil
	return s.accounts.Save(ctx, account)
}

// SweepUnverified deletes accounts that were never activated within the
// configured age.
func (s *accountService) SweepUnverified(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-s.cfg.UnverifiedMaxAge)
	n, err := s.accounts.DeleteUnverifiedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("unverified accounts removed", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}
