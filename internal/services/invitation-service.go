package services

import (
	"context"
	"errors"
	"time"

	"github.com/SundayYogurt/projecthub/config"
	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"github.com/SundayYogurt/projecthub/internal/repository"
	"go.uber.org/zap"
)

type InvitationService interface {
	Create(ctx context.Context, actorProfileID uint, projectID string, input dto.InviteRequest) (dto.InvitationResponse, error)
	Accept(ctx context.Context, token string) (dto.MemberResponse, error)
	Reject(ctx context.Context, token string) error
	ListForProject(ctx context.Context, actorProfileID uint, projectID string) ([]dto.InvitationResponse, error)
	ListMine(ctx context.Context, profileID uint) ([]dto.InvitationResponse, error)
}

type invitationService struct {
	invitations repository.InvitationRepository
	projects    repository.ProjectRepository
	members     repository.MembershipRepository
	accounts    repository.AccountRepository
	profiles    repository.ProfileRepository
	codec       helper.TokenCodec
	notifier    *Notifier
	ttl         time.Duration
	log         *zap.Logger
	now         func() time.Time
}

func NewInvitationService(
	invitations repository.InvitationRepository,
	projects repository.ProjectRepository,
	members repository.MembershipRepository,
	accounts repository.AccountRepository,
	profiles repository.ProfileRepository,
	codec helper.TokenCodec,
	notifier *Notifier,
	cfg config.Config,
	log *zap.Logger,
) InvitationService {
	return &invitationService{
		invitations: invitations,
		projects:    projects,
		members:     members,
		accounts:    accounts,
		profiles:    profiles,
		codec:       codec,
		notifier:    notifier,
		ttl:         cfg.InvitationTokenTTL,
		log:         log.Named("invitations"),
		now:         time.Now,
	}
}

// Create records a pending invitation and mails the invitee a signed token.
// The invitation row only survives if the mail event was handed off; on any
// failure after the insert it is deleted again.
func (s *invitationService) Create(ctx context.Context, actorProfileID uint, projectID string, input dto.InviteRequest) (dto.InvitationResponse, error) {
	if err := helper.ValidateStruct(input); err != nil {
		return dto.InvitationResponse{}, err
	}
	role := domain.Role(input.Role)
	if !role.Invitable() {
		ve := domain.NewValidationError()
		ve.Add("role", "Must be one of: admin, member, viewer.")
		return dto.InvitationResponse{}, ve
	}

	access, err := loadAccess(ctx, s.projects, s.members, projectID, actorProfileID)
	if err != nil {
		return dto.InvitationResponse{}, err
	}
	if !access.CanManage() {
		return dto.InvitationResponse{}, domain.ErrNotEligible
	}
	project := access.project

	invitee, err := s.accounts.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return dto.InvitationResponse{}, domain.ErrUnknownInvitee
		}
		return dto.InvitationResponse{}, err
	}
	if invitee.Profile == nil {
		return dto.InvitationResponse{}, domain.ErrUnknownInvitee
	}
	inviteeProfile := invitee.Profile

	if inviteeProfile.ID == project.OwnerID {
		return dto.InvitationResponse{}, domain.ErrAlreadyMember
	}
	current, err := s.members.RoleOf(ctx, project.ID, inviteeProfile.ID)
	if err != nil {
		return dto.InvitationResponse{}, err
	}
	if current != "" {
		return dto.InvitationResponse{}, domain.ErrAlreadyMember
	}

	inviter, err := s.profiles.FindByID(ctx, actorProfileID)
	if err != nil {
		return dto.InvitationResponse{}, err
	}

	now := s.now().UTC()
	inv := &domain.Invitation{
		ProjectID:   project.ID,
		InviteeID:   inviteeProfile.ID,
		Role:        role,
		InvitedByID: actorProfileID,
		CreatedAt:   now,
	}
	if err := s.invitations.CreatePending(ctx, inv, now, s.ttl); err != nil {
		return dto.InvitationResponse{}, err
	}

	if err := s.dispatch(ctx, inv, invitee, inviteeProfile, inviter, project); err != nil {
		s.log.Error("invitation not dispatched, removing it",
			zap.String("invitation_id", inv.ID),
			zap.String("project_id", project.ID),
			zap.Error(err),
		)
		if delErr := s.invitations.Delete(context.WithoutCancel(ctx), inv.ID); delErr != nil {
			s.log.Error("compensating invitation delete failed", zap.String("invitation_id", inv.ID), zap.Error(delErr))
		}
		return dto.InvitationResponse{}, domain.ErrDeliveryFailed
	}

	s.log.Info("invitation created",
		zap.String("invitation_id", inv.ID),
		zap.String("project_id", project.ID),
		zap.Uint("invitee_id", inviteeProfile.ID),
		zap.String("role", string(role)),
	)
	inv.Project = project
	return dto.NewInvitationResponse(*inv, now, s.ttl), nil
}

func (s *invitationService) dispatch(
	ctx context.Context,
	inv *domain.Invitation,
	invitee *domain.Account,
	inviteeProfile *domain.Profile,
	inviter *domain.Profile,
	project *domain.Project,
) error {
	token, err := s.codec.Encode(helper.Claims{
		Purpose:      helper.PurposeInvitation,
		UserID:       invitee.ID,
		ProfileID:    inviteeProfile.ID,
		ProjectID:    project.ID,
		InvitationID: inv.ID,
		Role:         inv.Role,
	}, s.ttl)
	if err != nil {
		return err
	}

	return s.notifier.Publish(ctx, dto.EventInvitation, dto.InvitationEvent{
		InvitationID: inv.ID,
		Email:        invitee.Email,
		InviteeName:  inviteeProfile.FullName(),
		InviterName:  inviter.FullName(),
		ProjectName:  project.Name,
		Role:         string(inv.Role),
		Token:        token,
		ExpiresAt:    inv.CreatedAt.Add(s.ttl).Format(time.RFC3339),
	})
}

func (s *invitationService) keyFromToken(token string) (repository.InvitationKey, error) {
	claims, err := s.codec.Decode(token, helper.PurposeInvitation)
	if err != nil {
		return repository.InvitationKey{}, err
	}
	if claims.InvitationID == "" || claims.ProjectID == "" || claims.ProfileID == 0 || !claims.Role.Valid() {
		return repository.InvitationKey{}, domain.ErrInvalidToken
	}
	return repository.InvitationKey{
		ID:        claims.InvitationID,
		ProjectID: claims.ProjectID,
		InviteeID: claims.ProfileID,
		Role:      claims.Role,
	}, nil
}

// Accept consumes the token. Already accepted, revoked and unknown
// invitations all fail with ErrInvitationNotFound.
func (s *invitationService) Accept(ctx context.Context, token string) (dto.MemberResponse, error) {
	key, err := s.keyFromToken(token)
	if err != nil {
		return dto.MemberResponse{}, err
	}

	membership, err := s.invitations.Accept(ctx, key)
	if err != nil {
		return dto.MemberResponse{}, err
	}

	s.log.Info("invitation accepted",
		zap.String("invitation_id", key.ID),
		zap.String("project_id", key.ProjectID),
		zap.Uint("profile_id", key.InviteeID),
	)
	return dto.NewMemberResponse(*membership), nil
}

func (s *invitationService) Reject(ctx context.Context, token string) error {
	key, err := s.keyFromToken(token)
	if err != nil {
		return err
	}
	if err := s.invitations.Revoke(ctx, key); err != nil {
		return err
	}
	s.log.Info("invitation rejected", zap.String("invitation_id", key.ID))
	return nil
}

func (s *invitationService) ListForProject(ctx context.Context, actorProfileID uint, projectID string) ([]dto.InvitationResponse, error) {
	access, err := loadAccess(ctx, s.projects, s.members, projectID, actorProfileID)
	if err != nil {
		return nil, err
	}
	if !access.CanManage() {
		return nil, access.deny()
	}

	invs, err := s.invitations.ListForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]dto.InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		inv.Project = access.project
		out = append(out, dto.NewInvitationResponse(inv, now, s.ttl))
	}
	return out, nil
}

func (s *invitationService) ListMine(ctx context.Context, profileID uint) ([]dto.InvitationResponse, error) {
	now := s.now()
	invs, err := s.invitations.ListPendingForInvitee(ctx, profileID, now.UTC().Add(-s.ttl))
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, dto.NewInvitationResponse(inv, now, s.ttl))
	}
	return out, nil
}
