package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invite creates an invitation through the service and returns it with the
// token from the published event.
func invite(t *testing.T, env *testEnv, actor *domain.Profile, project *domain.Project, email string, role domain.Role) (dto.InvitationResponse, string) {
	t.Helper()

	resp, err := env.invitations.Create(context.Background(), actor.ID, project.ID, dto.InviteRequest{Email: email, Role: string(role)})
	require.NoError(t, err)

	var event dto.InvitationEvent
	env.producer.Last(t, dto.EventInvitation, &event)
	require.Equal(t, resp.ID, event.InvitationID)
	return resp, event.Token
}

func TestInvitationService_CreateAndAccept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, alice := env.fx.CreateUser("alice@example.com")
	bobAccount, bob := env.fx.CreateUser("bob@example.com")
	project := env.fx.CreateProject(alice, "Roadmap", domain.VisibilityPrivate)

	resp, token := invite(t, env, alice, project, "Bob@Example.com", domain.RoleMember)
	assert.Equal(t, domain.InvitationPending, resp.Status)
	assert.Equal(t, bob.ID, resp.InviteeID)
	assert.Equal(t, "Roadmap", resp.ProjectName)

	var event dto.InvitationEvent
	env.producer.Last(t, dto.EventInvitation, &event)
	assert.Equal(t, bobAccount.Email, event.Email)
	assert.Equal(t, "member", event.Role)
	assert.Equal(t, alice.FullName(), event.InviterName)

	member, err := env.invitations.Accept(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, member.ProfileID)
	assert.Equal(t, domain.RoleMember, member.Role)

	assert.Equal(t, domain.InvitationAccepted, env.fx.InvitationStatus(resp.ID))
	assert.Equal(t, int64(1), env.fx.Count(&domain.Membership{}, "project_id = ? AND profile_id = ?", project.ID, bob.ID))

	// a consumed token cannot be replayed
	_, err = env.invitations.Accept(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvitationNotFound)
}

func TestInvitationService_ConcurrentAccept(t *testing.T) {
	env := newTestEnv(t)

	_, alice := env.fx.CreateUser("alice@example.com")
	_, bob := env.fx.CreateUser("bob@example.com")
	project := env.fx.CreateProject(alice, "Roadmap", domain.VisibilityPrivate)
	_, token := invite(t, env, alice, project, "bob@example.com", domain.RoleAdmin)

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.invitations.Accept(context.Background(), token)
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvitationNotFound)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, int64(1), env.fx.Count(&domain.Membership{}, "project_id = ? AND profile_id = ?", project.ID, bob.ID))
}

func TestInvitationService_RejectPersistsRevoked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, alice := env.fx.CreateUser("alice@example.com")
	_, bob := env.fx.CreateUser("bob@example.com")
	project := env.fx.CreateProject(alice, "Roadmap", domain.VisibilityPrivate)
	resp, token := invite(t, env, alice, project, "bob@example.com", domain.RoleViewer)

	require.NoError(t, env.invitations.Reject(ctx, token))
	assert.Equal(t, domain.InvitationRevoked, env.fx.InvitationStatus(resp.ID))
	assert.Zero(t, env.fx.Count(&domain.Membership{}, "project_id = ? AND profile_id = ?", project.ID, bob.ID))

	_, err := env.invitations.Accept(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvitationNotFound)
	assert.ErrorIs(t, env.invitations.Reject(ctx, token), domain.ErrInvitationNotFound)

	// a revoked invitation does not block a fresh one
	_, _ = invite(t, env, alice, project, "bob@example.com", domain.RoleMember)
}

func TestInvitationService_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)

	_, alice := env.fx.CreateUser("alice@example.com")
	_, bob := env.fx.CreateUser("bob@example.com")
	project := env.fx.CreateProject(alice, "Roadmap", domain.VisibilityPrivate)
	inv := env.fx.CreateInvitation(project, bob, alice, domain.RoleMember, domain.InvitationPending, time.Now())

	issued := time.Now().Add(-env.cfg.InvitationTokenTTL - time.Hour)
	token, err := env.codec.WithClock(func() time.Time { return issued }).Encode(helper.Claims{
		Purpose:      helper.PurposeInvitation,
		UserID:       1,
		ProfileID:    bob.ID,
		ProjectID:    project.ID,
		InvitationID: inv.ID,
		Role:         domain.RoleMember,
	}, env.cfg.InvitationTokenTTL)
	require.NoError(t, err)

	_, err = env.invitations.Accept(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
	assert.Equal(t, domain.InvitationPending, env.fx.InvitationStatus(inv.ID))
}

func TestInvitationService_RejectsForeignTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	activation, err := env.codec.Encode(helper.Claims{Purpose: helper.PurposeActivation, UserID: 1, Email: "x@example.com"}, time.Hour)
	require.NoError(t, err)

	_, err = env.invitations.Accept(ctx, activation)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	_, err = env.invitations.Accept(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestInvitationService_CreateRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, alice := env.fx.CreateUser("alice@example.com")
	_, bob := env.fx.CreateUser("bob@example.com")
	_, carol := env.fx.CreateUser("carol@example.com")
	_, dave := env.fx.CreateUser("dave@example.com")
	project := env.fx.CreateProject(alice, "Roadmap", domain.VisibilityPrivate)
	env.fx.AddMember(project, bob, domain.RoleMember)
	env.fx.AddMember(project, carol, domain.RoleAdmin)

	create := func(actor *domain.Profile, email string, role domain.Role) error {
		_, err := env.invitations.Create(ctx, actor.ID, project.ID, dto.InviteRequest{Email: email, Role: string(role)})
		return err
	}

	t.Run("plain member cannot invite", func(t *testing.T) {
		assert.ErrorIs(t, create(bob, "dave@example.com", domain.RoleViewer), domain.ErrNotEligible)
	})
	t.Run("outsider cannot invite", func(t *testing.T) {
		assert.ErrorIs(t, create(dave, "bob@example.com", domain.RoleViewer), domain.ErrNotEligible)
	})
	t.Run("unknown email", func(t *testing.T) {
		assert.ErrorIs(t, create(alice, "nobody@example.com", domain.RoleMember), domain.ErrUnknownInvitee)
	})
	t.Run("existing member", func(t *testing.T) {
		assert.ErrorIs(t, create(alice, "bob@example.com", domain.RoleAdmin), domain.ErrAlreadyMember)
	})
	t.Run("owner", func(t *testing.T) {
		assert.ErrorIs(t, create(carol, "alice@example.com", domain.RoleAdmin), domain.ErrAlreadyMember)
	})
	t.Run("owner role is not invitable", func(t *testing.T) {
		err := create(alice, "dave@example.com", domain.RoleOwner)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "role")
	})
	t.Run("admin invites, duplicate is refused", func(t *testing.T) {
		require.NoError(t, create(carol, "dave@example.com", domain.RoleViewer))
		assert.ErrorIs(t, create(alice, "dave@example.com", domain.RoleMember), domain.ErrDuplicateInvitation)
		assert.Equal(t, int64(1), env.fx.Count(&domain.Invitation{}, "invitee_id = ?", dave.ID))
	})
	t.Run("missing project", func(t *testing.T) {
		_, err := env.invitations.Create(ctx, alice.ID, "missing", dto.InviteRequest{Email: "dave@example.com", Role: "member"})
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})
}

func TestInvitationService_PublishFailureRemovesInvitation(t *testing.T) {
	env := newTestEnv(t)

	_, alice := env.fx.CreateUser("alice@example.com")
	_, bob := env.fx.CreateUser("bob@example.com")
	project := env.fx.CreateProject(alice, "Roadmap", domain.VisibilityPrivate)

	env.producer.Fail = true
	_, err := env.invitations.Create(context.Background(), alice.ID, project.ID, dto.InviteRequest{Email: "bob@example.com", Role: "member"})
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
	assert.Zero(t, env.fx.Count(&domain.Invitation{}, "invitee_id = ?", bob.ID))

	env.producer.Fail = false
	_, _ = invite(t, env, alice, project, "bob@example.com", domain.RoleMember)
}

func TestInvitationService_Lists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, alice := env.fx.CreateUser("alice@example.com")
	_, bob := env.fx.CreateUser("bob@example.com")
	_, carol := env.fx.CreateUser("carol@example.com")
	fresh := env.fx.CreateProject(alice, "Fresh", domain.VisibilityPrivate)
	stale := env.fx.CreateProject(alice, "Stale", domain.VisibilityPrivate)
	env.fx.AddMember(fresh, carol, domain.RoleMember)

	live, _ := invite(t, env, alice, fresh, "bob@example.com", domain.RoleMember)
	old := env.fx.CreateInvitation(stale, bob, alice, domain.RoleMember, domain.InvitationPending, time.Now().Add(-env.cfg.InvitationTokenTTL-time.Minute))

	mine, err := env.invitations.ListMine(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, live.ID, mine[0].ID)
	assert.Equal(t, "Fresh", mine[0].ProjectName)

	staleList, err := env.invitations.ListForProject(ctx, alice.ID, stale.ID)
	require.NoError(t, err)
	require.Len(t, staleList, 1)
	assert.Equal(t, old.ID, staleList[0].ID)
	assert.Equal(t, domain.InvitationExpired, staleList[0].Status)

	_, err = env.invitations.ListForProject(ctx, carol.ID, fresh.ID)
	assert.ErrorIs(t, err, domain.ErrNotEligible)
	_, err = env.invitations.ListForProject(ctx, bob.ID, fresh.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
