package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inviteTTL = 72 * time.Hour

func setupInvitation(t *testing.T) (*testutil.Fixtures, InvitationRepository, *domain.Project, *domain.Profile, *domain.Profile) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	_, owner := fx.CreateUser("owner@example.com")
	_, bob := fx.CreateUser("bob@example.com")
	project := fx.CreateProject(owner, "P", domain.VisibilityPrivate)
	return fx, NewInvitationRepository(db), project, owner, bob
}

func TestInvitationRepository_CreatePendingDuplicate(t *testing.T) {
	_, repo, project, owner, bob := setupInvitation(t)
	ctx := context.Background()
	now := time.Now().UTC()

	first := &domain.Invitation{ProjectID: project.ID, InviteeID: bob.ID, InvitedByID: owner.ID, Role: domain.RoleMember}
	require.NoError(t, repo.CreatePending(ctx, first, now, inviteTTL))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, domain.InvitationPending, first.Status)

	second := &domain.Invitation{ProjectID: project.ID, InviteeID: bob.ID, InvitedByID: owner.ID, Role: domain.RoleAdmin}
	err := repo.CreatePending(ctx, second, now, inviteTTL)
	assert.ErrorIs(t, err, domain.ErrDuplicateInvitation)
}

func TestInvitationRepository_CreatePendingReplacesStale(t *testing.T) {
	fx, repo, project, owner, bob := setupInvitation(t)
	ctx := context.Background()
	now := time.Now().UTC()

	revoked := fx.CreateInvitation(project, bob, owner, domain.RoleMember, domain.InvitationRevoked, now.Add(-time.Hour))

	fresh := &domain.Invitation{ProjectID: project.ID, InviteeID: bob.ID, InvitedByID: owner.ID, Role: domain.RoleViewer}
	require.NoError(t, repo.CreatePending(ctx, fresh, now, inviteTTL))
	assert.NotEqual(t, revoked.ID, fresh.ID)

	_, err := repo.FindByID(ctx, revoked.ID)
	assert.ErrorIs(t, err, domain.ErrInvitationNotFound)
	assert.Equal(t, int64(1), fx.Count(&domain.Invitation{}, "project_id = ? AND invitee_id = ?", project.ID, bob.ID))
}

func TestInvitationRepository_CreatePendingReplacesExpiredPending(t *testing.T) {
	fx, repo, project, owner, bob := setupInvitation(t)
	now := time.Now().UTC()

	fx.CreateInvitation(project, bob, owner, domain.RoleMember, domain.InvitationPending, now.Add(-inviteTTL-time.Hour))

	fresh := &domain.Invitation{ProjectID: project.ID, InviteeID: bob.ID, InvitedByID: owner.ID, Role: domain.RoleMember}
	assert.NoError(t, repo.CreatePending(context.Background(), fresh, now, inviteTTL))
}

func TestInvitationRepository_AcceptIsAtomic(t *testing.T) {
	fx, repo, project, owner, bob := setupInvitation(t)
	ctx := context.Background()

	inv := fx.CreateInvitation(project, bob, owner, domain.RoleMember, domain.InvitationPending, time.Now())
	key := InvitationKey{ID: inv.ID, ProjectID: project.ID, InviteeID: bob.ID, Role: domain.RoleMember}

	// a membership appearing out of band makes the insert fail; the status
	// update in the same transaction must roll back with it
	fx.AddMember(project, bob, domain.RoleViewer)

	_, err := repo.Accept(ctx, key)
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)
	assert.Equal(t, domain.InvitationPending, fx.InvitationStatus(inv.ID))
}

func TestInvitationRepository_AcceptRequiresMatchingClaims(t *testing.T) {
	fx, repo, project, owner, bob := setupInvitation(t)
	ctx := context.Background()

	inv := fx.CreateInvitation(project, bob, owner, domain.RoleMember, domain.InvitationPending, time.Now())

	_, err := repo.Accept(ctx, InvitationKey{ID: inv.ID, ProjectID: project.ID, InviteeID: bob.ID, Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrInvitationNotFound)

	_, err = repo.Accept(ctx, InvitationKey{ID: inv.ID, ProjectID: project.ID, InviteeID: owner.ID, Role: domain.RoleMember})
	assert.ErrorIs(t, err, domain.ErrInvitationNotFound)

	m, err := repo.Accept(ctx, InvitationKey{ID: inv.ID, ProjectID: project.ID, InviteeID: bob.ID, Role: domain.RoleMember})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, m.Role)
	assert.Equal(t, domain.InvitationAccepted, fx.InvitationStatus(inv.ID))
}

func TestInvitationRepository_ConcurrentAccept(t *testing.T) {
	fx, repo, project, owner, bob := setupInvitation(t)
	ctx := context.Background()

	inv := fx.CreateInvitation(project, bob, owner, domain.RoleMember, domain.InvitationPending, time.Now())
	key := InvitationKey{ID: inv.ID, ProjectID: project.ID, InviteeID: bob.ID, Role: domain.RoleMember}

	const racers = 4
	errs := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Accept(ctx, key)
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
	assert.Equal(t, int64(1), fx.Count(&domain.Membership{}, "project_id = ? AND profile_id = ?", project.ID, bob.ID))
}

func TestInvitationRepository_RevokePersists(t *testing.T) {
	fx, repo, project, owner, bob := setupInvitation(t)
	ctx := context.Background()

	inv := fx.CreateInvitation(project, bob, owner, domain.RoleViewer, domain.InvitationPending, time.Now())
	key := InvitationKey{ID: inv.ID, ProjectID: project.ID, InviteeID: bob.ID, Role: domain.RoleViewer}

	require.NoError(t, repo.Revoke(ctx, key))
	assert.Equal(t, domain.InvitationRevoked, fx.InvitationStatus(inv.ID))

	assert.ErrorIs(t, repo.Revoke(ctx, key), domain.ErrInvitationNotFound)
	_, err := repo.Accept(ctx, key)
	assert.ErrorIs(t, err, domain.ErrInvitationNotFound)
}

func TestInvitationRepository_ListPendingForInvitee(t *testing.T) {
	fx, repo, project, owner, bob := setupInvitation(t)
	ctx := context.Background()
	now := time.Now().UTC()

	other := fx.CreateProject(owner, "Q", domain.VisibilityPrivate)
	third := fx.CreateProject(owner, "R", domain.VisibilityPrivate)
	fx.CreateInvitation(project, bob, owner, domain.RoleMember, domain.InvitationPending, now.Add(-time.Hour))
	fx.CreateInvitation(other, bob, owner, domain.RoleMember, domain.InvitationPending, now.Add(-inviteTTL-time.Hour))
	fx.CreateInvitation(third, bob, owner, domain.RoleMember, domain.InvitationAccepted, now.Add(-time.Hour))

	invs, err := repo.ListPendingForInvitee(ctx, bob.ID, now.Add(-inviteTTL))
	require.NoError(t, err)
	require.Len(t, invs, 1)
	assert.Equal(t, project.ID, invs[0].ProjectID)
	require.NotNil(t, invs[0].Project)
	assert.Equal(t, "P", invs[0].Project.Name)
}
