package repository

import (
	"context"
	"testing"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_CreateWithOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := context.Background()

	_, owner := fx.CreateUser("owner@example.com")
	repo := NewProjectRepository(db)

	p := &domain.Project{Name: "Roadmap", OwnerID: owner.ID}
	require.NoError(t, repo.CreateWithOwner(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.VisibilityPrivate, p.Visibility)

	role, err := NewMembershipRepository(db).RoleOf(ctx, p.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, role)
}

func TestProjectRepository_ListVisible(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := context.Background()

	_, alice := fx.CreateUser("alice@example.com")
	_, bob := fx.CreateUser("bob@example.com")

	own := fx.CreateProject(bob, "bob's own", domain.VisibilityPrivate)
	admin := fx.CreateProject(alice, "admin of", domain.VisibilityPrivate)
	member := fx.CreateProject(alice, "member of", domain.VisibilityClosed)
	viewer := fx.CreateProject(alice, "viewer of", domain.VisibilityPrivate)
	fx.CreateProject(alice, "unrelated", domain.VisibilityPublic)

	fx.AddMember(admin, bob, domain.RoleAdmin)
	fx.AddMember(member, bob, domain.RoleMember)
	fx.AddMember(viewer, bob, domain.RoleViewer)

	repo := NewProjectRepository(db)
	rows, total, err := repo.ListVisible(ctx, bob.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 3)

	roles := map[string]domain.Role{}
	for _, r := range rows {
		roles[r.ID] = r.ViewerRole
	}
	assert.Equal(t, map[string]domain.Role{
		own.ID:    domain.RoleOwner,
		admin.ID:  domain.RoleAdmin,
		member.ID: domain.RoleMember,
	}, roles)

	page, total, err := repo.ListVisible(ctx, bob.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)
}

func TestProjectRepository_ListPublic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)

	_, alice := fx.CreateUser("alice@example.com")
	pub := fx.CreateProject(alice, "open", domain.VisibilityPublic)
	fx.CreateProject(alice, "hidden", domain.VisibilityPrivate)
	fx.CreateProject(alice, "closed", domain.VisibilityClosed)

	projects, total, err := NewProjectRepository(db).ListPublic(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, projects, 1)
	assert.Equal(t, pub.ID, projects[0].ID)
}

func TestProjectRepository_DeleteRemovesDependents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := context.Background()

	_, alice := fx.CreateUser("alice@example.com")
	_, bob := fx.CreateUser("bob@example.com")
	p := fx.CreateProject(alice, "doomed", domain.VisibilityPrivate)
	fx.AddMember(p, bob, domain.RoleMember)
	require.NoError(t, NewTaskRepository(db).Create(ctx, &domain.Task{ProjectID: p.ID, Title: "t", Status: domain.TaskTodo, Priority: domain.PriorityLow}))

	repo := NewProjectRepository(db)
	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.Zero(t, fx.Count(&domain.Membership{}, "project_id = ?", p.ID))
	assert.Zero(t, fx.Count(&domain.Task{}, "project_id = ?", p.ID))

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), domain.ErrProjectNotFound)
}
