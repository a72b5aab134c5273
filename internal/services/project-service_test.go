package services

import (
	"context"
	"testing"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_VisibilityAfterInvitations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	page := dto.PageRequest{}.Normalize(env.cfg.PageSize)

	_, a := env.fx.CreateUser("a@example.com")
	_, b := env.fx.CreateUser("b@example.com")
	project, err := env.projects.Create(ctx, a.ID, dto.CreateProjectRequest{Name: "P"})
	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityPrivate, project.Visibility)
	assert.Equal(t, domain.RoleOwner, project.Role)

	p := &domain.Project{ID: project.ID}

	// B does not see P before accepting
	list, total, err := env.projects.ListVisible(ctx, b.ID, page)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
	_, err = env.projects.Get(ctx, b.ID, project.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	_, token := invite(t, env, a, p, "b@example.com", domain.RoleMember)
	_, err = env.invitations.Accept(ctx, token)
	require.NoError(t, err)

	list, total, err = env.projects.ListVisible(ctx, b.ID, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, project.ID, list[0].ID)
	assert.Equal(t, domain.RoleMember, list[0].Role)

	list, _, err = env.projects.ListVisible(ctx, a.ID, page)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.RoleOwner, list[0].Role)
}

func TestProjectService_ViewerExcludedFromVisible(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, a := env.fx.CreateUser("a@example.com")
	_, v := env.fx.CreateUser("v@example.com")
	p := env.fx.CreateProject(a, "P", domain.VisibilityPrivate)
	env.fx.AddMember(p, v, domain.RoleViewer)

	list, total, err := env.projects.ListVisible(ctx, v.ID, dto.PageRequest{}.Normalize(10))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	// still readable directly
	got, err := env.projects.Get(ctx, v.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleViewer, got.Role)
}

func TestProjectService_ManageRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, owner := env.fx.CreateUser("owner@example.com")
	_, admin := env.fx.CreateUser("admin@example.com")
	_, member := env.fx.CreateUser("member@example.com")
	_, stranger := env.fx.CreateUser("stranger@example.com")
	p := env.fx.CreateProject(owner, "P", domain.VisibilityPrivate)
	env.fx.AddMember(p, admin, domain.RoleAdmin)
	env.fx.AddMember(p, member, domain.RoleMember)

	name := "Renamed"
	updated, err := env.projects.Update(ctx, admin.ID, p.ID, dto.UpdateProjectRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	_, err = env.projects.Update(ctx, member.ID, p.ID, dto.UpdateProjectRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotEligible)
	_, err = env.projects.Update(ctx, stranger.ID, p.ID, dto.UpdateProjectRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	bad := "secret"
	_, err = env.projects.Update(ctx, owner.ID, p.ID, dto.UpdateProjectRequest{Visibility: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	members, err := env.projects.ListMembers(ctx, member.ID, p.ID, []domain.Role{domain.RoleAdmin, domain.RoleOwner})
	require.NoError(t, err)
	assert.Len(t, members, 2)

	_, err = env.projects.ListMembers(ctx, member.ID, p.ID, []domain.Role{"boss"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, env.projects.Delete(ctx, member.ID, p.ID), domain.ErrNotEligible)
	require.NoError(t, env.projects.Delete(ctx, owner.ID, p.ID))
	_, err = env.projects.Get(ctx, owner.ID, p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectService_PublicProjectsReadable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, owner := env.fx.CreateUser("owner@example.com")
	_, stranger := env.fx.CreateUser("stranger@example.com")
	pub := env.fx.CreateProject(owner, "Open", domain.VisibilityPublic)
	env.fx.CreateProject(owner, "Closed", domain.VisibilityClosed)

	got, err := env.projects.Get(ctx, stranger.ID, pub.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Role)

	name := "x"
	_, err = env.projects.Update(ctx, stranger.ID, pub.ID, dto.UpdateProjectRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotEligible)

	list, total, err := env.projects.ListPublic(ctx, dto.PageRequest{}.Normalize(10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Open", list[0].Name)
}
