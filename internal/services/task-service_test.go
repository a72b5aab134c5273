package services

import (
	"context"
	"testing"
	"time"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, owner := env.fx.CreateUser("owner@example.com")
	_, member := env.fx.CreateUser("member@example.com")
	_, outsider := env.fx.CreateUser("outsider@example.com")
	p := env.fx.CreateProject(owner, "P", domain.VisibilityPrivate)
	env.fx.AddMember(p, member, domain.RoleMember)

	due := time.Now().UTC().Add(48 * time.Hour)
	task, err := env.tasks.Create(ctx, member.ID, p.ID, dto.CreateTaskRequest{
		Title:      "  Ship it ",
		AssigneeID: &owner.ID,
		DueDate:    &due,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ship it", task.Title)
	assert.Equal(t, domain.TaskTodo, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	require.NotNil(t, task.CreatedByID)
	assert.Equal(t, member.ID, *task.CreatedByID)

	t.Run("due date in the past", func(t *testing.T) {
		past := time.Now().UTC().Add(-time.Hour)
		_, err := env.tasks.Create(ctx, owner.ID, p.ID, dto.CreateTaskRequest{Title: "late", DueDate: &past})
		assert.ErrorIs(t, err, domain.ErrInvalidDueDate)
	})
	t.Run("assignee outside project", func(t *testing.T) {
		_, err := env.tasks.Create(ctx, owner.ID, p.ID, dto.CreateTaskRequest{Title: "x", AssigneeID: &outsider.ID})
		assert.ErrorIs(t, err, domain.ErrNotAMember)
	})
	t.Run("missing title", func(t *testing.T) {
		_, err := env.tasks.Create(ctx, owner.ID, p.ID, dto.CreateTaskRequest{})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "title")
	})
	t.Run("outsider", func(t *testing.T) {
		_, err := env.tasks.Create(ctx, outsider.ID, p.ID, dto.CreateTaskRequest{Title: "x"})
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})
}

func TestTaskService_ViewerIsReadOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, owner := env.fx.CreateUser("owner@example.com")
	_, viewer := env.fx.CreateUser("viewer@example.com")
	p := env.fx.CreateProject(owner, "P", domain.VisibilityPrivate)
	env.fx.AddMember(p, viewer, domain.RoleViewer)

	task, err := env.tasks.Create(ctx, owner.ID, p.ID, dto.CreateTaskRequest{Title: "read me", Priority: "high"})
	require.NoError(t, err)

	got, err := env.tasks.Get(ctx, viewer.ID, p.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, got.Priority)

	_, err = env.tasks.Create(ctx, viewer.ID, p.ID, dto.CreateTaskRequest{Title: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotEligible)
	assert.ErrorIs(t, env.tasks.Delete(ctx, viewer.ID, p.ID, task.ID), domain.ErrNotEligible)
}

func TestTaskService_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, owner := env.fx.CreateUser("owner@example.com")
	p := env.fx.CreateProject(owner, "P", domain.VisibilityPrivate)

	created := time.Now().UTC()
	env.tasks.now = func() time.Time { return created }
	task, err := env.tasks.Create(ctx, owner.ID, p.ID, dto.CreateTaskRequest{Title: "t"})
	require.NoError(t, err)

	status := string(domain.TaskInProgress)
	updated, err := env.tasks.Update(ctx, owner.ID, p.ID, task.ID, dto.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, updated.Status)

	before := created.Add(-time.Minute)
	_, err = env.tasks.Update(ctx, owner.ID, p.ID, task.ID, dto.UpdateTaskRequest{DueDate: &before})
	assert.ErrorIs(t, err, domain.ErrInvalidDueDate)

	require.NoError(t, env.tasks.Delete(ctx, owner.ID, p.ID, task.ID))
	_, err = env.tasks.Get(ctx, owner.ID, p.ID, task.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	list, total, err := env.tasks.List(ctx, owner.ID, p.ID, dto.PageRequest{}.Normalize(10))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
	// soft deleted rows stay in the table
	assert.Equal(t, int64(1), env.fx.Count(&domain.Task{}, "id = ?", task.ID))
}
