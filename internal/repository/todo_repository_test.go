package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"todoapi/internal/database"
	"todoapi/internal/model"
)

func newTestRepo(t *testing.T) *TodoRepo {
	t.Helper()
	db, err := database.Open("", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTodoRepo(db)
}

// setClock pins the repository clock so timestamp assertions are exact.
func setClock(r *TodoRepo, at time.Time) {
	r.now = func() time.Time { return at }
}

func TestCreateThenGet(t *testing.T) {
	repo := newTestRepo(t)
	setClock(repo, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))

	todo := &model.Todo{Title: "Buy milk", Description: "two liters"}
	require.NoError(t, repo.Create(context.Background(), todo))
	require.Positive(t, todo.ID)

	got, err := repo.GetByID(context.Background(), todo.ID)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", got.Title)
	require.Equal(t, "two liters", got.Description)
	require.False(t, got.Completed)
	require.Equal(t, "2026-03-01T09:30:00Z", got.CreatedAt)
	require.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 99999)
	require.ErrorIs(t, err, ErrTodoNotFound)
}

func TestListAllNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, title := range []string{"first", "second", "third"} {
		setClock(repo, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(context.Background(), &model.Todo{Title: title}))
	}

	todos, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 3)
	require.Equal(t, "third", todos[0].Title)
	require.Equal(t, "second", todos[1].Title)
	require.Equal(t, "first", todos[2].Title)
}

func TestListAllBreaksTimestampTiesByID(t *testing.T) {
	repo := newTestRepo(t)
	setClock(repo, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	// Same created_at for both rows; the higher id was inserted later and
	// must come first.
	require.NoError(t, repo.Create(context.Background(), &model.Todo{Title: "older"}))
	require.NoError(t, repo.Create(context.Background(), &model.Todo{Title: "newer"}))

	todos, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 2)
	require.Equal(t, "newer", todos[0].Title)
	require.Equal(t, "older", todos[1].Title)
}

func TestListAllEmptyIsNotNil(t *testing.T) {
	repo := newTestRepo(t)

	todos, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, todos)
	require.Empty(t, todos)
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	repo := newTestRepo(t)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	setClock(repo, created)

	todo := &model.Todo{Title: "Buy milk", Description: "two liters"}
	require.NoError(t, repo.Create(context.Background(), todo))

	setClock(repo, created.Add(time.Hour))
	completed := true
	updated, err := repo.Update(context.Background(), todo.ID, model.TodoPatch{Completed: &completed})
	require.NoError(t, err)

	require.Equal(t, "Buy milk", updated.Title)
	require.Equal(t, "two liters", updated.Description)
	require.True(t, updated.Completed)
	require.Equal(t, "2026-03-01T09:00:00Z", updated.CreatedAt)
	require.Equal(t, "2026-03-01T10:00:00Z", updated.UpdatedAt)
	require.Greater(t, updated.UpdatedAt, updated.CreatedAt)
}

func TestUpdateExplicitFalseOverwrites(t *testing.T) {
	repo := newTestRepo(t)

	todo := &model.Todo{Title: "task", Completed: true}
	require.NoError(t, repo.Create(context.Background(), todo))

	completed := false
	updated, err := repo.Update(context.Background(), todo.ID, model.TodoPatch{Completed: &completed})
	require.NoError(t, err)
	require.False(t, updated.Completed)
	require.Equal(t, "task", updated.Title)
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	repo := newTestRepo(t)

	title := "anything"
	_, err := repo.Update(context.Background(), 42, model.TodoPatch{Title: &title})
	require.ErrorIs(t, err, ErrTodoNotFound)
}

func TestDeleteThenGetReturnsNotFound(t *testing.T) {
	repo := newTestRepo(t)

	todo := &model.Todo{Title: "temp"}
	require.NoError(t, repo.Create(context.Background(), todo))

	require.NoError(t, repo.Delete(context.Background(), todo.ID))

	_, err := repo.GetByID(context.Background(), todo.ID)
	require.ErrorIs(t, err, ErrTodoNotFound)

	// Second delete of the same id reports not found as well.
	require.ErrorIs(t, repo.Delete(context.Background(), todo.ID), ErrTodoNotFound)
}

func TestPing(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Ping(context.Background()))
}
