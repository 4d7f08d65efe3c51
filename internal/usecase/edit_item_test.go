package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/testutil"
	"github.com/runoshun/tasktracker/internal/usecase"
)

func TestEditItem_Execute(t *testing.T) {
	t.Run("updates task fields", func(t *testing.T) {
		store, logger := newFixture()
		task, _ := store.CreateTask(domain.NewTask("old", "desc"))

		out, err := usecase.NewEditItem(store, logger).Execute(context.Background(), usecase.EditItemInput{
			ID:        task.ID,
			Title:     ptr("new"),
			Status:    ptr(domain.StatusInProgress),
			StartTime: ptr(at(14, 0)),
			Duration:  ptr(30 * time.Minute),
		})
		require.NoError(t, err)

		got := out.Item.(domain.Task)
		assert.Equal(t, "new", got.Title)
		assert.Equal(t, "desc", got.Description)
		assert.Equal(t, domain.StatusInProgress, got.Status)
		assert.Equal(t, at(14, 30), got.EndTime())
		assert.Empty(t, store.History())
	})

	t.Run("moves subtask to another epic", func(t *testing.T) {
		store, logger := newFixture()
		e1, _ := store.CreateEpic(domain.NewEpic("e1", ""))
		e2, _ := store.CreateEpic(domain.NewEpic("e2", ""))
		sub, _ := store.CreateSubtask(domain.NewSubtask("s", "", e1.ID))

		_, err := usecase.NewEditItem(store, logger).Execute(context.Background(), usecase.EditItemInput{
			ID:     sub.ID,
			EpicID: ptr(e2.ID),
		})
		require.NoError(t, err)

		subs, _ := store.EpicSubtasks(e2.ID)
		assert.Len(t, subs, 1)
		subs, _ = store.EpicSubtasks(e1.ID)
		assert.Empty(t, subs)
	})

	t.Run("renames epic", func(t *testing.T) {
		store, logger := newFixture()
		epic, _ := store.CreateEpic(domain.NewEpic("e", ""))

		out, err := usecase.NewEditItem(store, logger).Execute(context.Background(), usecase.EditItemInput{
			ID:    epic.ID,
			Title: ptr("renamed"),
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed", out.Item.Heading())
	})

	t.Run("rejects derived epic fields", func(t *testing.T) {
		store, logger := newFixture()
		epic, _ := store.CreateEpic(domain.NewEpic("e", ""))

		_, err := usecase.NewEditItem(store, logger).Execute(context.Background(), usecase.EditItemInput{
			ID:     epic.ID,
			Status: ptr(domain.StatusDone),
		})
		assert.ErrorIs(t, err, domain.ErrDerivedField)
	})

	t.Run("rejects moving a task into an epic", func(t *testing.T) {
		store, logger := newFixture()
		task, _ := store.CreateTask(domain.NewTask("t", ""))
		epic, _ := store.CreateEpic(domain.NewEpic("e", ""))

		_, err := usecase.NewEditItem(store, logger).Execute(context.Background(), usecase.EditItemInput{
			ID:     task.ID,
			EpicID: ptr(epic.ID),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidKind)
	})

	t.Run("returns error when nothing to update", func(t *testing.T) {
		store, logger := newFixture()
		_, err := usecase.NewEditItem(store, logger).Execute(context.Background(), usecase.EditItemInput{ID: 1})
		assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
	})

	t.Run("returns not found", func(t *testing.T) {
		store, logger := newFixture()
		_, err := usecase.NewEditItem(store, logger).Execute(context.Background(), usecase.EditItemInput{
			ID:    5,
			Title: ptr("x"),
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("returns overlap error and keeps task", func(t *testing.T) {
		store, logger := newFixture()
		a := domain.NewTask("a", "")
		a.StartTime, a.Duration = at(9, 0), time.Hour
		a, _ = store.CreateTask(a)
		b := domain.NewTask("b", "")
		b.StartTime, b.Duration = at(11, 0), time.Hour
		_, _ = store.CreateTask(b)

		_, err := usecase.NewEditItem(store, logger).Execute(context.Background(), usecase.EditItemInput{
			ID:        a.ID,
			StartTime: ptr(at(10, 30)),
		})
		assert.ErrorIs(t, err, domain.ErrTaskIntersection)
		assert.Equal(t, at(9, 0), store.Tasks()[0].StartTime)
	})
}

func TestEditItem_LookupAndWriteShareCriticalSection(t *testing.T) {
	store, logger := newFixture()
	e1, _ := store.CreateEpic(domain.NewEpic("e1", ""))
	e2, _ := store.CreateEpic(domain.NewEpic("e2", ""))
	sub, _ := store.CreateSubtask(domain.NewSubtask("s", "", e1.ID))
	items := testutil.NewSerialManager(store)
	uc := usecase.NewEditItem(items, logger)

	out, err := uc.Execute(context.Background(), usecase.EditItemInput{ID: sub.ID, EpicID: ptr(e2.ID)})
	require.NoError(t, err)
	assert.Equal(t, e2.ID, out.Item.(domain.Subtask).EpicID)

	_, err = uc.Execute(context.Background(), usecase.EditItemInput{ID: sub.ID, EpicID: ptr(42)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 2, items.DoCalls)
	assert.Empty(t, items.Outside)
	assert.Equal(t, e2.ID, store.Subtasks()[0].EpicID)
}
