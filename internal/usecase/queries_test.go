package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/usecase"
)

func TestListItems_Execute(t *testing.T) {
	store, _ := newFixture()
	done := domain.NewTask("done", "")
	done.Status = domain.StatusDone
	_, _ = store.CreateTask(done)
	_, _ = store.CreateTask(domain.NewTask("new", ""))
	epic, _ := store.CreateEpic(domain.NewEpic("e", ""))
	_, _ = store.CreateSubtask(domain.NewSubtask("s", "", epic.ID))
	uc := usecase.NewListItems(store)

	t.Run("lists everything", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), usecase.ListItemsInput{})
		require.NoError(t, err)
		assert.Equal(t, 4, out.Total())
	})

	t.Run("filters by kind", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), usecase.ListItemsInput{Kind: domain.KindEpic})
		require.NoError(t, err)
		assert.Empty(t, out.Tasks)
		assert.Len(t, out.Epics, 1)
		assert.Empty(t, out.Subtasks)
	})

	t.Run("filters by status", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), usecase.ListItemsInput{Status: domain.StatusDone})
		require.NoError(t, err)
		require.Len(t, out.Tasks, 1)
		assert.Equal(t, "done", out.Tasks[0].Title)
		assert.Empty(t, out.Epics)
	})

	t.Run("rejects invalid filters", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), usecase.ListItemsInput{Kind: "STORY"})
		assert.ErrorIs(t, err, domain.ErrInvalidKind)
		_, err = uc.Execute(context.Background(), usecase.ListItemsInput{Status: "LATER"})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("does not touch history", func(t *testing.T) {
		assert.Empty(t, store.History())
	})
}

func TestShowHistory_Execute(t *testing.T) {
	store, _ := newFixture()
	a, _ := store.CreateTask(domain.NewTask("a", ""))
	b, _ := store.CreateTask(domain.NewTask("b", ""))
	c, _ := store.CreateTask(domain.NewTask("c", ""))
	for _, id := range []int{a.ID, b.ID, c.ID} {
		_, _ = store.GetTask(id)
	}
	uc := usecase.NewShowHistory(store)

	out, err := uc.Execute(context.Background(), usecase.ShowHistoryInput{})
	require.NoError(t, err)
	assert.Equal(t, []int{a.ID, b.ID, c.ID}, ids(out.Items))

	out, err = uc.Execute(context.Background(), usecase.ShowHistoryInput{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{b.ID, c.ID}, ids(out.Items))
}

func TestShowPrioritized_Execute(t *testing.T) {
	store, _ := newFixture()
	late := domain.NewTask("late", "")
	late.StartTime, late.Duration = at(15, 0), time.Hour
	late, _ = store.CreateTask(late)
	early := domain.NewTask("early", "")
	early.StartTime, early.Duration = at(8, 0), time.Hour
	early, _ = store.CreateTask(early)
	_, _ = store.CreateTask(domain.NewTask("unscheduled", ""))
	uc := usecase.NewShowPrioritized(store)

	out, err := uc.Execute(context.Background(), usecase.ShowPrioritizedInput{})
	require.NoError(t, err)
	assert.Equal(t, []int{early.ID, late.ID}, ids(out.Items))

	out, err = uc.Execute(context.Background(), usecase.ShowPrioritizedInput{From: at(9, 0)})
	require.NoError(t, err)
	assert.Equal(t, []int{late.ID}, ids(out.Items))
}

func TestListEpicSubtasks_Execute(t *testing.T) {
	store, _ := newFixture()
	epic, _ := store.CreateEpic(domain.NewEpic("e", ""))
	a, _ := store.CreateSubtask(domain.NewSubtask("a", "", epic.ID))
	b, _ := store.CreateSubtask(domain.NewSubtask("b", "", epic.ID))
	uc := usecase.NewListEpicSubtasks(store)

	out, err := uc.Execute(context.Background(), usecase.ListEpicSubtasksInput{EpicID: epic.ID})
	require.NoError(t, err)
	require.Len(t, out.Subtasks, 2)
	assert.Equal(t, a.ID, out.Subtasks[0].ID)
	assert.Equal(t, b.ID, out.Subtasks[1].ID)

	_, err = uc.Execute(context.Background(), usecase.ListEpicSubtasksInput{EpicID: a.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
