package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/testutil"
	"github.com/runoshun/tasktracker/internal/tracker"
	"github.com/runoshun/tasktracker/internal/usecase"
)

func TestCreateItem_Execute(t *testing.T) {
	t.Run("creates task", func(t *testing.T) {
		store, logger := newFixture()
		uc := usecase.NewCreateItem(store, logger)

		out, err := uc.Execute(context.Background(), usecase.CreateItemInput{
			Kind:      domain.KindTask,
			Title:     "Write report",
			StartTime: at(10, 0),
			Duration:  time.Hour,
		})
		require.NoError(t, err)

		task, ok := out.Item.(domain.Task)
		require.True(t, ok)
		assert.Equal(t, 1, task.ID)
		assert.Equal(t, domain.StatusNew, task.Status)
		assert.Equal(t, at(11, 0), task.EndTime())
		assert.True(t, logger.HasEntry("INFO", "item"))
	})

	t.Run("creates epic and subtask", func(t *testing.T) {
		store, logger := newFixture()
		uc := usecase.NewCreateItem(store, logger)

		epicOut, err := uc.Execute(context.Background(), usecase.CreateItemInput{Kind: domain.KindEpic, Title: "Release"})
		require.NoError(t, err)

		subOut, err := uc.Execute(context.Background(), usecase.CreateItemInput{
			Kind:   domain.KindSubtask,
			Title:  "Tag",
			Status: domain.StatusDone,
			EpicID: epicOut.Item.ItemID(),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.KindSubtask, subOut.Item.Kind())

		epic := store.Epics()[0]
		assert.Equal(t, domain.StatusDone, epic.Status())
		assert.Equal(t, []int{subOut.Item.ItemID()}, epic.SubtaskIDs())
	})

	t.Run("returns error for empty title", func(t *testing.T) {
		store, logger := newFixture()
		_, err := usecase.NewCreateItem(store, logger).Execute(context.Background(), usecase.CreateItemInput{
			Kind:  domain.KindTask,
			Title: "  ",
		})
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	})

	t.Run("subtask requires an existing epic", func(t *testing.T) {
		store, logger := newFixture()
		uc := usecase.NewCreateItem(store, logger)

		_, err := uc.Execute(context.Background(), usecase.CreateItemInput{Kind: domain.KindSubtask, Title: "s"})
		assert.ErrorIs(t, err, domain.ErrEpicRequired)

		_, err = uc.Execute(context.Background(), usecase.CreateItemInput{Kind: domain.KindSubtask, Title: "s", EpicID: 9})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, store.Subtasks())
	})

	t.Run("returns error for overlapping task", func(t *testing.T) {
		store, logger := newFixture()
		uc := usecase.NewCreateItem(store, logger)
		in := usecase.CreateItemInput{Kind: domain.KindTask, Title: "a", StartTime: at(9, 0), Duration: time.Hour}
		_, err := uc.Execute(context.Background(), in)
		require.NoError(t, err)

		in.StartTime = at(9, 30)
		_, err = uc.Execute(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrTaskIntersection)
	})

	t.Run("returns error for unknown kind", func(t *testing.T) {
		store, logger := newFixture()
		_, err := usecase.NewCreateItem(store, logger).Execute(context.Background(), usecase.CreateItemInput{
			Kind:  "STORY",
			Title: "a",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidKind)
	})

	t.Run("logs save failure", func(t *testing.T) {
		repo := testutil.NewMockRepository()
		repo.SaveErr = errors.New("disk full")
		logger := &testutil.MockLogger{}
		uc := usecase.NewCreateItem(tracker.NewPersisting(tracker.New(), repo), logger)

		_, err := uc.Execute(context.Background(), usecase.CreateItemInput{Kind: domain.KindTask, Title: "a"})
		assert.ErrorIs(t, err, domain.ErrSave)
		assert.True(t, logger.HasEntry("ERROR", "item"))
	})
}

func TestCreateItem_SubtaskEpicCheckedWithWrite(t *testing.T) {
	store, logger := newFixture()
	epic, _ := store.CreateEpic(domain.NewEpic("e", ""))
	items := testutil.NewSerialManager(store)

	out, err := usecase.NewCreateItem(items, logger).Execute(context.Background(), usecase.CreateItemInput{
		Kind:   domain.KindSubtask,
		Title:  "s",
		EpicID: epic.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, epic.ID, out.Item.(domain.Subtask).EpicID)
	assert.Equal(t, 1, items.DoCalls)
	assert.Empty(t, items.Outside)

	_, err = usecase.NewCreateItem(items, logger).Execute(context.Background(), usecase.CreateItemInput{
		Kind:   domain.KindSubtask,
		Title:  "orphan",
		EpicID: 99,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, items.Outside)
	assert.Len(t, store.Subtasks(), 1)
}
