package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/testutil"
)

func TestPersisting_SavesAfterMutations(t *testing.T) {
	repo := testutil.NewMockRepository()
	p := NewPersisting(New(), repo)

	task, err := p.CreateTask(domain.NewTask("a", ""))
	require.NoError(t, err)
	e, err := p.CreateEpic(domain.NewEpic("e", ""))
	require.NoError(t, err)
	_, err = p.CreateSubtask(domain.NewSubtask("s", "", e.ID))
	require.NoError(t, err)
	assert.Equal(t, 3, repo.SaveCalls)

	snap, ok := repo.LastSaved()
	require.True(t, ok)
	assert.Len(t, snap.Tasks, 1)
	assert.Len(t, snap.Epics, 1)
	assert.Len(t, snap.Subtasks, 1)

	task.Title = "renamed"
	_, err = p.UpdateTask(task)
	require.NoError(t, err)
	require.NoError(t, p.DeleteEpic(e.ID))
	assert.Equal(t, 5, repo.SaveCalls)

	snap, _ = repo.LastSaved()
	assert.Equal(t, "renamed", snap.Tasks[0].Title)
	assert.Empty(t, snap.Epics)
	assert.Empty(t, snap.Subtasks)
}

func TestPersisting_ReadsDoNotSave(t *testing.T) {
	repo := testutil.NewMockRepository()
	p := NewPersisting(New(), repo)
	task, _ := p.CreateTask(domain.NewTask("a", ""))
	calls := repo.SaveCalls

	_, _ = p.GetTask(task.ID)
	_ = p.Tasks()
	_ = p.History()
	_ = p.Prioritized()

	assert.Equal(t, calls, repo.SaveCalls)
	assert.Len(t, p.History(), 1)
}

func TestPersisting_FailedMutationDoesNotSave(t *testing.T) {
	repo := testutil.NewMockRepository()
	p := NewPersisting(New(), repo)
	_, _ = p.CreateTask(scheduled("a", at(9, 0), time.Hour))

	_, err := p.CreateTask(scheduled("b", at(9, 30), time.Hour))
	assert.ErrorIs(t, err, domain.ErrTaskIntersection)
	assert.Equal(t, 1, repo.SaveCalls)
}

func TestPersisting_SaveErrorIsWrapped(t *testing.T) {
	repo := testutil.NewMockRepository()
	repo.SaveErr = errors.New("disk full")
	store := New()
	p := NewPersisting(store, repo)

	created, err := p.CreateTask(domain.NewTask("a", ""))
	assert.ErrorIs(t, err, domain.ErrSave)
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 1, created.ID)
	assert.Len(t, store.Tasks(), 1)

	assert.ErrorIs(t, p.DeleteTask(created.ID), domain.ErrSave)
	assert.ErrorIs(t, p.Save(context.Background()), domain.ErrSave)
}

func TestPersisting_RestoreRoundTrip(t *testing.T) {
	repo := testutil.NewMockRepository()
	p := NewPersisting(New(), repo)
	e, _ := p.CreateEpic(domain.NewEpic("e", ""))
	_, _ = p.CreateSubtask(scheduledSub("s", e.ID, at(10, 0), time.Hour))

	records, err := repo.Load(context.Background())
	require.NoError(t, err)
	restored, err := Restore(records)
	require.NoError(t, err)

	assert.Equal(t, p.Epics(), restored.Epics())
	assert.Equal(t, p.Subtasks(), restored.Subtasks())
}
