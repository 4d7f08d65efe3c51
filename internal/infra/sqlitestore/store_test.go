package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasktracker/internal/domain"
)

// newTestStore opens a database in a temp dir with all migrations applied.
// It automatically closes the store when the test completes.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

func sampleSnapshot() domain.Snapshot {
	task := domain.NewTask("Write report", "numbers")
	task.ID = 1
	task.StartTime = time.Date(2025, 2, 28, 10, 0, 0, 0, time.Local)
	task.Duration = 90 * time.Minute

	epic := domain.NewEpic("Release", "")
	epic.ID = 2

	sub := domain.NewSubtask("Tag", "", epic.ID)
	sub.ID = 3
	sub.Status = domain.StatusDone
	sub.Duration = 15 * time.Minute

	return domain.Snapshot{
		Tasks:    []domain.Task{task},
		Epics:    []domain.Epic{epic},
		Subtasks: []domain.Subtask{sub},
	}
}

func TestStore_MigrationsApplied(t *testing.T) {
	s := newTestStore(t)

	version, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, migrations[len(migrations)-1].version, version)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), sampleSnapshot()))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	records, err := reopened.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestStore_LoadEmpty(t *testing.T) {
	s := newTestStore(t)

	records, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	snap := sampleSnapshot()

	require.NoError(t, s.Save(context.Background(), snap))

	records, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap.Records(), records)
}

func TestStore_SaveReplaces(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(context.Background(), sampleSnapshot()))

	task := domain.NewTask("only", "")
	task.ID = 7
	require.NoError(t, s.Save(context.Background(), domain.Snapshot{Tasks: []domain.Task{task}}))

	records, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 7, records[0].ID)
	assert.Equal(t, "only", records[0].Title)
}

func TestStore_LoadRejectsBadRows(t *testing.T) {
	s := newTestStore(t)
	_, err := s.db.Exec(`INSERT INTO items (id, kind, title, status) VALUES (1, 'STORY', 'x', 'NEW')`)
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
}
