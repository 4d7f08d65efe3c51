package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/usecase"
)

func openContainer(t *testing.T, dataDir string) *Container {
	t.Helper()
	c, err := New(dataDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Open(context.Background()))
	return c
}

func TestContainer_PersistsAcrossOpens(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	for _, backend := range []string{domain.StoreBackendCSV, domain.StoreBackendJSON, domain.StoreBackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			dataDir := t.TempDir()
			content := "[store]\nbackend = \"" + backend + "\"\n"
			require.NoError(t, os.WriteFile(filepath.Join(dataDir, domain.ConfigFileName), []byte(content), 0o600))

			c := openContainer(t, dataDir)
			assert.Equal(t, filepath.Join(dataDir, domain.DefaultStoreFile(backend)), c.Config.StorePath)

			ctx := context.Background()
			epic, err := c.CreateItemUseCase().Execute(ctx, usecase.CreateItemInput{Kind: domain.KindEpic, Title: "Release"})
			require.NoError(t, err)
			_, err = c.CreateItemUseCase().Execute(ctx, usecase.CreateItemInput{
				Kind:   domain.KindSubtask,
				Title:  "Tag",
				Status: domain.StatusDone,
				EpicID: epic.Item.ItemID(),
			})
			require.NoError(t, err)
			require.NoError(t, c.Close())

			reopened := openContainer(t, dataDir)
			epics := reopened.Items.Epics()
			require.Len(t, epics, 1)
			assert.Equal(t, domain.StatusDone, epics[0].Status())
			assert.Len(t, reopened.Items.Subtasks(), 1)

			task, err := reopened.CreateItemUseCase().Execute(ctx, usecase.CreateItemInput{Kind: domain.KindTask, Title: "next"})
			require.NoError(t, err)
			assert.Equal(t, 3, task.Item.ItemID())
		})
	}
}

func TestContainer_OpenIsIdempotent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := openContainer(t, t.TempDir())
	items := c.Items

	require.NoError(t, c.Open(context.Background()))
	assert.Same(t, items, c.Items)
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, domain.ConfigFileName), []byte("[store]\nbackend = \"mongo\"\n"), 0o600))

	_, err := New(dataDir)
	assert.ErrorIs(t, err, domain.ErrInvalidStoreValue)
}
