package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/testutil"
	"github.com/runoshun/tasktracker/internal/usecase"
)

func TestInitConfig_Execute(t *testing.T) {
	t.Run("creates data dir config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.DataInfo = domain.ConfigInfo{Path: "/data/.tracker/config.toml"}
		logger := &testutil.MockLogger{}

		out, err := usecase.NewInitConfig(manager, logger).Execute(context.Background(), usecase.InitConfigInput{})
		require.NoError(t, err)
		assert.Equal(t, "/data/.tracker/config.toml", out.Path)
		assert.True(t, manager.InitDataCalled)
		assert.False(t, manager.InitGlobalCalled)
		assert.True(t, logger.HasEntry("INFO", "config"))
	})

	t.Run("creates global config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.GlobalInfo = domain.ConfigInfo{Path: "/home/u/.config/tracker/config.toml"}

		out, err := usecase.NewInitConfig(manager, domain.NopLogger{}).Execute(context.Background(), usecase.InitConfigInput{Global: true})
		require.NoError(t, err)
		assert.Equal(t, "/home/u/.config/tracker/config.toml", out.Path)
		assert.True(t, manager.InitGlobalCalled)
		assert.False(t, manager.InitDataCalled)
	})

	t.Run("returns error when config exists", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.InitDataErr = domain.ErrConfigExists

		_, err := usecase.NewInitConfig(manager, domain.NopLogger{}).Execute(context.Background(), usecase.InitConfigInput{})
		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}
