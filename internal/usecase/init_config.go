package usecase

import (
	"context"

	"github.com/runoshun/tasktracker/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Config *domain.Config // Values rendered into the template
	Global bool           // If true, initialize global config; otherwise the data dir config
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig generates a configuration file from the template.
type InitConfig struct {
	configManager domain.ConfigManager
	logger        domain.Logger
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager, logger domain.Logger) *InitConfig {
	return &InitConfig{
		configManager: configManager,
		logger:        logger,
	}
}

// Execute creates a configuration file. An existing file is never
// overwritten; domain.ErrConfigExists is returned instead.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	var err error
	var path string

	if in.Global {
		path = uc.configManager.GlobalConfigInfo().Path
		err = uc.configManager.InitGlobalConfig(cfg)
	} else {
		path = uc.configManager.DataConfigInfo().Path
		err = uc.configManager.InitDataConfig(cfg)
	}

	if err != nil {
		return nil, err
	}

	uc.logger.Info(0, "config", "created "+path)
	return &InitConfigOutput{Path: path}, nil
}
