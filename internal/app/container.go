// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/httpapi"
	"github.com/runoshun/tasktracker/internal/infra/config"
	"github.com/runoshun/tasktracker/internal/infra/csvstore"
	"github.com/runoshun/tasktracker/internal/infra/jsonstore"
	"github.com/runoshun/tasktracker/internal/infra/logging"
	"github.com/runoshun/tasktracker/internal/infra/sqlitestore"
	"github.com/runoshun/tasktracker/internal/tracker"
	"github.com/runoshun/tasktracker/internal/usecase"
)

// Config holds the resolved application settings.
type Config struct {
	DataDir    string // Data directory
	Backend    string // Store backend ("csv", "json" or "sqlite")
	StorePath  string // Absolute or data-dir relative store file
	ServerAddr string // Listen address for serve
}

// newConfig resolves the application settings from the loaded config.
func newConfig(dataDir string, cfg *domain.Config) Config {
	return Config{
		DataDir:    dataDir,
		Backend:    cfg.Store.Backend,
		StorePath:  cfg.StorePath(dataDir),
		ServerAddr: cfg.Server.Addr,
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Items         domain.TaskManager // Set by Open
	Repository    domain.Repository  // Set by Open
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	closers []io.Closer
	mu      sync.Mutex

	// Configuration
	Config Config
}

// New creates a Container for the given data directory. The item store is
// not opened until Open is called.
func New(dataDir string) (*Container, error) {
	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))

	return &Container{
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dataDir),
		Logger:        logger,
		closers:       []io.Closer{logger},
		Config:        newConfig(dataDir, appConfig),
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, items domain.TaskManager, loader domain.ConfigLoader, manager domain.ConfigManager, logger domain.Logger) *Container {
	return &Container{
		Items:         items,
		ConfigLoader:  loader,
		ConfigManager: manager,
		Logger:        logger,
		Config:        cfg,
	}
}

// Open loads the items from the configured store. The resulting manager
// saves after every mutation and is safe for concurrent use.
// Calling Open again is a no-op.
func (c *Container) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Items != nil {
		return nil
	}

	repo, closer, err := openRepository(c.Config)
	if err != nil {
		return err
	}
	if closer != nil {
		c.closers = append(c.closers, closer)
	}

	records, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load items from %s: %w", c.Config.StorePath, err)
	}
	store, err := tracker.Restore(records)
	if err != nil {
		return fmt.Errorf("load items from %s: %w", c.Config.StorePath, err)
	}

	c.Repository = repo
	c.Items = tracker.NewSynchronized(tracker.NewPersisting(store, repo))
	c.Logger.Debug(0, "store", fmt.Sprintf("loaded %d records from %s", len(records), c.Config.StorePath))
	return nil
}

// Close releases the store and log files.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// Console mirrors log entries to w when the logger supports it.
func (c *Container) Console(w io.Writer) {
	if l, ok := c.Logger.(*logging.Logger); ok {
		l.WithConsole(w)
	}
}

func openRepository(cfg Config) (domain.Repository, io.Closer, error) {
	switch cfg.Backend {
	case domain.StoreBackendSQLite:
		store, err := sqlitestore.Open(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case domain.StoreBackendJSON:
		return jsonstore.New(cfg.StorePath), nil, nil
	case domain.StoreBackendCSV, "":
		return csvstore.New(cfg.StorePath), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrInvalidStoreValue, cfg.Backend)
	}
}

// UseCase factory methods

// CreateItemUseCase returns a new CreateItem use case.
func (c *Container) CreateItemUseCase() *usecase.CreateItem {
	return usecase.NewCreateItem(c.Items, c.Logger)
}

// ShowItemUseCase returns a new ShowItem use case.
func (c *Container) ShowItemUseCase() *usecase.ShowItem {
	return usecase.NewShowItem(c.Items)
}

// EditItemUseCase returns a new EditItem use case.
func (c *Container) EditItemUseCase() *usecase.EditItem {
	return usecase.NewEditItem(c.Items, c.Logger)
}

// DeleteItemUseCase returns a new DeleteItem use case.
func (c *Container) DeleteItemUseCase() *usecase.DeleteItem {
	return usecase.NewDeleteItem(c.Items, c.Logger)
}

// ListItemsUseCase returns a new ListItems use case.
func (c *Container) ListItemsUseCase() *usecase.ListItems {
	return usecase.NewListItems(c.Items)
}

// ListEpicSubtasksUseCase returns a new ListEpicSubtasks use case.
func (c *Container) ListEpicSubtasksUseCase() *usecase.ListEpicSubtasks {
	return usecase.NewListEpicSubtasks(c.Items)
}

// ShowPrioritizedUseCase returns a new ShowPrioritized use case.
func (c *Container) ShowPrioritizedUseCase() *usecase.ShowPrioritized {
	return usecase.NewShowPrioritized(c.Items)
}

// ShowHistoryUseCase returns a new ShowHistory use case.
func (c *Container) ShowHistoryUseCase() *usecase.ShowHistory {
	return usecase.NewShowHistory(c.Items)
}

// ImportPlanUseCase returns a new ImportPlan use case.
func (c *Container) ImportPlanUseCase() *usecase.ImportPlan {
	return usecase.NewImportPlan(c.Items, c.Logger)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager, c.Logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// HTTPServer returns the HTTP API server over the opened items.
func (c *Container) HTTPServer() *httpapi.Server {
	return httpapi.NewServer(c.Items, c.Logger)
}
