package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config file and directory names.
const (
	ConfigFileName    = "config.toml"
	DataDirName       = ".tracker"
	GlobalDirName     = "tracker"
	DataDirEnv        = "TRACKER_DIR"
	DefaultLogLevel   = "info"
	DefaultServerAddr = ":8080"
)

// Store backends.
const (
	StoreBackendCSV    = "csv"
	StoreBackendJSON   = "json"
	StoreBackendSQLite = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	Store    StoreConfig  `toml:"store"`
	Server   ServerConfig `toml:"server"`
	Log      LogConfig    `toml:"log"`
	Warnings []string     `toml:"-"` // Unknown keys found while loading
}

// StoreConfig holds persistence settings from the [store] section.
type StoreConfig struct {
	Backend string `toml:"backend,omitempty"` // "csv" (default), "json" or "sqlite"
	Path    string `toml:"path,omitempty"`    // Store file, relative to the data dir
}

// ServerConfig holds HTTP settings from the [server] section.
type ServerConfig struct {
	Addr string `toml:"addr,omitempty"` // Listen address
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: StoreBackendCSV,
			Path:    DefaultStoreFile(StoreBackendCSV),
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// DefaultStoreFile returns the default store file name for a backend.
func DefaultStoreFile(backend string) string {
	switch backend {
	case StoreBackendSQLite:
		return "tasks.db"
	case StoreBackendJSON:
		return "tasks.json"
	default:
		return "tasks.csv"
	}
}

// Validate checks the config for unsupported values.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreBackendCSV, StoreBackendJSON, StoreBackendSQLite:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStoreValue, c.Store.Backend)
	}
}

// StorePath resolves the store file against the data dir.
func (c *Config) StorePath(dataDir string) string {
	p := c.Store.Path
	if p == "" {
		p = DefaultStoreFile(c.Store.Backend)
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dataDir, p)
}

// RenderConfigTemplate renders the commented config file written by init.
func RenderConfigTemplate(cfg *Config) string {
	tmpl := template.Must(template.New("config").Parse(configTemplateContent))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return ""
	}
	return buf.String()
}

// ResolveDataDir returns the data directory: the explicit flag value, then
// $TRACKER_DIR, then ./.tracker.
func ResolveDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(DataDirEnv); env != "" {
		return env
	}
	return DataDirName
}

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, GlobalDirName)
}

// ConfigPath returns the config file path inside a directory.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}
