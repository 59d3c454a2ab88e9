// Package config loads user settings from a YAML file under the XDG config
// directory, then applies TODO_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
	"gopkg.in/yaml.v3"
)

const (
	AppName  = "todo"
	FileName = "config.yaml"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	UI        UIConfig        `yaml:"ui"`
}

type StorageConfig struct {
	// Backend is one of file, sqlite or memory.
	Backend string `yaml:"backend" env:"TODO_STORAGE_BACKEND"`
	Dir     string `yaml:"dir" env:"TODO_DATA_DIR"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"TODO_LOG_LEVEL"`
	// File receives the structured log. Empty disables logging.
	File string `yaml:"file" env:"TODO_LOG_FILE"`
}

type AnalyticsConfig struct {
	MeasurementID string `yaml:"measurement_id" env:"TODO_GA_MEASUREMENT_ID"`
}

type UIConfig struct {
	DefaultFilter string `yaml:"default_filter" env:"TODO_DEFAULT_FILTER"`
}

func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: storage.BackendFile,
			Dir:     DefaultDataDir(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			DefaultFilter: string(model.FilterAll),
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case storage.BackendFile, storage.BackendSQLite, storage.BackendMemory:
	default:
		return fmt.Errorf("%w: storage.backend %q", ErrInvalid, c.Storage.Backend)
	}
	if c.Storage.Backend != storage.BackendMemory && c.Storage.Dir == "" {
		return fmt.Errorf("%w: storage.dir is empty", ErrInvalid)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level)
	}
	if _, err := model.ParseFilter(c.UI.DefaultFilter); err != nil {
		return fmt.Errorf("%w: ui.default_filter %q", ErrInvalid, c.UI.DefaultFilter)
	}
	return nil
}

// Filter returns the configured start filter, or all when it is invalid.
func (c *Config) Filter() model.Filter {
	f, err := model.ParseFilter(c.UI.DefaultFilter)
	if err != nil {
		return model.FilterAll
	}
	return f
}

func (c *Config) normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = storage.BackendFile
	}
	c.Storage.Dir = expandHome(strings.TrimSpace(c.Storage.Dir))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Logging.File = expandHome(strings.TrimSpace(c.Logging.File))
	c.Analytics.MeasurementID = strings.TrimSpace(c.Analytics.MeasurementID)
	c.UI.DefaultFilter = strings.ToLower(strings.TrimSpace(c.UI.DefaultFilter))
	if c.UI.DefaultFilter == "" {
		c.UI.DefaultFilter = string(model.FilterAll)
	}
}

// DefaultPath returns the config file under DefaultConfigDir.
func DefaultPath() string {
	return filepath.Join(DefaultConfigDir(), FileName)
}

// DefaultConfigDir uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, fallback, AppName)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
