// Package config handles the XDG configuration directory, file paths and
// the optional settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"ktask/internal/tasklist"
)

const (
	// AppName is the application directory name.
	AppName = "ktask"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// YAMLSettingsFile and TOMLSettingsFile are the settings filenames,
	// tried in that order.
	YAMLSettingsFile = "config.yaml"
	TOMLSettingsFile = "config.toml"

	// DefaultDataFile is the task list filename inside the config directory.
	DefaultDataFile = "tasks.txt"

	// DefaultSyncList is the Google Tasks list that sync mirrors into.
	DefaultSyncList = "ktask"
)

// ErrInvalidSettings is returned for settings files with out-of-range values.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the user-tunable values read from the settings file.
type Settings struct {
	// Capacity is the maximum number of tasks; 0 means unbounded.
	Capacity int `yaml:"capacity" toml:"capacity"`

	// DataFile is the task list path, relative to the config directory
	// unless absolute.
	DataFile string `yaml:"data_file" toml:"data_file"`

	// SyncList is the Google Tasks list name used by sync.
	SyncList string `yaml:"sync_list" toml:"sync_list"`
}

// DefaultSettings returns the settings used when no file overrides them.
func DefaultSettings() Settings {
	return Settings{
		Capacity: tasklist.DefaultCapacity,
		DataFile: DefaultDataFile,
		SyncList: DefaultSyncList,
	}
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	Settings Settings
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/ktask or $HOME/.config/ktask.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Settings: DefaultSettings()}, nil
}

// Load is New followed by LoadSettings.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.LoadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// LoadSettings reads config.yaml, or config.toml if there is no YAML file,
// over the defaults. Having neither is not an error.
func (c *Config) LoadSettings() error {
	settings := DefaultSettings()

	yamlPath := filepath.Join(c.Dir, YAMLSettingsFile)
	tomlPath := filepath.Join(c.Dir, TOMLSettingsFile)

	if data, err := os.ReadFile(yamlPath); err == nil {
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("parse %s: %w", yamlPath, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", yamlPath, err)
	} else if _, err := toml.DecodeFile(tomlPath, &settings); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("parse %s: %w", tomlPath, err)
	}

	if settings.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative, got %d", ErrInvalidSettings, settings.Capacity)
	}
	if settings.DataFile == "" {
		settings.DataFile = DefaultDataFile
	}
	if settings.SyncList == "" {
		settings.SyncList = DefaultSyncList
	}
	c.Settings = settings
	return nil
}

// DataPath returns the path of the task list file.
func (c *Config) DataPath() string {
	if filepath.IsAbs(c.Settings.DataFile) {
		return c.Settings.DataFile
	}
	return filepath.Join(c.Dir, c.Settings.DataFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
