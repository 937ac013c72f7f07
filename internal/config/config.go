// ABOUTME: Configuration management for minidiary with YAML config loading.
// ABOUTME: Handles settings and theme file locations, locale, logging, and ~ expansion.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/2389-research/minidiary/internal/fsutil"
	"github.com/2389-research/minidiary/internal/platform"
)

const (
	settingsFile = "settings.json"
	themesFile   = "themes.toml"
)

// Keys accepted by Get and Set, in display order.
const (
	KeySettingsPath = "settings_path"
	KeyThemesPath   = "themes_path"
	KeyLocale       = "locale"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
)

// Keys lists the settable config keys.
var Keys = []string{KeySettingsPath, KeyThemesPath, KeyLocale, KeyLogLevel, KeyLogFormat}

// ErrUnknownKey is returned for keys not in Keys.
var ErrUnknownKey = errors.New("unknown config key")

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Config stores minidiary configuration loaded from ~/.config/minidiary/config.yaml.
// User preferences are not kept here; they live in the settings store.
type Config struct {
	SettingsPath string    `yaml:"settings_path,omitempty"`
	ThemesPath   string    `yaml:"themes_path,omitempty"`
	Locale       string    `yaml:"locale,omitempty"`
	Log          LogConfig `yaml:"log,omitempty"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Get returns the raw value of key as written in the config file.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeySettingsPath:
		return c.SettingsPath, nil
	case KeyThemesPath:
		return c.ThemesPath, nil
	case KeyLocale:
		return c.Locale, nil
	case KeyLogLevel:
		return c.Log.Level, nil
	case KeyLogFormat:
		return c.Log.Format, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

// Set validates value and stores it under key. An empty value resets the key
// to its default.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case KeySettingsPath:
		c.SettingsPath = value
	case KeyThemesPath:
		c.ThemesPath = value
	case KeyLocale:
		c.Locale = value
	case KeyLogLevel:
		value = strings.ToLower(value)
		if value != "" && !lo.Contains(logLevels, value) {
			return fmt.Errorf("invalid log level %q: want one of %s", value, strings.Join(logLevels, ", "))
		}
		c.Log.Level = value
	case KeyLogFormat:
		value = strings.ToLower(value)
		if value != "" && !lo.Contains(logFormats, value) {
			return fmt.Errorf("invalid log format %q: want one of %s", value, strings.Join(logFormats, ", "))
		}
		c.Log.Format = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// GetSettingsPath returns the settings file path, defaulting to settings.json in the user data dir.
func (c *Config) GetSettingsPath() (string, error) {
	if c.SettingsPath != "" {
		return ExpandPath(c.SettingsPath)
	}
	dir, err := platform.UserDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFile), nil
}

// GetThemesPath returns the theme overrides path, defaulting to themes.toml in the user data dir.
func (c *Config) GetThemesPath() (string, error) {
	if c.ThemesPath != "" {
		return ExpandPath(c.ThemesPath)
	}
	dir, err := platform.UserDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, themesFile), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, platform.AppName, "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// Load reads config from disk. Returns an empty config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads config from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return fsutil.AtomicWrite(path, data)
}
