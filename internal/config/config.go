package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	perrors "github.com/zhubert/sidepanel/internal/errors"
)

// Theme names accepted in the config file and on the command line.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Environment variables that override values from config.json.
const (
	EnvTheme         = "SIDEPANEL_THEME"
	EnvStorePath     = "SIDEPANEL_STORE"
	EnvLogPath       = "SIDEPANEL_LOG"
	EnvConfirmDelete = "SIDEPANEL_CONFIRM_DELETE"
	EnvNotifications = "SIDEPANEL_NOTIFICATIONS"
)

// Config holds the application configuration
type Config struct {
	Theme                string `json:"theme,omitempty"`                 // auto, dark or light
	StorePath            string `json:"store_path,omitempty"`            // SQLite database holding chat history
	LogPath              string `json:"log_path,omitempty"`              // Debug log file
	ConfirmDelete        bool   `json:"confirm_delete"`                  // Ask before deleting a chat from history
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification when a task finishes
	LastSessionID        string `json:"last_session_id,omitempty"`       // Chat reopened on startup

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sidepanel"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultStorePath returns the database location used when none is configured.
func DefaultStorePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// newDefault returns a config with defaults applied, bound to path.
func newDefault(path string) *Config {
	return &Config{
		Theme:         ThemeAuto,
		ConfirmDelete: true,
		filePath:      path,
	}
}

// Load reads the config from disk, or creates a new one if it doesn't exist.
// Environment overrides are applied after the file is read.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, perrors.ConfigLoadFailed("~/.sidepanel/config.json", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := newDefault(path)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, perrors.ConfigLoadFailed(path, err)
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, perrors.ConfigLoadFailed(path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return perrors.ConfigLoadFailed(strings.Join(existing, ","), err)
	}
	return nil
}

// applyEnv overlays SIDEPANEL_* variables onto c. Only called before the
// config is shared.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvTheme); v != "" {
		c.Theme = strings.ToLower(v)
	}
	if v := getenv(EnvStorePath); v != "" {
		c.StorePath = v
	}
	if v := getenv(EnvLogPath); v != "" {
		c.LogPath = v
	}
	if v := getenv(EnvConfirmDelete); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return perrors.ConfigInvalid(fmt.Sprintf("%s: %q is not a boolean", EnvConfirmDelete, v))
		}
		c.ConfirmDelete = b
	}
	if v := getenv(EnvNotifications); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return perrors.ConfigInvalid(fmt.Sprintf("%s: %q is not a boolean", EnvNotifications, v))
		}
		c.NotificationsEnabled = b
	}
	return nil
}

// ValidTheme reports whether name is a recognised theme.
func ValidTheme(name string) bool {
	switch name {
	case ThemeAuto, ThemeDark, ThemeLight:
		return true
	}
	return false
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Theme != "" && !ValidTheme(c.Theme) {
		return perrors.ConfigInvalid(fmt.Sprintf("unknown theme %q (want auto, dark or light)", c.Theme))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is saved to.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetTheme returns the configured theme, defaulting to auto
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Theme == "" {
		return ThemeAuto
	}
	return c.Theme
}

// SetTheme sets the theme. Unknown names are rejected.
func (c *Config) SetTheme(theme string) error {
	if !ValidTheme(theme) {
		return perrors.ConfigInvalid(fmt.Sprintf("unknown theme %q", theme))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
	return nil
}

// GetStorePath returns the database path, falling back to ~/.sidepanel/history.db
func (c *Config) GetStorePath() string {
	c.mu.RLock()
	p := c.StorePath
	c.mu.RUnlock()
	if p != "" {
		return p
	}
	def, err := DefaultStorePath()
	if err != nil {
		return filepath.Join(os.TempDir(), "sidepanel-history.db")
	}
	return def
}

// SetStorePath sets the database path
func (c *Config) SetStorePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.StorePath = path
}

// GetLogPath returns the configured log path, or "" for the logger default
func (c *Config) GetLogPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LogPath
}

// GetConfirmDelete returns whether deleting a chat asks for confirmation
func (c *Config) GetConfirmDelete() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ConfirmDelete
}

// SetConfirmDelete sets whether deleting a chat asks for confirmation
func (c *Config) SetConfirmDelete(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ConfirmDelete = enabled
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetLastSessionID returns the chat that was open when the panel last exited
func (c *Config) GetLastSessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastSessionID
}

// SetLastSessionID records the open chat
func (c *Config) SetLastSessionID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastSessionID = id
}
