package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "win-ime-switch"

// DefaultConfigPath returns the per-user config file.
// Unix: $XDG_CONFIG_HOME/win-ime-switch/config.toml
// Windows: %LOCALAPPDATA%\win-ime-switch\config.toml
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// StateDirPath returns the directory holding the toggle state and its lock.
// Unix: $XDG_STATE_HOME/win-ime-switch
// Windows: %LOCALAPPDATA%\win-ime-switch
func (c *Config) StateDirPath() string {
	if c.StateDir != "" {
		return c.StateDir
	}
	return filepath.Join(xdg.StateHome, appName)
}

func (c *Config) StateFilePath() string {
	switch c.Store {
	case StoreSQLite:
		return filepath.Join(c.StateDirPath(), "state.db")
	default:
		return filepath.Join(c.StateDirPath(), "state")
	}
}

func (c *Config) LockFilePath() string {
	return filepath.Join(c.StateDirPath(), "state.lock")
}
