package config

import (
	"errors"
	"fmt"
	"os"

	"codeberg.org/miketth/win-ime-switch/pkg/layout"
	"github.com/BurntSushi/toml"
)

const (
	BackendAuto     = "auto"
	BackendWindows  = "windows"
	BackendHyprland = "hyprland"

	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Backend      string            `toml:"backend"`
	Store        string            `toml:"store"`
	StateDir     string            `toml:"state_dir"`
	EvdevXMLPath string            `toml:"evdev_xml_path"`
	LogToJournal bool              `toml:"log_to_journal"`
	Debug        bool              `toml:"debug"`
	Aliases      map[string]string `toml:"aliases"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:      BackendAuto,
		Store:        StoreFile,
		EvdevXMLPath: "/usr/share/X11/xkb/rules/evdev.xml",
		Aliases:      map[string]string{},
	}
}

// LoadConfig reads path on top of the defaults. A missing file is not an
// error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendWindows, BackendHyprland:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}

	switch c.Store {
	case StoreFile, StoreSQLite:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}

	if _, err := layout.NewResolver(c.Aliases); err != nil {
		return fmt.Errorf("%w: aliases: %w", ErrInvalidConfig, err)
	}

	return nil
}
