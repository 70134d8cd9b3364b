package main

import (
	"errors"
	"fmt"
	"runtime"

	"codeberg.org/miketth/win-ime-switch/pkg/config"
	"codeberg.org/miketth/win-ime-switch/pkg/hyprland"
	"codeberg.org/miketth/win-ime-switch/pkg/imeswitch"
	"codeberg.org/miketth/win-ime-switch/pkg/xkblayouts"
	"go.uber.org/zap"
)

var errNoBackend = errors.New("no supported input method environment detected")

func selectEnvironment(cfg *config.Config, log *zap.SugaredLogger) (imeswitch.Environment, error) {
	backend := cfg.Backend
	if backend == config.BackendAuto {
		switch {
		case runtime.GOOS == "windows":
			backend = config.BackendWindows
		case hyprland.Running():
			backend = config.BackendHyprland
		default:
			return nil, fmt.Errorf("%w: %w", imeswitch.ErrEnvironment, errNoBackend)
		}
	}

	log.Debugw("selected backend", "backend", backend)

	var (
		env imeswitch.Environment
		err error
	)
	switch backend {
	case config.BackendWindows:
		env, err = newNativeEnvironment()
	case config.BackendHyprland:
		env, err = newHyprlandEnvironment(cfg, log)
	default:
		err = fmt.Errorf("unknown backend %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s backend: %w", imeswitch.ErrEnvironment, backend, err)
	}

	return env, nil
}

func newHyprlandEnvironment(cfg *config.Config, log *zap.SugaredLogger) (imeswitch.Environment, error) {
	ctl, err := hyprland.NewHyprctl()
	if err != nil {
		return nil, fmt.Errorf("connect hyprctl: %w", err)
	}

	// without the registry layouts keep their catalog names and the active
	// keymap can only be found through active_layout_index
	registry, err := xkblayouts.ParseLayouts(cfg.EvdevXMLPath)
	if err != nil {
		log.Warnw("xkb layout registry unavailable", "path", cfg.EvdevXMLPath, "error", err)
	}

	return hyprland.NewEnvironment(ctl, registry), nil
}
