package hyprland

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

var ErrNotRunning = errors.New("hyprland might not be running")

// Running reports whether the process was started inside a Hyprland session.
func Running() bool {
	return os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != ""
}

const requestSocket = ".socket.sock"

func connect() (net.Conn, error) {
	socketPath, err := getSocketPath()
	if err != nil {
		return nil, fmt.Errorf("get socket path: %w", err)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return conn, nil
}

// getSocketPath prefers $XDG_RUNTIME_DIR/hypr, used since Hyprland 0.40,
// and falls back to the older /tmp/hypr location.
func getSocketPath() (string, error) {
	signature := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if signature == "" {
		return "", fmt.Errorf("HYPRLAND_INSTANCE_SIGNATURE is not set, %w", ErrNotRunning)
	}

	candidates := []string{
		filepath.Join(xdg.RuntimeDir, "hypr", signature, requestSocket),
		filepath.Join("/tmp/hypr", signature, requestSocket),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no hyprctl socket for instance %s, %w", signature, ErrNotRunning)
}
