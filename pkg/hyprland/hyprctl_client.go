package hyprland

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
)

type Hyprctl struct{}

func NewHyprctl() (*Hyprctl, error) {
	if !Running() {
		return nil, fmt.Errorf("HYPRLAND_INSTANCE_SIGNATURE is not set, %w", ErrNotRunning)
	}
	return &Hyprctl{}, nil
}

func (c *Hyprctl) SwitchToLayout(keyboard string, idx int) error {
	conn, err := c.makeRequest(fmt.Sprintf("switchxkblayout %s %d", keyboard, idx), "")
	if err != nil {
		return err
	}
	defer conn.Close()

	var buf bytes.Buffer
	_, err = io.Copy(&buf, conn)
	if err != nil {
		return fmt.Errorf("read response from hyprctl socket: %w", err)
	}

	if resp := strings.TrimSpace(buf.String()); resp != "ok" {
		return fmt.Errorf("hyprctl: %s", resp)
	}

	return nil
}

func (c *Hyprctl) GetKeyboards() ([]Keyboard, error) {
	conn, err := c.makeRequest("devices", "j")
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	dec := json.NewDecoder(conn)

	var devs devices
	if err := dec.Decode(&devs); err != nil {
		return nil, fmt.Errorf("unmarshal devices: %w", err)
	}

	keyboards := devs.Keyboards
	out := make([]Keyboard, 0, len(keyboards))
	for _, k := range keyboards {
		out = append(out, k.ToKeyboard())
	}

	return out, nil
}

func (c *Hyprctl) makeRequest(request string, flags string) (net.Conn, error) {
	conn, err := connect()
	if err != nil {
		return nil, fmt.Errorf("connect to hyprctl socket: %w", err)
	}

	_, err = conn.Write([]byte(fmt.Sprintf("%s/%s", flags, request)))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("write to hyprctl socket: %w", err)
	}

	return conn, nil
}
