package hyprland

import (
	"errors"
	"fmt"

	"codeberg.org/miketth/win-ime-switch/pkg/layout"
	"codeberg.org/miketth/win-ime-switch/pkg/xkblayouts"
)

var ErrNoKeyboard = errors.New("no keyboard reported by hyprland")

type KeyboardLayoutSwitcher interface {
	GetKeyboards() ([]Keyboard, error)
	SwitchToLayout(keyboard string, idx int) error
}

// Environment exposes the main keyboard's xkb layouts as layout identifiers.
// The high word of an identifier holds the keymap position plus one, the way
// a Windows HKL carries a device handle, so Activate can pick the exact
// keymap when a locale is configured twice.
//
// The main keyboard is queried once and reused until Activate changes it.
type Environment struct {
	ctl      KeyboardLayoutSwitcher
	registry *xkblayouts.Registry
	keyboard *Keyboard
}

func NewEnvironment(ctl KeyboardLayoutSwitcher, registry *xkblayouts.Registry) *Environment {
	return &Environment{
		ctl:      ctl,
		registry: registry,
	}
}

func (e *Environment) EnabledLayouts() ([]layout.ID, error) {
	kb, err := e.mainKeyboard()
	if err != nil {
		return nil, err
	}

	ids := make([]layout.ID, 0, len(kb.Keymaps))
	for i, km := range kb.Keymaps {
		if id, ok := e.keymapID(i, km); ok {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func (e *Environment) ActiveLayout() (layout.ID, error) {
	kb, err := e.mainKeyboard()
	if err != nil {
		return 0, err
	}

	idx := e.activeIndex(kb)
	if idx < 0 || idx >= len(kb.Keymaps) {
		return 0, fmt.Errorf("active keymap %q of %s is not configured", kb.ActiveKeymap, kb.Name)
	}

	id, ok := e.keymapID(idx, kb.Keymaps[idx])
	if !ok {
		return 0, fmt.Errorf("no locale known for xkb layout %q", kb.Keymaps[idx].Layout)
	}

	return id, nil
}

func (e *Environment) Activate(id layout.ID) error {
	kb, err := e.mainKeyboard()
	if err != nil {
		return err
	}

	idx := e.keymapIndex(kb, id)
	if idx < 0 {
		return fmt.Errorf("layout %s is not configured for %s", id, kb.Name)
	}

	if err := e.ctl.SwitchToLayout(kb.Name, idx); err != nil {
		return fmt.Errorf("switch %s to keymap %d: %w", kb.Name, idx, err)
	}
	e.keyboard = nil

	return nil
}

func (e *Environment) LayoutName(id layout.ID) (string, bool) {
	kb, err := e.mainKeyboard()
	if err != nil {
		return "", false
	}

	idx := e.keymapIndex(kb, id)
	if idx < 0 {
		return "", false
	}

	name := e.registry.Description(kb.Keymaps[idx])
	return name, name != ""
}

func (e *Environment) mainKeyboard() (Keyboard, error) {
	if e.keyboard != nil {
		return *e.keyboard, nil
	}

	kb, err := e.queryMainKeyboard()
	if err != nil {
		return Keyboard{}, err
	}
	e.keyboard = &kb

	return kb, nil
}

func (e *Environment) queryMainKeyboard() (Keyboard, error) {
	keyboards, err := e.ctl.GetKeyboards()
	if err != nil {
		return Keyboard{}, fmt.Errorf("get keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return Keyboard{}, ErrNoKeyboard
	}

	for _, kb := range keyboards {
		if kb.Main {
			return kb, nil
		}
	}

	return keyboards[0], nil
}

// activeIndex falls back to matching the keymap description on Hyprland
// versions that do not report active_layout_index.
func (e *Environment) activeIndex(kb Keyboard) int {
	if kb.ActiveIndex >= 0 {
		return kb.ActiveIndex
	}

	active, ok := e.registry.KeymapByDescription(kb.ActiveKeymap)
	if !ok {
		return -1
	}

	for i, km := range kb.Keymaps {
		if km == active {
			return i
		}
	}

	return -1
}

func (e *Environment) keymapID(idx int, km xkblayouts.Keymap) (layout.ID, bool) {
	lcid, ok := e.registry.LocaleFor(km)
	if !ok {
		return 0, false
	}

	return layout.ID(uint32(idx+1)<<16 | uint32(lcid.LangID())), true
}

func (e *Environment) keymapIndex(kb Keyboard, id layout.ID) int {
	if pos := int(id >> 16); pos > 0 && pos <= len(kb.Keymaps) {
		if want, ok := e.keymapID(pos-1, kb.Keymaps[pos-1]); ok && want == id {
			return pos - 1
		}
	}

	for i, km := range kb.Keymaps {
		if lcid, ok := e.registry.LocaleFor(km); ok && lcid.SameLanguage(id) {
			return i
		}
	}

	return -1
}
