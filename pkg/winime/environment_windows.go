//go:build windows

package winime

import (
	"errors"
	"fmt"

	"codeberg.org/miketth/win-ime-switch/pkg/layout"
	"golang.org/x/sys/windows"
	"golang.org/x/text/language"
)

var ErrNoForegroundWindow = errors.New("no foreground window")

// Environment drives the input language of the foreground window's thread.
type Environment struct{}

func NewEnvironment() (*Environment, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("load user32: %w", err)
	}
	return &Environment{}, nil
}

func (e *Environment) ActiveLayout() (layout.ID, error) {
	hwnd, err := foregroundWindow()
	if err != nil {
		return 0, err
	}

	tid, err := windows.GetWindowThreadProcessId(hwnd, nil)
	if err != nil {
		return 0, fmt.Errorf("GetWindowThreadProcessId: %w", err)
	}

	h := getKeyboardLayout(tid)
	if h == 0 {
		return 0, &CallError{Func: "GetKeyboardLayout"}
	}

	return layout.ID(uint32(h)), nil
}

func (e *Environment) EnabledLayouts() ([]layout.ID, error) {
	list, err := getKeyboardLayoutList()
	if err != nil {
		return nil, err
	}

	ids := make([]layout.ID, 0, len(list))
	for _, h := range list {
		ids = append(ids, layout.ID(uint32(h)))
	}

	return ids, nil
}

// Activate asks the foreground window to change its input language. The
// full handle is looked up again since a 64-bit HKL does not fit in an ID.
func (e *Environment) Activate(id layout.ID) error {
	list, err := getKeyboardLayoutList()
	if err != nil {
		return err
	}

	var target hkl
	for _, h := range list {
		if layout.ID(uint32(h)) == id {
			target = h
			break
		}
	}
	if target == 0 {
		return fmt.Errorf("layout %s is not loaded", id)
	}

	hwnd, err := foregroundWindow()
	if err != nil {
		return err
	}

	return postInputLangChangeRequest(hwnd, target)
}

func (e *Environment) LayoutName(id layout.ID) (string, bool) {
	name, err := lcidToLocaleName(uint32(id.LangID()))
	if err != nil {
		return "", false
	}

	tag, err := language.Parse(name)
	if err != nil {
		return "", false
	}

	return layout.TagName(tag), true
}

func foregroundWindow() (windows.HWND, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return 0, ErrNoForegroundWindow
	}
	return hwnd, nil
}
