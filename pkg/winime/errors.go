// Package winime switches the keyboard layout of the foreground window on
// Windows through user32.
package winime

import "fmt"

// CallError is a failed Win32 call. Err is nil when the call failed without
// setting a last error, which GetKeyboardLayoutList does when no layouts are
// installed.
type CallError struct {
	Func string
	Err  error
}

func (e *CallError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed", e.Func)
	}
	return fmt.Sprintf("%s: %v", e.Func, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}
