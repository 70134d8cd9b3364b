//go:build windows

package winime

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	wmInputLangChangeRequest = 0x0050
	localeNameMaxLength      = 85
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetKeyboardLayout     = user32.NewProc("GetKeyboardLayout")
	procGetKeyboardLayoutList = user32.NewProc("GetKeyboardLayoutList")
	procPostMessageW          = user32.NewProc("PostMessageW")
	procLCIDToLocaleName      = kernel32.NewProc("LCIDToLocaleName")
)

type hkl uintptr

func getKeyboardLayout(threadID uint32) hkl {
	r, _, _ := procGetKeyboardLayout.Call(uintptr(threadID))
	return hkl(r)
}

func getKeyboardLayoutList() ([]hkl, error) {
	n, _, err := procGetKeyboardLayoutList.Call(0, 0)
	if n == 0 {
		return nil, callError("GetKeyboardLayoutList", err)
	}

	list := make([]hkl, n)
	got, _, err := procGetKeyboardLayoutList.Call(n, uintptr(unsafe.Pointer(&list[0])))
	if got == 0 {
		return nil, callError("GetKeyboardLayoutList", err)
	}

	// the list can shrink between the two calls
	return list[:got], nil
}

func postInputLangChangeRequest(hwnd windows.HWND, layout hkl) error {
	r, _, err := procPostMessageW.Call(uintptr(hwnd), wmInputLangChangeRequest, 0, uintptr(layout))
	if r == 0 {
		return callError("PostMessageW", err)
	}
	return nil
}

func lcidToLocaleName(lcid uint32) (string, error) {
	buf := make([]uint16, localeNameMaxLength)
	n, _, err := procLCIDToLocaleName.Call(uintptr(lcid), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)), 0)
	if n == 0 {
		return "", callError("LCIDToLocaleName", err)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func callError(name string, err error) error {
	if errno, ok := err.(windows.Errno); ok && errno == 0 {
		return &CallError{Func: name}
	}
	return &CallError{Func: name, Err: err}
}
