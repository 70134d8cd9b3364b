//go:build !windows

package main

import (
	"errors"

	"codeberg.org/miketth/win-ime-switch/pkg/imeswitch"
)

func newNativeEnvironment() (imeswitch.Environment, error) {
	return nil, errors.New("the windows backend is only available on windows")
}
