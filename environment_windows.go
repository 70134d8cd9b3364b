//go:build windows

package main

import (
	"codeberg.org/miketth/win-ime-switch/pkg/imeswitch"
	"codeberg.org/miketth/win-ime-switch/pkg/winime"
)

func newNativeEnvironment() (imeswitch.Environment, error) {
	env, err := winime.NewEnvironment()
	if err != nil {
		return nil, err
	}
	return env, nil
}
