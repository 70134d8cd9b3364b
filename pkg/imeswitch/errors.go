package imeswitch

import "errors"

var (
	ErrNoLayoutsAvailable  = errors.New("no keyboard layouts available")
	ErrLayoutNotEnabled    = errors.New("layout is not enabled")
	ErrNoToggleHistory     = errors.New("no previous layout recorded")
	ErrConcurrentOperation = errors.New("another switch is in progress")
	ErrStateStore          = errors.New("state store")
	ErrEnvironment         = errors.New("input method environment")
)
