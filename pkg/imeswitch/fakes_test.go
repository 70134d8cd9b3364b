package imeswitch

import (
	"errors"

	"codeberg.org/miketth/win-ime-switch/pkg/layout"
)

type fakeEnv struct {
	enabled     []layout.ID
	active      layout.ID
	activated   []layout.ID
	enabledErr  error
	activeErr   error
	activateErr error
}

func (e *fakeEnv) ActiveLayout() (layout.ID, error) {
	if e.activeErr != nil {
		return 0, e.activeErr
	}
	return e.active, nil
}

func (e *fakeEnv) EnabledLayouts() ([]layout.ID, error) {
	if e.enabledErr != nil {
		return nil, e.enabledErr
	}
	return e.enabled, nil
}

func (e *fakeEnv) Activate(id layout.ID) error {
	if e.activateErr != nil {
		return e.activateErr
	}
	e.activated = append(e.activated, id)
	e.active = id
	return nil
}

type namingEnv struct {
	*fakeEnv
	names map[layout.ID]string
}

func (e namingEnv) LayoutName(id layout.ID) (string, bool) {
	name, ok := e.names[id]
	return name, ok
}

type fakeLock struct {
	held    bool
	locks   int
	unlocks int
}

func (l *fakeLock) TryLock() error {
	if l.held {
		return ErrConcurrentOperation
	}
	l.held = true
	l.locks++
	return nil
}

func (l *fakeLock) Unlock() error {
	l.held = false
	l.unlocks++
	return nil
}

var errDisk = errors.New("disk full")

type failingStore struct {
	id  layout.ID
	set bool
}

func (s *failingStore) Load() (layout.ID, bool, error) {
	return s.id, s.set, nil
}

func (s *failingStore) Save(layout.ID) error {
	return errDisk
}

type corruptStore struct{}

func (corruptStore) Load() (layout.ID, bool, error) {
	return 0, false, errors.New("invalid state")
}

func (corruptStore) Save(layout.ID) error {
	return nil
}
