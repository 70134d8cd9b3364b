package imeswitch

import "codeberg.org/miketth/win-ime-switch/pkg/layout"

// Environment is the host input method subsystem. It owns the active layout;
// the switcher only queries and mutates it.
type Environment interface {
	ActiveLayout() (layout.ID, error)
	EnabledLayouts() ([]layout.ID, error)
	Activate(id layout.ID) error
}

// Namer is implemented by environments that know better display names than
// the built-in catalog.
type Namer interface {
	LayoutName(id layout.ID) (string, bool)
}

// StateStore persists the layout to return to on the next toggle. Load
// reports false when nothing has been saved yet.
type StateStore interface {
	Load() (layout.ID, bool, error)
	Save(id layout.ID) error
}

// Locker guards the load, switch and save sequence across processes.
// TryLock must not block and must return an error matching
// ErrConcurrentOperation when another process holds the lock.
type Locker interface {
	TryLock() error
	Unlock() error
}

type Layout struct {
	ID   layout.ID
	Name string
}
