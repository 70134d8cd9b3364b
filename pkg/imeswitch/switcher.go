package imeswitch

import (
	"fmt"

	"codeberg.org/miketth/win-ime-switch/pkg/layout"
	"go.uber.org/zap"
)

type Switcher struct {
	env   Environment
	store StateStore
	lock  Locker
	log   *zap.SugaredLogger
}

// NewSwitcher builds a Switcher. store and lock are only used by SwitchTo and
// Toggle and may be nil for a Switcher that only lists and queries.
func NewSwitcher(
	env Environment,
	store StateStore,
	lock Locker,
	log *zap.SugaredLogger,
) *Switcher {
	return &Switcher{
		env:   env,
		store: store,
		lock:  lock,
		log:   log,
	}
}

// List returns the enabled layouts in the order the environment reports them.
func (s *Switcher) List() ([]Layout, error) {
	ids, err := s.enabledLayouts()
	if err != nil {
		return nil, err
	}

	out := make([]Layout, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.describe(id))
	}

	return out, nil
}

// Current returns the layout of the foreground input context.
func (s *Switcher) Current() (Layout, error) {
	id, err := s.env.ActiveLayout()
	if err != nil {
		return Layout{}, fmt.Errorf("%w: query active layout: %w", ErrEnvironment, err)
	}

	return s.describe(id), nil
}

// SwitchTo activates target and records the previously active layout for the
// next toggle. Switching to the active layout is a no-op that leaves the
// recorded layout untouched.
func (s *Switcher) SwitchTo(target layout.ID) (layout.ID, error) {
	var previous layout.ID
	err := s.locked(func() error {
		prev, changed, err := s.switchTo(target)
		if err != nil {
			return err
		}
		previous = prev

		if !changed {
			return nil
		}
		return s.save(prev)
	})

	return previous, err
}

// Toggle switches back to the recorded layout and records the layout that was
// active before it.
func (s *Switcher) Toggle() (previous, restored layout.ID, err error) {
	err = s.locked(func() error {
		stored, ok, err := s.store.Load()
		if err != nil {
			return fmt.Errorf("%w: load: %w", ErrStateStore, err)
		}
		if !ok {
			return ErrNoToggleHistory
		}
		restored = stored

		prev, changed, err := s.switchTo(stored)
		if err != nil {
			return err
		}
		previous = prev

		if !changed {
			return nil
		}
		return s.save(prev)
	})

	return previous, restored, err
}

func (s *Switcher) switchTo(target layout.ID) (layout.ID, bool, error) {
	enabled, err := s.enabledLayouts()
	if err != nil {
		return 0, false, err
	}

	hkl, found := findLayout(enabled, target)
	if !found {
		return 0, false, fmt.Errorf("%w: %s (%s); enable it in the system keyboard settings",
			ErrLayoutNotEnabled, target, s.describe(target).Name)
	}

	active, err := s.env.ActiveLayout()
	if err != nil {
		return 0, false, fmt.Errorf("%w: query active layout: %w", ErrEnvironment, err)
	}

	if active.SameLanguage(target) {
		s.log.Debugw("layout already active", "layout", active)
		return active, false, nil
	}

	s.log.Debugw("switching layout", "from", active, "to", hkl)
	if err := s.env.Activate(hkl); err != nil {
		return 0, false, fmt.Errorf("%w: activate %s: %w", ErrEnvironment, target, err)
	}

	return active, true, nil
}

func (s *Switcher) enabledLayouts() ([]layout.ID, error) {
	ids, err := s.env.EnabledLayouts()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoLayoutsAvailable, err)
	}
	if len(ids) == 0 {
		return nil, ErrNoLayoutsAvailable
	}

	return ids, nil
}

func (s *Switcher) save(id layout.ID) error {
	if err := s.store.Save(id); err != nil {
		return fmt.Errorf("%w: save: %w", ErrStateStore, err)
	}

	s.log.Debugw("recorded previous layout", "layout", id)
	return nil
}

func (s *Switcher) locked(fn func() error) error {
	if err := s.lock.TryLock(); err != nil {
		return fmt.Errorf("lock state: %w", err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.log.Warnw("release state lock", "error", err)
		}
	}()

	return fn()
}

func (s *Switcher) describe(id layout.ID) Layout {
	if namer, ok := s.env.(Namer); ok {
		if name, ok := namer.LayoutName(id); ok {
			return Layout{ID: id, Name: name}
		}
	}

	return Layout{ID: id, Name: layout.Name(id)}
}

// findLayout returns the enabled identifier with the same locale as target.
// The enabled value is preferred since it carries the host's device handle.
func findLayout(enabled []layout.ID, target layout.ID) (layout.ID, bool) {
	for _, id := range enabled {
		if id == target {
			return id, true
		}
	}
	for _, id := range enabled {
		if id.SameLanguage(target) {
			return id, true
		}
	}

	return 0, false
}
