package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/miketth/win-ime-switch/pkg/config"
	"codeberg.org/miketth/win-ime-switch/pkg/imeswitch"
	"codeberg.org/miketth/win-ime-switch/pkg/lockfile"
	"codeberg.org/miketth/win-ime-switch/pkg/statestore/file"
	"codeberg.org/miketth/win-ime-switch/pkg/statestore/sqlite"
	"go.uber.org/zap"
)

func openStateStore(cfg *config.Config, log *zap.SugaredLogger) (imeswitch.StateStore, func() error, error) {
	path := cfg.StateFilePath()
	log.Debugw("opening state store", "store", cfg.Store, "path", path)

	switch cfg.Store {
	case config.StoreSQLite:
		if err := ensureDir(path); err != nil {
			return nil, nil, err
		}
		store, err := sqlite.NewStateStore(path, log)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: open %s: %w", imeswitch.ErrStateStore, path, err)
		}
		return store, store.Close, nil

	default:
		store, err := file.NewStateStore(path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: open %s: %w", imeswitch.ErrStateStore, path, err)
		}
		return store, func() error { return nil }, nil
	}
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("%w: create state dir: %w", imeswitch.ErrStateStore, err)
	}
	return nil
}

// stateLock reports a held lock as a concurrent operation and every other
// lock failure as a state store error.
type stateLock struct {
	lock *lockfile.Lock
}

func newStateLock(path string) *stateLock {
	return &stateLock{lock: lockfile.New(path)}
}

func (l *stateLock) TryLock() error {
	err := l.lock.TryLock()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, lockfile.ErrLocked):
		return fmt.Errorf("%w: %w", imeswitch.ErrConcurrentOperation, err)
	default:
		return fmt.Errorf("%w: %w", imeswitch.ErrStateStore, err)
	}
}

func (l *stateLock) Unlock() error {
	return l.lock.Unlock()
}
