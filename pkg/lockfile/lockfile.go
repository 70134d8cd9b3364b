// Package lockfile provides an exclusive, non-blocking lock on a file shared
// between processes of the same user.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrLocked = errors.New("lock is held by another process")

type Lock struct {
	path string
	file *os.File
}

func New(path string) *Lock {
	return &Lock{path: path}
}

func (l *Lock) Path() string {
	return l.path
}

// TryLock acquires the lock or fails immediately with ErrLocked.
func (l *Lock) TryLock() error {
	if l.file != nil {
		return fmt.Errorf("%s: already locked by this process", l.path)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := tryLock(file); err != nil {
		_ = file.Close()
		return err
	}

	l.file = file
	return nil
}

// Unlock releases the lock. The lock file itself stays in place so that a
// concurrent locker never ends up holding a lock on an unlinked file.
func (l *Lock) Unlock() error {
	if l.file == nil {
		return nil
	}

	file := l.file
	l.file = nil

	unlockErr := unlock(file)
	closeErr := file.Close()

	if unlockErr != nil {
		return fmt.Errorf("unlock: %w", unlockErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close lock file: %w", closeErr)
	}

	return nil
}
