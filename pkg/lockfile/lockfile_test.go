//go:build windows || (unix && !solaris && !aix && !hurd)

package lockfile

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestTryLockExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.lock")

	first := New(path)
	if err := first.TryLock(); err != nil {
		t.Fatalf("first TryLock() error: %v", err)
	}

	second := New(path)
	if err := second.TryLock(); !errors.Is(err, ErrLocked) {
		t.Fatalf("second TryLock() error = %v, want ErrLocked", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}

	if err := second.TryLock(); err != nil {
		t.Fatalf("TryLock() after release error: %v", err)
	}
	if err := second.Unlock(); err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
}

func TestUnlockWithoutLock(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "state.lock"))
	if err := l.Unlock(); err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
}

func TestTryLockTwiceSameLock(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "nested", "state.lock"))
	if err := l.TryLock(); err != nil {
		t.Fatalf("TryLock() error: %v", err)
	}
	defer l.Unlock()

	if err := l.TryLock(); err == nil {
		t.Fatal("second TryLock() on the same lock succeeded")
	}
}
