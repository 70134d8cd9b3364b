//go:build !windows && (!unix || solaris || aix || hurd)

package lockfile

import (
	"errors"
	"fmt"
	"os"
)

// Platforms without flock(2) cannot hold the lock.
func tryLock(file *os.File) error {
	return fmt.Errorf("lock %s: %w", file.Name(), errors.ErrUnsupported)
}

func unlock(*os.File) error {
	return nil
}
