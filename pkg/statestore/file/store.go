package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/miketth/win-ime-switch/pkg/layout"
)

var ErrInvalidState = errors.New("invalid state file")

// StateStore keeps the toggle layout in a one line text file holding the
// identifier as eight hex digits.
type StateStore struct {
	path string
}

func NewStateStore(filename string) (*StateStore, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	return &StateStore{path: filename}, nil
}

func (s *StateStore) Path() string {
	return s.path
}

func (s *StateStore) Load() (layout.ID, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read file: %w", err)
	}

	text := strings.TrimSpace(string(data))
	v, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return 0, false, fmt.Errorf("%w %s: %q", ErrInvalidState, s.path, text)
	}

	return layout.ID(v), true, nil
}

// Save replaces the state file atomically: a crash leaves either the old or
// the new content, never a truncated file.
func (s *StateStore) Save(id layout.ID) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := fmt.Fprintf(tmp, "%08X\n", uint32(id)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	committed = true

	return nil
}
