package memory

import (
	"sync"

	"codeberg.org/miketth/win-ime-switch/pkg/layout"
)

type StateStore struct {
	lock  sync.Mutex
	id    layout.ID
	set   bool
	saves int
}

func NewStateStore() *StateStore {
	return &StateStore{}
}

func (s *StateStore) Load() (layout.ID, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.id, s.set, nil
}

func (s *StateStore) Save(id layout.ID) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.id = id
	s.set = true
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *StateStore) Saves() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.saves
}
