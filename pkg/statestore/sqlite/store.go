package sqlite

//go:generate go run ./schemadump -path schema.sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codeberg.org/miketth/win-ime-switch/pkg/layout"
	"codeberg.org/miketth/win-ime-switch/pkg/statestore/sqlite/migrations"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type StateStore struct {
	db      *sql.DB
	querier *Queries
}

func NewStateStore(filename string, log *zap.SugaredLogger) (*StateStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &StateStore{
		db:      db,
		querier: New(db),
	}, nil
}

func (s *StateStore) Close() error {
	return s.db.Close()
}

func (s *StateStore) Load() (layout.ID, bool, error) {
	v, err := s.querier.GetToggleState(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("sqlite select: %w", err)
	}

	return layout.ID(uint32(v)), true, nil
}

func (s *StateStore) Save(id layout.ID) error {
	if err := s.querier.SetToggleState(context.Background(), int64(id)); err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}

	return nil
}
