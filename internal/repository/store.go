package repository

import (
    "context"
    "database/sql"
)

// Store wraps the database handle and owns the transaction boundary for
// the state transitions. Running the whole operation through WithinTx
// keeps the commit-or-rollback decision in one place instead of
// repeating the bookkeeping at every call site.
type Store struct {
    db *sql.DB
}

// NewStore returns a Store bound to the given database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// WithinTx begins a transaction, runs fn with it and commits when fn
// returns nil. Any error from fn, or from the commit itself, rolls the
// transaction back and is returned unchanged so callers can still
// distinguish domain errors from infrastructure ones.
func (s *Store) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := fn(tx); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
