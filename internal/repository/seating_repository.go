package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/Khkimov/restaurant-table-ms/internal/model"
)

// SeatingRepo provides data access to the seatings table. A seating row
// with ended_at IS NULL is "open": the party is still at the table. The
// invariant that a table has at most one open seating is enforced by the
// service layer under the table row lock; this repository stays
// defensive and operates on all matching rows where it can.
type SeatingRepo struct {
    db *sql.DB
}

// NewSeatingRepo returns a new SeatingRepo bound to the provided database.
func NewSeatingRepo(db *sql.DB) *SeatingRepo { return &SeatingRepo{db: db} }

// CountOpenTx returns the number of open seatings for a table within the
// provided transaction. Callers holding the table row lock use this as
// the "no double seating" precondition check.
func (r *SeatingRepo) CountOpenTx(ctx context.Context, tx *sql.Tx, tableID uint64) (int, error) {
    const q = `SELECT COUNT(*) FROM seatings WHERE table_id = ? AND ended_at IS NULL`
    var n int
    if err := tx.QueryRowContext(ctx, q, tableID).Scan(&n); err != nil {
        return 0, err
    }
    return n, nil
}

// CreateTx inserts a new open seating within the provided transaction
// and populates the generated ID and start timestamp on the record. The
// caller must commit or roll back.
func (r *SeatingRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Seating) error {
    const q = `INSERT INTO seatings (table_id, party_size, started_at) VALUES (?, ?, ?)`
    startedAt := s.StartedAt
    if startedAt.IsZero() {
        startedAt = time.Now().UTC()
    }
    result, err := tx.ExecContext(ctx, q, s.TableID, s.PartySize, startedAt.UTC())
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    s.StartedAt = startedAt.UTC()
    return nil
}

// CloseOpenTx stamps ended_at on every open seating for a table and
// returns how many rows were closed. There should be at most one, but
// closing all matching rows lets the operation self-heal if the
// invariant was ever violated. Returns 0 with no error when the table
// had no open seating.
func (r *SeatingRepo) CloseOpenTx(ctx context.Context, tx *sql.Tx, tableID uint64, endedAt time.Time) (int64, error) {
    const q = `UPDATE seatings SET ended_at = ? WHERE table_id = ? AND ended_at IS NULL`
    result, err := tx.ExecContext(ctx, q, endedAt.UTC(), tableID)
    if err != nil {
        return 0, err
    }
    return result.RowsAffected()
}
