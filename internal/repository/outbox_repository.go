package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/Khkimov/restaurant-table-ms/internal/model"
)

// OutboxRepo provides data access to the outbox_events table. State
// transitions append change events here inside their own transaction;
// the queue dispatcher polls pending rows, publishes them to the broker
// and marks them published. A broker outage therefore delays delivery
// but never fails or rolls back a mutation.
type OutboxRepo struct {
    db *sql.DB
}

// NewOutboxRepo returns a new OutboxRepo bound to the provided database.
func NewOutboxRepo(db *sql.DB) *OutboxRepo { return &OutboxRepo{db: db} }

// AppendTx inserts one pending event per given name within the provided
// transaction. Passing no names has no effect and returns nil.
func (r *OutboxRepo) AppendTx(ctx context.Context, tx *sql.Tx, events ...string) error {
    if len(events) == 0 {
        return nil
    }
    query := `INSERT INTO outbox_events (event) VALUES `
    args := make([]interface{}, 0, len(events))
    for i, ev := range events {
        if i > 0 {
            query += ","
        }
        query += "(?)"
        args = append(args, ev)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// Pending returns up to limit unpublished events in insertion order.
func (r *OutboxRepo) Pending(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
    const q = `SELECT id, event, created_at FROM outbox_events
               WHERE published_at IS NULL
               ORDER BY id ASC
               LIMIT ?`
    rows, err := r.db.QueryContext(ctx, q, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    events := make([]model.OutboxEvent, 0)
    for rows.Next() {
        var ev model.OutboxEvent
        if err := rows.Scan(&ev.ID, &ev.Event, &ev.CreatedAt); err != nil {
            return nil, err
        }
        events = append(events, ev)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return events, nil
}

// MarkPublished stamps published_at on the given event ids. Passing an
// empty slice has no effect and returns nil.
func (r *OutboxRepo) MarkPublished(ctx context.Context, ids []uint64) error {
    if len(ids) == 0 {
        return nil
    }
    placeholders := make([]string, 0, len(ids))
    args := make([]interface{}, 0, len(ids))
    for _, id := range ids {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    query := `UPDATE outbox_events SET published_at = UTC_TIMESTAMP()
              WHERE id IN (` + strings.Join(placeholders, ",") + `)`
    _, err := r.db.ExecContext(ctx, query, args...)
    return err
}
