package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/Khkimov/restaurant-table-ms/internal/model"
)

// TableRepo provides data access to the tables table. Table rows are
// created at seed time and never deleted; the service layer only reads
// them and rewrites the cached status column. The status update always
// happens inside the same transaction as the seating or reservation
// mutation that caused it.
type TableRepo struct {
    db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// List returns every table ordered by layout position (row first, then
// column), matching the order the floor map renders them in.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
    const q = `SELECT id, name, capacity, x, y, status
               FROM tables
               ORDER BY y, x`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    tables := make([]model.Table, 0)
    for rows.Next() {
        var t model.Table
        if err := rows.Scan(&t.ID, &t.Name, &t.Capacity, &t.X, &t.Y, &t.Status); err != nil {
            return nil, err
        }
        tables = append(tables, t)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return tables, nil
}

// GetForUpdateTx loads a table within the provided transaction and takes
// a row lock on it. Every state transition locks its target table first,
// so two concurrent operations on the same table serialize at the store
// and the second one observes the first one's writes. Returns
// ErrTableNotFound when the id does not exist.
func (r *TableRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Table, error) {
    const q = `SELECT id, name, capacity, x, y, status FROM tables WHERE id = ? FOR UPDATE`
    var t model.Table
    err := tx.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &t.Capacity, &t.X, &t.Y, &t.Status)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrTableNotFound
    }
    if err != nil {
        return nil, err
    }
    return &t, nil
}

// UpdateStatusTx rewrites the cached status column for a table within
// the provided transaction. The caller must commit or roll back.
func (r *TableRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
    const q = `UPDATE tables SET status = ? WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, status, id)
    return err
}

// CountByStatus returns how many tables currently hold each status
// value. Missing statuses are reported as zero so the floor header can
// always render all three counters.
func (r *TableRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
    const q = `SELECT status, COUNT(*) FROM tables GROUP BY status`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    counts := map[string]int{
        model.TableAvailable: 0,
        model.TableOccupied:  0,
        model.TableReserved:  0,
    }
    for rows.Next() {
        var status string
        var n int
        if err := rows.Scan(&status, &n); err != nil {
            return nil, err
        }
        counts[status] = n
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return counts, nil
}
