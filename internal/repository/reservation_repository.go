package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/Khkimov/restaurant-table-ms/internal/model"
)

// ReservationRepo provides data access to the reservations table. All
// timestamp columns are stored in UTC. Status values follow the
// reservation state machine (created → confirmed → cancelled) which is
// enforced by the service layer, not here.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ReservationWithTable pairs a reservation with its assigned table, when
// one is set. It is the shape the reservations list and the recent feed
// render from.
type ReservationWithTable struct {
    model.Reservation
    Table *model.Table `json:"table,omitempty"`
}

// CreateTx inserts a new reservation within the provided transaction and
// populates the generated ID and creation timestamp on the record. The
// caller must commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    const q = `INSERT INTO reservations
               (guest_name, phone, party_size, start_at, special_requests, table_id, status)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        res.GuestName, res.Phone, res.PartySize, res.StartAt.UTC(),
        res.SpecialRequests, res.TableID, res.Status,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    // Query back the creation timestamp set by the database
    const sel = `SELECT created_at FROM reservations WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt)
}

// GetForUpdateTx loads a reservation within the provided transaction and
// takes a row lock on it, so concurrent status updates on the same
// reservation serialize. Returns ErrReservationNotFound when the id
// does not exist.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
    const q = `SELECT id, guest_name, phone, party_size, start_at, special_requests, table_id, status, created_at
               FROM reservations WHERE id = ? FOR UPDATE`
    var res model.Reservation
    var special sql.NullString
    var tableID sql.NullInt64
    err := tx.QueryRowContext(ctx, q, id).Scan(
        &res.ID, &res.GuestName, &res.Phone, &res.PartySize, &res.StartAt,
        &special, &tableID, &res.Status, &res.CreatedAt,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrReservationNotFound
    }
    if err != nil {
        return nil, err
    }
    if special.Valid {
        s := special.String
        res.SpecialRequests = &s
    }
    if tableID.Valid {
        tid := uint64(tableID.Int64)
        res.TableID = &tid
    }
    return &res, nil
}

// UpdateStatusTx rewrites a reservation's status within the provided
// transaction. The caller must commit or roll back.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
    const q = `UPDATE reservations SET status = ? WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, status, id)
    return err
}

// CountActiveClaimsTx returns how many non-cancelled reservations other
// than excludeID still claim the given table within the provided
// transaction. A reservation claims its table until claimedAfter, i.e.
// callers pass "now minus the claim window" so stale reservations stop
// counting. Used by the status projection before a table is released.
func (r *ReservationRepo) CountActiveClaimsTx(ctx context.Context, tx *sql.Tx, tableID, excludeID uint64, claimedAfter time.Time) (int, error) {
    const q = `SELECT COUNT(*) FROM reservations
               WHERE table_id = ? AND id <> ? AND status IN (?, ?) AND start_at >= ?`
    var n int
    err := tx.QueryRowContext(ctx, q, tableID, excludeID,
        model.ReservationCreated, model.ReservationConfirmed, claimedAfter.UTC()).Scan(&n)
    if err != nil {
        return 0, err
    }
    return n, nil
}

// ListRecent returns the last limit reservations ordered by creation
// time descending, each annotated with its assigned table when present.
// When no reservations exist, an empty slice is returned.
func (r *ReservationRepo) ListRecent(ctx context.Context, limit int) ([]ReservationWithTable, error) {
    const q = `SELECT r.id, r.guest_name, r.phone, r.party_size, r.start_at,
                      r.special_requests, r.table_id, r.status, r.created_at,
                      t.id, t.name, t.capacity, t.x, t.y, t.status
               FROM reservations r
               LEFT JOIN tables t ON t.id = r.table_id
               ORDER BY r.created_at DESC, r.id DESC
               LIMIT ?`
    rows, err := r.db.QueryContext(ctx, q, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return scanReservationsWithTables(rows)
}

// ListActiveBetween returns created/confirmed reservations whose start
// time falls within [from, to), ordered by start time ascending. The
// floor snapshot uses it with today's day bounds in the restaurant
// timezone.
func (r *ReservationRepo) ListActiveBetween(ctx context.Context, from, to time.Time) ([]ReservationWithTable, error) {
    const q = `SELECT r.id, r.guest_name, r.phone, r.party_size, r.start_at,
                      r.special_requests, r.table_id, r.status, r.created_at,
                      t.id, t.name, t.capacity, t.x, t.y, t.status
               FROM reservations r
               LEFT JOIN tables t ON t.id = r.table_id
               WHERE r.start_at >= ? AND r.start_at < ? AND r.status IN (?, ?)
               ORDER BY r.start_at ASC, r.id ASC`
    rows, err := r.db.QueryContext(ctx, q, from.UTC(), to.UTC(),
        model.ReservationCreated, model.ReservationConfirmed)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return scanReservationsWithTables(rows)
}

// scanReservationsWithTables collects rows produced by the reservation
// LEFT JOIN tables queries above. Table columns are nullable because a
// reservation may be unassigned.
func scanReservationsWithTables(rows *sql.Rows) ([]ReservationWithTable, error) {
    out := make([]ReservationWithTable, 0)
    for rows.Next() {
        var d ReservationWithTable
        var special sql.NullString
        var tableID sql.NullInt64
        var tID sql.NullInt64
        var tName sql.NullString
        var tCapacity sql.NullInt64
        var tX, tY sql.NullInt64
        var tStatus sql.NullString
        if err := rows.Scan(
            &d.ID, &d.GuestName, &d.Phone, &d.PartySize, &d.StartAt,
            &special, &tableID, &d.Status, &d.CreatedAt,
            &tID, &tName, &tCapacity, &tX, &tY, &tStatus,
        ); err != nil {
            return nil, err
        }
        if special.Valid {
            s := special.String
            d.SpecialRequests = &s
        }
        if tableID.Valid {
            tid := uint64(tableID.Int64)
            d.TableID = &tid
        }
        if tID.Valid {
            d.Table = &model.Table{
                ID:       uint64(tID.Int64),
                Name:     tName.String,
                Capacity: uint32(tCapacity.Int64),
                X:        int32(tX.Int64),
                Y:        int32(tY.Int64),
                Status:   tStatus.String,
            }
        }
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
