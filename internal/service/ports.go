package service

import (
    "context"
    "database/sql"
    "time"

    "github.com/Khkimov/restaurant-table-ms/internal/model"
    "github.com/Khkimov/restaurant-table-ms/internal/repository"
)

// The service depends on these narrow interfaces rather than the
// concrete repositories, so the transition logic can be exercised with
// in-memory doubles. The repository package satisfies all of them;
// repository.Store provides TxRunner.

// TxRunner runs a function inside a single database transaction,
// committing when it returns nil and rolling back otherwise.
type TxRunner interface {
    WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// TableStore reads table rows and rewrites their cached status.
type TableStore interface {
    List(ctx context.Context) ([]model.Table, error)
    CountByStatus(ctx context.Context) (map[string]int, error)
    GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Table, error)
    UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error
}

// SeatingStore manages open seatings on tables.
type SeatingStore interface {
    CountOpenTx(ctx context.Context, tx *sql.Tx, tableID uint64) (int, error)
    CreateTx(ctx context.Context, tx *sql.Tx, seating *model.Seating) error
    CloseOpenTx(ctx context.Context, tx *sql.Tx, tableID uint64, endedAt time.Time) (int64, error)
}

// ReservationStore manages reservation rows and the claim counts the
// status projection needs.
type ReservationStore interface {
    CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error
    GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error)
    UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error
    CountActiveClaimsTx(ctx context.Context, tx *sql.Tx, tableID, excludeID uint64, claimedAfter time.Time) (int, error)
    ListActiveBetween(ctx context.Context, from, to time.Time) ([]repository.ReservationWithTable, error)
    ListRecent(ctx context.Context, limit int) ([]repository.ReservationWithTable, error)
}

// OutboxStore appends change events inside the mutating transaction.
type OutboxStore interface {
    AppendTx(ctx context.Context, tx *sql.Tx, events ...string) error
}
