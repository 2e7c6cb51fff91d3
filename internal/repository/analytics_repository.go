package repository

import (
    "context"
    "database/sql"
    "time"
)

// AnalyticsRepo issues the read-only queries behind the analytics
// dashboard. It never mutates anything and shares the store with the
// transition service under the store's normal read consistency, so no
// extra locking is needed. Every query tolerates an empty dataset and
// returns zero values rather than errors.
type AnalyticsRepo struct {
    db *sql.DB
}

// NewAnalyticsRepo returns a new AnalyticsRepo bound to the given database.
func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo { return &AnalyticsRepo{db: db} }

// CoversBetween sums party sizes and counts seatings whose start falls
// within [from, to). Both totals are zero when the window is empty.
func (r *AnalyticsRepo) CoversBetween(ctx context.Context, from, to time.Time) (covers, seatings uint64, err error) {
    const q = `SELECT COALESCE(SUM(party_size), 0), COUNT(*)
               FROM seatings
               WHERE started_at >= ? AND started_at < ?`
    err = r.db.QueryRowContext(ctx, q, from.UTC(), to.UTC()).Scan(&covers, &seatings)
    return covers, seatings, err
}

// AverageDiningMinutes computes the mean dining duration in minutes
// over closed seatings started at or after since. It returns 0 when no
// closed seating falls in the window.
func (r *AnalyticsRepo) AverageDiningMinutes(ctx context.Context, since time.Time) (float64, error) {
    const q = `SELECT COALESCE(AVG(TIMESTAMPDIFF(MINUTE, started_at, ended_at)), 0)
               FROM seatings
               WHERE ended_at IS NOT NULL AND started_at >= ?`
    var avg float64
    if err := r.db.QueryRowContext(ctx, q, since.UTC()).Scan(&avg); err != nil {
        return 0, err
    }
    return avg, nil
}

// SeatingStart is one seating's start time and party size, the raw
// material for the hourly occupancy histogram. Bucketing happens in Go
// so hour-of-day respects the restaurant timezone, not the session one.
type SeatingStart struct {
    StartedAt time.Time
    PartySize uint32
}

// SeatingStarts returns the start time and party size of every seating
// started at or after since.
func (r *AnalyticsRepo) SeatingStarts(ctx context.Context, since time.Time) ([]SeatingStart, error) {
    const q = `SELECT started_at, party_size FROM seatings WHERE started_at >= ?`
    rows, err := r.db.QueryContext(ctx, q, since.UTC())
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    starts := make([]SeatingStart, 0)
    for rows.Next() {
        var s SeatingStart
        if err := rows.Scan(&s.StartedAt, &s.PartySize); err != nil {
            return nil, err
        }
        starts = append(starts, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return starts, nil
}
