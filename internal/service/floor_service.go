package service

import (
    "context"
    "database/sql"
    "time"

    "github.com/Khkimov/restaurant-table-ms/internal/model"
    "github.com/Khkimov/restaurant-table-ms/internal/repository"
)

// FloorService implements the table/seating/reservation state machine.
// Hosts at different terminals invoke it concurrently; every operation
// locks the target table row first, so conflicting operations on the
// same table serialize inside the store and the invariants below hold:
//
//   - at most one open seating per table,
//   - the cached table status always matches the seating/reservation
//     rows committed with it,
//   - change events are appended to the outbox in the same transaction.
type FloorService struct {
    store        TxRunner
    tables       TableStore
    seatings     SeatingStore
    reservations ReservationStore
    outbox       OutboxStore
    loc          *time.Location
    now          func() time.Time
}

// NewFloorService constructs a FloorService over the given transaction
// runner and stores. All dependencies must be non-nil.
func NewFloorService(store TxRunner, tables TableStore, seatings SeatingStore, reservations ReservationStore, outbox OutboxStore, loc *time.Location) *FloorService {
    if store == nil || tables == nil || seatings == nil || reservations == nil || outbox == nil {
        panic("nil dependency passed to NewFloorService")
    }
    if loc == nil {
        loc = time.UTC
    }
    return &FloorService{
        store:        store,
        tables:       tables,
        seatings:     seatings,
        reservations: reservations,
        outbox:       outbox,
        loc:          loc,
        now:          func() time.Time { return time.Now().UTC() },
    }
}

// SeatWalkIn seats a walk-in party at a table: it inserts an open
// seating and flips the table to occupied in one transaction. Party
// size must be between 1 and the table capacity, and the table must not
// already have an open seating.
func (s *FloorService) SeatWalkIn(ctx context.Context, tableID uint64, partySize int) (*model.Seating, error) {
    if partySize < minPartySize {
        return nil, &ValidationError{Field: "party_size", Message: "must be at least 1"}
    }
    var seating *model.Seating
    err := s.store.WithinTx(ctx, func(tx *sql.Tx) error {
        table, err := s.tables.GetForUpdateTx(ctx, tx, tableID)
        if err != nil {
            return err
        }
        if partySize > int(table.Capacity) {
            return &ValidationError{Field: "party_size", Message: "exceeds table capacity"}
        }
        open, err := s.seatings.CountOpenTx(ctx, tx, tableID)
        if err != nil {
            return err
        }
        if open > 0 {
            return ErrTableOccupied
        }
        seating = &model.Seating{TableID: tableID, PartySize: uint32(partySize), StartedAt: s.now()}
        if err := s.seatings.CreateTx(ctx, tx, seating); err != nil {
            return err
        }
        if err := s.tables.UpdateStatusTx(ctx, tx, tableID, model.TableOccupied); err != nil {
            return err
        }
        return s.outbox.AppendTx(ctx, tx, model.EventTableUpdated)
    })
    if err != nil {
        return nil, err
    }
    return seating, nil
}

// ClearTable closes every open seating on a table (there should be at
// most one, but closing all matching rows self-heals any violation) and
// recomputes the table status. It is idempotent: clearing a table with
// no open seating still succeeds and still rewrites the status.
func (s *FloorService) ClearTable(ctx context.Context, tableID uint64) error {
    return s.store.WithinTx(ctx, func(tx *sql.Tx) error {
        if _, err := s.tables.GetForUpdateTx(ctx, tx, tableID); err != nil {
            return err
        }
        now := s.now()
        if _, err := s.seatings.CloseOpenTx(ctx, tx, tableID, now); err != nil {
            return err
        }
        // No open seating remains, so the projection is reserved or available
        claims, err := s.reservations.CountActiveClaimsTx(ctx, tx, tableID, 0, claimCutoff(now))
        if err != nil {
            return err
        }
        if err := s.tables.UpdateStatusTx(ctx, tx, tableID, projectTableStatus(0, claims)); err != nil {
            return err
        }
        return s.outbox.AppendTx(ctx, tx, model.EventTableUpdated)
    })
}

// CreateReservation validates intake fields, inserts the reservation
// with status created and, when a table is assigned, marks that table
// reserved. A table with an open seating keeps its occupied status: the
// reservation is still recorded, occupied just wins for display.
func (s *FloorService) CreateReservation(ctx context.Context, in ReservationInput) (*model.Reservation, error) {
    startAt, verr := validateReservation(in, s.loc)
    if verr != nil {
        return nil, verr
    }
    var created *model.Reservation
    err := s.store.WithinTx(ctx, func(tx *sql.Tx) error {
        events := []string{model.EventReservationUpdated}
        if in.TableID != nil {
            table, err := s.tables.GetForUpdateTx(ctx, tx, *in.TableID)
            if err != nil {
                return err
            }
            open, err := s.seatings.CountOpenTx(ctx, tx, table.ID)
            if err != nil {
                return err
            }
            if open == 0 {
                if err := s.tables.UpdateStatusTx(ctx, tx, table.ID, model.TableReserved); err != nil {
                    return err
                }
            }
            events = append(events, model.EventTableUpdated)
        }
        res := &model.Reservation{
            GuestName:       in.GuestName,
            Phone:           in.Phone,
            PartySize:       uint32(in.PartySize),
            StartAt:         startAt.UTC(),
            SpecialRequests: in.SpecialRequests,
            TableID:         in.TableID,
            Status:          model.ReservationCreated,
        }
        if err := s.reservations.CreateTx(ctx, tx, res); err != nil {
            return err
        }
        if err := s.outbox.AppendTx(ctx, tx, events...); err != nil {
            return err
        }
        created = res
        return nil
    })
    if err != nil {
        return nil, err
    }
    return created, nil
}

// UpdateReservationStatus applies a state-machine transition to a
// reservation. Only confirmed and cancelled are user-invocable targets.
// Cancelling a reservation with an assigned table recomputes that
// table's status instead of forcing it available: an open seating keeps
// it occupied and another live reservation keeps it reserved.
func (s *FloorService) UpdateReservationStatus(ctx context.Context, reservationID uint64, newStatus string) error {
    if newStatus != model.ReservationConfirmed && newStatus != model.ReservationCancelled {
        return &ValidationError{Field: "status", Message: "must be confirmed or cancelled"}
    }
    return s.store.WithinTx(ctx, func(tx *sql.Tx) error {
        res, err := s.reservations.GetForUpdateTx(ctx, tx, reservationID)
        if err != nil {
            return err
        }
        if !transitionAllowed(res.Status, newStatus) {
            return ErrInvalidTransition
        }
        if err := s.reservations.UpdateStatusTx(ctx, tx, reservationID, newStatus); err != nil {
            return err
        }
        events := []string{model.EventReservationUpdated}
        if newStatus == model.ReservationCancelled && res.TableID != nil {
            if _, err := s.tables.GetForUpdateTx(ctx, tx, *res.TableID); err != nil {
                return err
            }
            now := s.now()
            open, err := s.seatings.CountOpenTx(ctx, tx, *res.TableID)
            if err != nil {
                return err
            }
            claims, err := s.reservations.CountActiveClaimsTx(ctx, tx, *res.TableID, reservationID, claimCutoff(now))
            if err != nil {
                return err
            }
            if err := s.tables.UpdateStatusTx(ctx, tx, *res.TableID, projectTableStatus(open, claims)); err != nil {
                return err
            }
            events = append(events, model.EventTableUpdated)
        }
        return s.outbox.AppendTx(ctx, tx, events...)
    })
}

// FloorSnapshot is the state the floor map renders: every table in
// layout order, status counters for the header and today's active
// reservations ordered by start time.
type FloorSnapshot struct {
    Tables       []model.Table                     `json:"tables"`
    StatusCounts map[string]int                    `json:"status_counts"`
    Reservations []repository.ReservationWithTable `json:"reservations"`
}

// Snapshot assembles the floor map state. Reads are not transactional
// with the transition operations; viewers refresh on change events, so
// read-committed consistency is enough here.
func (s *FloorService) Snapshot(ctx context.Context) (*FloorSnapshot, error) {
    tables, err := s.tables.List(ctx)
    if err != nil {
        return nil, err
    }
    counts, err := s.tables.CountByStatus(ctx)
    if err != nil {
        return nil, err
    }
    dayStart, dayEnd := dayBounds(s.now().In(s.loc))
    reservations, err := s.reservations.ListActiveBetween(ctx, dayStart, dayEnd)
    if err != nil {
        return nil, err
    }
    return &FloorSnapshot{
        Tables:       tables,
        StatusCounts: counts,
        Reservations: reservations,
    }, nil
}

// dayBounds returns the [start, end) instants of the calendar day
// containing t, in t's location.
func dayBounds(t time.Time) (time.Time, time.Time) {
    start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
    return start, start.AddDate(0, 0, 1)
}
