package service

import (
    "testing"
    "time"

    "github.com/Khkimov/restaurant-table-ms/internal/model"
)

func TestProjectTableStatus(t *testing.T) {
    tests := []struct {
        name         string
        openSeatings int
        activeClaims int
        want         string
    }{
        {"empty table", 0, 0, model.TableAvailable},
        {"walk-in only", 1, 0, model.TableOccupied},
        {"reservation only", 0, 1, model.TableReserved},
        {"occupied wins over reserved", 1, 2, model.TableOccupied},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            if got := projectTableStatus(tt.openSeatings, tt.activeClaims); got != tt.want {
                t.Errorf("projectTableStatus(%d, %d) = %q, want %q",
                    tt.openSeatings, tt.activeClaims, got, tt.want)
            }
        })
    }
}

func TestTransitionAllowed(t *testing.T) {
    tests := []struct {
        from, to string
        want     bool
    }{
        {model.ReservationCreated, model.ReservationConfirmed, true},
        {model.ReservationCreated, model.ReservationCancelled, true},
        {model.ReservationConfirmed, model.ReservationCancelled, true},
        // cancelled is terminal
        {model.ReservationCancelled, model.ReservationConfirmed, false},
        {model.ReservationCancelled, model.ReservationCreated, false},
        // no transition back into created, no self-loops
        {model.ReservationConfirmed, model.ReservationCreated, false},
        {model.ReservationConfirmed, model.ReservationConfirmed, false},
        {model.ReservationCreated, model.ReservationCreated, false},
    }
    for _, tt := range tests {
        if got := transitionAllowed(tt.from, tt.to); got != tt.want {
            t.Errorf("transitionAllowed(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
        }
    }
}

func TestClaimCutoff(t *testing.T) {
    now := time.Date(2024, 1, 1, 21, 0, 0, 0, time.UTC)
    cutoff := claimCutoff(now)
    // A reservation that started 19:00 the same evening still claims its
    // table at 21:00; one from 18:59 does not.
    if cutoff.After(time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC)) {
        t.Errorf("claimCutoff(%v) = %v, want <= 19:00", now, cutoff)
    }
    if !cutoff.After(time.Date(2024, 1, 1, 18, 59, 0, 0, time.UTC)) {
        t.Errorf("claimCutoff(%v) = %v, want > 18:59", now, cutoff)
    }
}

func TestDayBounds(t *testing.T) {
    loc := time.FixedZone("RST", 3*3600)
    start, end := dayBounds(time.Date(2024, 3, 15, 18, 30, 0, 0, loc))
    wantStart := time.Date(2024, 3, 15, 0, 0, 0, 0, loc)
    wantEnd := time.Date(2024, 3, 16, 0, 0, 0, 0, loc)
    if !start.Equal(wantStart) {
        t.Errorf("start = %v, want %v", start, wantStart)
    }
    if !end.Equal(wantEnd) {
        t.Errorf("end = %v, want %v", end, wantEnd)
    }
}
