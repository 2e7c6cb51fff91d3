package service

import (
    "time"

    "github.com/Khkimov/restaurant-table-ms/internal/model"
)

// reservationClaimWindow is how long past its start time a reservation
// keeps claiming its table for the status projection: one typical turn.
// A no-show older than this stops holding the table reserved.
const reservationClaimWindow = 2 * time.Hour

// claimCutoff returns the earliest start time a reservation may have
// and still claim its table at the given instant.
func claimCutoff(now time.Time) time.Time {
    return now.Add(-reservationClaimWindow)
}

// projectTableStatus computes the cached table status from the
// source-of-truth counts: an open seating wins over everything, a live
// reservation claim holds the table reserved, otherwise it is free.
func projectTableStatus(openSeatings, activeClaims int) string {
    switch {
    case openSeatings > 0:
        return model.TableOccupied
    case activeClaims > 0:
        return model.TableReserved
    default:
        return model.TableAvailable
    }
}

// transitionAllowed reports whether a reservation may move from one
// status to another: created → {confirmed, cancelled},
// confirmed → {cancelled}, cancelled is terminal.
func transitionAllowed(from, to string) bool {
    switch from {
    case model.ReservationCreated:
        return to == model.ReservationConfirmed || to == model.ReservationCancelled
    case model.ReservationConfirmed:
        return to == model.ReservationCancelled
    default:
        return false
    }
}
