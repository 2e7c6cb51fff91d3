// Package service implements the floor state transitions and the
// analytics aggregation on top of the repository layer. Every mutating
// operation runs in a single database transaction so the seating or
// reservation change, the table-status projection and the outbox append
// are committed together or not at all.
package service

import "errors"

// ErrTableOccupied is returned when a walk-in targets a table that
// already has an open seating. Handlers should translate this into an
// HTTP 409 response.
var ErrTableOccupied = errors.New("table already has an open seating")

// ErrInvalidTransition is returned when a reservation status update is
// not allowed by the state machine, e.g. any transition out of
// cancelled. Handlers should translate this into an HTTP 409 response.
var ErrInvalidTransition = errors.New("invalid reservation status transition")

// ValidationError reports the first input field that failed validation.
// It is never retried automatically; the caller must fix the input.
type ValidationError struct {
    Field   string `json:"field"`
    Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }
