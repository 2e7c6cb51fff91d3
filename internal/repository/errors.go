// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// floor service and handlers to distinguish between different failure
// scenarios without inspecting driver-specific errors.
package repository

import "errors"

// ErrTableNotFound is returned when a referenced table id does not
// exist. Handlers should translate this into an HTTP 404 response.
var ErrTableNotFound = errors.New("table not found")

// ErrReservationNotFound is returned when a referenced reservation id
// does not exist. Handlers should translate this into an HTTP 404
// response.
var ErrReservationNotFound = errors.New("reservation not found")
