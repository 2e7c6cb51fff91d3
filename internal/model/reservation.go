package model

import "time"

// Reservation status values. Transitions: created → confirmed,
// created → cancelled, confirmed → cancelled. Cancelled is terminal.
const (
    ReservationCreated   = "created"
    ReservationConfirmed = "confirmed"
    ReservationCancelled = "cancelled"
)

// Reservation records a guest's request for a table at a given time.
// TableID is optional: intake may leave a reservation unassigned and a
// host assigns a table later.
//
// Fields:
//  ID              – primary key identifier.
//  GuestName       – name the reservation is held under.
//  Phone           – contact phone number.
//  PartySize       – expected number of guests (1..20).
//  StartAt         – requested date and time.
//  SpecialRequests – optional free text from the guest.
//  TableID         – assigned table, if any.
//  Status          – created, confirmed or cancelled.
//  CreatedAt       – when the reservation was taken.
type Reservation struct {
    ID              uint64    `json:"id"`                         // reservations.id
    GuestName       string    `json:"guest_name"`                 // reservations.guest_name
    Phone           string    `json:"phone"`                      // reservations.phone
    PartySize       uint32    `json:"party_size"`                 // reservations.party_size
    StartAt         time.Time `json:"start_at"`                   // reservations.start_at
    SpecialRequests *string   `json:"special_requests,omitempty"` // reservations.special_requests (nullable)
    TableID         *uint64   `json:"table_id,omitempty"`         // reservations.table_id (nullable)
    Status          string    `json:"status"`                     // reservations.status
    CreatedAt       time.Time `json:"created_at"`                 // reservations.created_at
}
