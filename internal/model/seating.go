package model

import "time"

// Seating records a party occupying a table, whether walk-in or
// checked-in reservation. A seating with a nil EndedAt is "open":
// the guests are still at the table. A table may have at most one
// open seating at a time.
//
// Fields:
//  ID        – primary key identifier.
//  TableID   – table being occupied.
//  PartySize – number of guests seated.
//  StartedAt – when the party was seated.
//  EndedAt   – when the table was cleared (nil while open).
type Seating struct {
    ID        uint64     `json:"id"`         // seatings.id
    TableID   uint64     `json:"table_id"`   // seatings.table_id
    PartySize uint32     `json:"party_size"` // seatings.party_size
    StartedAt time.Time  `json:"started_at"` // seatings.started_at
    EndedAt   *time.Time `json:"ended_at"`   // seatings.ended_at (nullable)
}
