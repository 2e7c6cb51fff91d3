package model

import "time"

// Change event names broadcast to connected viewers. Payloads are
// empty; consumers react by re-fetching current state.
const (
    EventTableUpdated       = "table-updated"
    EventReservationUpdated = "reservation-updated"
)

// OutboxEvent is a pending change notification appended inside the
// same transaction as the mutation it announces. A separate
// dispatcher publishes pending rows to the broker and stamps
// PublishedAt, so delivery failures never roll back the mutation.
//
// Fields:
//  ID          – primary key, also the dispatch order.
//  Event       – event name (table-updated, reservation-updated).
//  CreatedAt   – when the mutation committed.
//  PublishedAt – when the dispatcher delivered it (nil while pending).
type OutboxEvent struct {
    ID          uint64     // outbox_events.id
    Event       string     // outbox_events.event
    CreatedAt   time.Time  // outbox_events.created_at
    PublishedAt *time.Time // outbox_events.published_at (nullable)
}
