package model

// Table status values. The status column is a cached projection over
// seatings and reservations, recomputed by every mutating operation.
const (
    TableAvailable = "available" // no open seating, no claiming reservation
    TableOccupied  = "occupied"  // an open seating exists
    TableReserved  = "reserved"  // a created/confirmed reservation claims it
)

// Table represents one physical table on the floor map.
//
// Fields:
//  ID       – primary key identifier.
//  Name     – display label, unique within the restaurant.
//  Capacity – maximum party size the table can seat.
//  X, Y     – layout grid coordinates, display only.
//  Status   – cached status (available, occupied, reserved).
type Table struct {
    ID       uint64 `json:"id"`       // tables.id
    Name     string `json:"name"`     // tables.name
    Capacity uint32 `json:"capacity"` // tables.capacity
    X        int32  `json:"x"`        // tables.x
    Y        int32  `json:"y"`        // tables.y
    Status   string `json:"status"`   // tables.status
}
