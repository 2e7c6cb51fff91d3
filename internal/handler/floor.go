package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/Khkimov/restaurant-table-ms/internal/service"
)

// FloorHandler serves the floor map state and the table transitions
// hosts trigger by clicking on tables: seating a walk-in and clearing a
// table. Atomicity lives in the service layer; handlers only bind
// input and map errors.
type FloorHandler struct {
    Floor *service.FloorService
}

// NewFloorHandler constructs a FloorHandler. The service must be non-nil.
func NewFloorHandler(floor *service.FloorService) *FloorHandler {
    if floor == nil {
        panic("nil service passed to NewFloorHandler")
    }
    return &FloorHandler{Floor: floor}
}

// GetFloor handles GET /v1/floor. It returns every table in layout
// order, status counters and today's active reservations.
func (h *FloorHandler) GetFloor(c echo.Context) error {
    snap, err := h.Floor.Snapshot(c.Request().Context())
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, snap)
}

// SeatWalkIn handles POST /v1/tables/:id/seat. The request body must
// contain a JSON object with a positive "party_size". On success it
// returns 201 Created with the new seating.
func (h *FloorHandler) SeatWalkIn(c echo.Context) error {
    tableID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
    }
    // Bound as a signed int so out-of-range values reach validation
    // and come back as a party_size field error, not a bind failure.
    var body struct {
        PartySize int `json:"party_size"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    seating, err := h.Floor.SeatWalkIn(c.Request().Context(), tableID, body.PartySize)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusCreated, seating)
}

// ClearTable handles POST /v1/tables/:id/clear. Clearing is idempotent:
// a table with no open seating still returns 200 OK.
func (h *FloorHandler) ClearTable(c echo.Context) error {
    tableID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
    }
    if err := h.Floor.ClearTable(c.Request().Context(), tableID); err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
