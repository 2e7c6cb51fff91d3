package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/Khkimov/restaurant-table-ms/internal/service"
)

// defaultRecentLimit bounds the reservations feed when no limit is given.
const defaultRecentLimit = 20

// maxRecentLimit caps the reservations feed regardless of the query.
const maxRecentLimit = 100

// ReservationHandler serves reservation intake, status updates and the
// recent reservations feed.
type ReservationHandler struct {
    Floor     *service.FloorService
    Analytics *service.AnalyticsService
}

// NewReservationHandler constructs a ReservationHandler. Both services
// must be non-nil.
func NewReservationHandler(floor *service.FloorService, analytics *service.AnalyticsService) *ReservationHandler {
    if floor == nil || analytics == nil {
        panic("nil service passed to NewReservationHandler")
    }
    return &ReservationHandler{Floor: floor, Analytics: analytics}
}

// Create handles POST /v1/reservations. The body carries the intake
// fields; validation errors name the first failing field. On success it
// returns 201 Created with the stored reservation.
func (h *ReservationHandler) Create(c echo.Context) error {
    var in service.ReservationInput
    if err := c.Bind(&in); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    res, err := h.Floor.CreateReservation(c.Request().Context(), in)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusCreated, res)
}

// UpdateStatus handles PATCH /v1/reservations/:id/status. The body must
// contain {"status": "confirmed"} or {"status": "cancelled"}.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var body struct {
        Status string `json:"status"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := h.Floor.UpdateReservationStatus(c.Request().Context(), id, body.Status); err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// ListRecent handles GET /v1/reservations. The optional ?limit= query
// bounds the feed; it defaults to 20 and is capped at 100.
func (h *ReservationHandler) ListRecent(c echo.Context) error {
    limit := defaultRecentLimit
    if s := c.QueryParam("limit"); s != "" {
        n, err := strconv.Atoi(s)
        if err != nil || n < 1 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
        }
        limit = n
    }
    if limit > maxRecentLimit {
        limit = maxRecentLimit
    }
    reservations, err := h.Analytics.RecentReservations(c.Request().Context(), limit)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"reservations": reservations})
}
