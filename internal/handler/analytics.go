package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/Khkimov/restaurant-table-ms/internal/service"
)

// dashboardRecentLimit is how many reservations the dashboard feed shows.
const dashboardRecentLimit = 10

// AnalyticsHandler serves the analytics dashboard.
type AnalyticsHandler struct {
    Analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs an AnalyticsHandler. The service must
// be non-nil.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
    if analytics == nil {
        panic("nil service passed to NewAnalyticsHandler")
    }
    return &AnalyticsHandler{Analytics: analytics}
}

// GetDashboard handles GET /v1/analytics/dashboard. It bundles today's
// and yesterday's covers, the trailing average dining duration, the
// hourly occupancy histogram with peak hours, and the recent
// reservations feed.
func (h *AnalyticsHandler) GetDashboard(c echo.Context) error {
    dash, err := h.Analytics.BuildDashboard(c.Request().Context(), dashboardRecentLimit)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, dash)
}
