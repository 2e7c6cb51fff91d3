package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/Khkimov/restaurant-table-ms/internal/config"     // cache configuration for read endpoints
    "github.com/Khkimov/restaurant-table-ms/internal/handler"    // import the handlers that implement business logic
    "github.com/Khkimov/restaurant-table-ms/internal/middleware" // response cache middleware
)

// RegisterRoutes registers the health check on the provided Echo
// instance. This endpoint can be used by load balancers or monitoring
// systems to verify that the service is up and running.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterFloor registers the floor map endpoints: the snapshot read
// and the two table transitions hosts trigger from the map. The
// snapshot is cached in Redis; change events invalidate it.
func RegisterFloor(e *echo.Echo, f *handler.FloorHandler, rdb *redis.Client, cacheCfg config.CacheConfig) {
    cached := middleware.ResponseCache(rdb, cacheCfg)
    e.GET("/v1/floor", f.GetFloor, cached)
    // Transitions mutate state and are never cached
    e.POST("/v1/tables/:id/seat", f.SeatWalkIn)
    e.POST("/v1/tables/:id/clear", f.ClearTable)
}

// RegisterReservations registers reservation intake, status updates and
// the recent reservations feed.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler) {
    e.POST("/v1/reservations", r.Create)
    e.PATCH("/v1/reservations/:id/status", r.UpdateStatus)
    e.GET("/v1/reservations", r.ListRecent)
}

// RegisterAnalytics registers the dashboard endpoint behind the
// response cache.
func RegisterAnalytics(e *echo.Echo, a *handler.AnalyticsHandler, rdb *redis.Client, cacheCfg config.CacheConfig) {
    e.GET("/v1/analytics/dashboard", a.GetDashboard, middleware.ResponseCache(rdb, cacheCfg))
}
