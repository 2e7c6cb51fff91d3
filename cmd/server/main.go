package main // Entry point package

import (
    "context" // Context for background workers
    "log"     // Logging library
    "time"    // Dispatcher poll interval

    "github.com/joho/godotenv"    // Optional .env file loading
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/Khkimov/restaurant-table-ms/internal/config"     // Internal config loader
    "github.com/Khkimov/restaurant-table-ms/internal/database"   // MySQL connection
    "github.com/Khkimov/restaurant-table-ms/internal/handler"    // HTTP handlers
    "github.com/Khkimov/restaurant-table-ms/internal/queue"      // Outbox dispatcher and broker plumbing
    "github.com/Khkimov/restaurant-table-ms/internal/repository" // Data access layer
    "github.com/Khkimov/restaurant-table-ms/internal/router"     // Internal router setup
    "github.com/Khkimov/restaurant-table-ms/internal/service"    // Floor and analytics services
)

func main() {
    _ = godotenv.Load() // Load .env when present; real env vars win
    cfg := config.Load() // Load environment config

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err) // Cannot serve without the store
    }
    defer db.Close()

    // Repositories share the single injected store handle
    store := repository.NewStore(db)
    tableRepo := repository.NewTableRepo(db)
    seatingRepo := repository.NewSeatingRepo(db)
    reservationRepo := repository.NewReservationRepo(db)
    outboxRepo := repository.NewOutboxRepo(db)
    analyticsRepo := repository.NewAnalyticsRepo(db)

    floorSvc := service.NewFloorService(store, tableRepo, seatingRepo, reservationRepo, outboxRepo, cfg.Location)
    analyticsSvc := service.NewAnalyticsService(analyticsRepo, reservationRepo, cfg.Location)

    // Change notifications: outbox rows drain to the fanout exchange
    publisher := queue.NewPublisher(cfg.AMQPURL)
    defer publisher.Close()
    dispatcher := queue.NewDispatcher(outboxRepo, publisher, time.Second, 50)

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    go dispatcher.Run(ctx) // Deliver pending change events in the background

    // Redis response cache; nil client disables caching gracefully
    rdb := config.NewRedisClient()
    cacheCfg := config.LoadCacheConfig()
    if rdb != nil {
        go queue.StartCacheInvalidator(ctx, cfg.AMQPURL, rdb, cacheCfg.Prefix) // Drop cached reads on every change event
    } else {
        log.Printf("redis unavailable, response cache disabled")
    }

    e := echo.New() // Create Echo instance
    router.RegisterRoutes(e)
    router.RegisterFloor(e, handler.NewFloorHandler(floorSvc), rdb, cacheCfg)
    router.RegisterReservations(e, handler.NewReservationHandler(floorSvc, analyticsSvc))
    router.RegisterAnalytics(e, handler.NewAnalyticsHandler(analyticsSvc), rdb, cacheCfg)

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
