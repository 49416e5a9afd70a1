package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/meetvasani/safar/internal/adapters/http"
	natsadapter "github.com/meetvasani/safar/internal/adapters/nats"
	"github.com/meetvasani/safar/internal/adapters/postgres"
	"github.com/meetvasani/safar/internal/adapters/valkey"
	"github.com/meetvasani/safar/internal/core/ports"
	"github.com/meetvasani/safar/internal/core/usecases"
	"github.com/meetvasani/safar/internal/pkg/config"
	"github.com/meetvasani/safar/internal/pkg/logging"
	"github.com/meetvasani/safar/internal/pkg/telemetry"
	"github.com/meetvasani/safar/internal/seed"
)

func main() {
	cfg, err := config.Load("safar-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("safar-api", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	go db.ReportPoolMetrics(ctx, 15*time.Second)

	// Cache is optional: the API degrades to uncached reads without it
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		cacheSvc = cache
		defer cache.Close()
	}

	// NATS is optional too: bookings still work, events are just not emitted
	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		events = pub
		defer pub.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Repos
	providerRepo := postgres.NewProviderRepo(db)
	routeRepo := postgres.NewRouteRepo(db)
	scheduleRepo := postgres.NewScheduleRepo(db)
	bookingRepo := postgres.NewBookingRepo(db)
	popularRepo := postgres.NewPopularRouteRepo(db)
	offerRepo := postgres.NewOfferRepo(db)

	// Demo dataset
	if cfg.Seed.Enabled {
		err := seed.Ensure(ctx, seed.Repositories{
			Providers: providerRepo,
			Routes:    routeRepo,
			Schedules: scheduleRepo,
			Popular:   popularRepo,
			Offers:    offerRepo,
		})
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	// Use cases
	catalogSvc := usecases.NewCatalogService(providerRepo, offerRepo, cacheSvc)
	searchSvc := usecases.NewSearchService(providerRepo, routeRepo, scheduleRepo, popularRepo, cacheSvc)
	scheduleSvc := usecases.NewScheduleService(scheduleRepo, events)
	bookingSvc := usecases.NewBookingService(scheduleRepo, bookingRepo, events)

	deps := &http.Dependencies{
		Catalog:   catalogSvc,
		Search:    searchSvc,
		Schedules: scheduleSvc,
		Bookings:  bookingSvc,
		NATS:      natsConn,
		DB:        db,
		Cache:     cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Safar API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
