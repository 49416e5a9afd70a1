package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"
	"github.com/meetvasani/safar/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health and readiness checks run without the per-request timeout
	app.Get("/api/health", HealthHandler(deps))
	app.Get("/api/ready", ReadyHandler(deps))

	// REST API with a 15s per-request timeout
	api := app.Group("/api")
	api.Get("/transport-providers", timeout.NewWithContext(ListProvidersHandler(deps), 15*time.Second))
	api.Get("/transport-providers/:type", timeout.NewWithContext(ListProvidersByTypeHandler(deps), 15*time.Second))
	api.Get("/popular-routes", timeout.NewWithContext(PopularRoutesHandler(deps), 15*time.Second))
	api.Get("/routes/search", timeout.NewWithContext(SearchRoutesHandler(deps), 15*time.Second))
	api.Get("/routes/:routeId/schedules/:scheduleId", timeout.NewWithContext(RouteDetailsHandler(deps), 15*time.Second))
	api.Get("/routes/:routeId/schedules", timeout.NewWithContext(RouteSchedulesHandler(deps), 15*time.Second))
	api.Get("/offers", timeout.NewWithContext(ListOffersHandler(deps), 15*time.Second))
	api.Post("/bookings", timeout.NewWithContext(CreateBookingHandler(deps), 15*time.Second))
	api.Get("/bookings", timeout.NewWithContext(ListBookingsHandler(deps), 15*time.Second))
	api.Get("/bookings/:id", timeout.NewWithContext(GetBookingHandler(deps), 15*time.Second))
	api.Patch("/schedules/:id/availability", timeout.NewWithContext(SetScheduleAvailabilityHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket; only available when the broker connection is up
	if deps.NATS != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
	}
}
