package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets default Cache-Control headers on GET responses.
// Handlers that set their own header win.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet {
			return err
		}
		if existing := c.GetRespHeader("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/api/health" || path == "/api/ready":
			ttl = "public, max-age=10"

		case path == "/metrics":
			ttl = "no-cache"

		case path == "/graphql":
			ttl = "private, max-age=0"

		case strings.HasPrefix(path, "/api/transport-providers"):
			ttl = "public, max-age=600" // provider catalog is stable

		case strings.HasPrefix(path, "/api/offers"):
			ttl = "public, max-age=300"

		case path == "/api/popular-routes":
			ttl = "public, max-age=300"

		case strings.HasPrefix(path, "/api/routes/search"):
			ttl = "public, max-age=60" // seat counts move quickly

		case strings.HasPrefix(path, "/api/bookings"):
			ttl = "no-store" // personal data

		case strings.HasPrefix(path, "/api/"):
			ttl = "public, max-age=60"

		default:
			return err
		}

		c.Set("Cache-Control", ttl)
		return err
	}
}
