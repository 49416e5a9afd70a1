package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meetvasani/safar/internal/core/domain"
)

// ListProvidersHandler returns all transport providers.
func ListProvidersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		providers, err := deps.Catalog.ListProviders(c.UserContext())
		if err != nil {
			return errInternal(c, err)
		}

		// Clients expect a bare array; pagination rides in Link headers.
		pg := windowParams(c, 100, 200)
		providers, total := window(providers, &pg)
		SetLinkHeaders(c, Pagination{Offset: pg.Offset, Limit: pg.Limit, Total: total})

		c.Set("Cache-Control", "public, max-age=600")
		return c.JSON(providers)
	}
}

// ListProvidersByTypeHandler returns providers of one transport type.
func ListProvidersByTypeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t := domain.TransportType(c.Params("type"))
		if !t.Valid() {
			return errBadRequest(c, "Invalid transport type")
		}

		providers, err := deps.Catalog.ListProvidersByType(c.UserContext(), t)
		if err != nil {
			return respondDomainError(c, err, "providers not found")
		}
		return c.JSON(providers)
	}
}

// PopularRoutesHandler returns the curated homepage routes with details.
func PopularRoutesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		routes, err := deps.Search.PopularRoutes(c.UserContext())
		if err != nil {
			return errInternal(c, err)
		}
		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(routes)
	}
}

// ListOffersHandler returns active promotions.
func ListOffersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offers, err := deps.Catalog.ListOffers(c.UserContext())
		if err != nil {
			return errInternal(c, err)
		}
		return c.JSON(offers)
	}
}

// SearchRoutesHandler answers GET /api/routes/search.
// source, destination and type are required; date (YYYY-MM-DD) restricts
// results to departures on that calendar date.
func SearchRoutesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		source := c.Query("source")
		destination := c.Query("destination")
		transport := c.Query("type")
		date := c.Query("date")

		if source == "" || destination == "" || transport == "" {
			return errBadRequest(c, "source, destination and type are required")
		}

		t := domain.TransportType(transport)
		if !t.Valid() {
			return errBadRequest(c, "Invalid transport type")
		}

		results, err := deps.Search.Search(c.UserContext(), source, destination, t, date)
		if err != nil {
			return respondDomainError(c, err, "routes not found")
		}
		return c.JSON(results)
	}
}

// RouteDetailsHandler returns the composed view for one (route, schedule).
func RouteDetailsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		routeID, err := c.ParamsInt("routeId")
		if err != nil {
			return errBadRequest(c, "Invalid route ID")
		}
		scheduleID, err := c.ParamsInt("scheduleId")
		if err != nil {
			return errBadRequest(c, "Invalid schedule ID")
		}

		details, err := deps.Search.RouteDetails(c.UserContext(), routeID, scheduleID)
		if err != nil {
			return respondDomainError(c, err, "Route or schedule not found")
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(details)
	}
}

// RouteSchedulesHandler lists all schedules of a route.
func RouteSchedulesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		routeID, err := c.ParamsInt("routeId")
		if err != nil {
			return errBadRequest(c, "Invalid route ID")
		}

		schedules, err := deps.Schedules.ListByRoute(c.UserContext(), routeID)
		if err != nil {
			return errInternal(c, err)
		}
		return c.JSON(schedules)
	}
}

// SetScheduleAvailabilityHandler sets the absolute seat count on a schedule.
// PATCH /api/schedules/:id/availability {"availableSeats": 40}
func SetScheduleAvailabilityHandler(deps *Dependencies) fiber.Handler {
	type request struct {
		AvailableSeats *int `json:"availableSeats"`
	}

	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return errBadRequest(c, "Invalid schedule ID")
		}

		var req request
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "Invalid request body")
		}
		if req.AvailableSeats == nil {
			return errBadRequest(c, "availableSeats is required")
		}

		sched, err := deps.Schedules.SetAvailability(c.UserContext(), id, *req.AvailableSeats)
		if err != nil {
			return respondDomainError(c, err, "Schedule not found")
		}
		return c.JSON(sched)
	}
}
