package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meetvasani/safar/internal/core/usecases"
)

// CreateBookingHandler answers POST /api/bookings. Validation failures map
// to 400, a missing schedule to 404, a sold-out schedule to 400 with code
// seats_unavailable.
func CreateBookingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req usecases.BookingRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "Invalid booking data")
		}

		booking, err := deps.Bookings.Create(c.UserContext(), req)
		if err != nil {
			return respondDomainError(c, err, "Schedule not found")
		}

		return c.Status(fiber.StatusCreated).JSON(booking)
	}
}

// ListBookingsHandler lists bookings, optionally filtered by userId.
func ListBookingsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var userID *int
		if raw := c.Query("userId"); raw != "" {
			id := c.QueryInt("userId", 0)
			if id > 0 {
				userID = &id
			}
		}

		bookings, err := deps.Bookings.List(c.UserContext(), userID)
		if err != nil {
			return errInternal(c, err)
		}
		return c.JSON(bookings)
	}
}

// GetBookingHandler returns one booking by ID.
func GetBookingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return errBadRequest(c, "Invalid booking ID")
		}

		booking, err := deps.Bookings.GetByID(c.UserContext(), id)
		if err != nil {
			return respondDomainError(c, err, "Booking not found")
		}
		return c.JSON(booking)
	}
}
