package http

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/meetvasani/safar/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int               `json:"status"`
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"` // per-field validation detail
	RequestID string            `json:"requestId,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal returns a 500 error. The underlying cause is logged, never
// sent to the client.
func errInternal(c *fiber.Ctx, err error) error {
	reqID, _ := c.Locals("requestid").(string)
	slog.Error("internal error", "path", c.Path(), "request_id", reqID, "error", err)
	return newError(c, fiber.StatusInternalServerError, "internal_error", "internal server error")
}

// respondDomainError translates a core error into its HTTP shape.
func respondDomainError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		reqID, _ := c.Locals("requestid").(string)
		return c.Status(fiber.StatusBadRequest).JSON(APIError{
			Status:    fiber.StatusBadRequest,
			Code:      "invalid_input",
			Message:   "invalid input",
			Fields:    ve.Fields,
			RequestID: reqID,
		})
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound(c, notFoundMsg)
	case errors.Is(err, domain.ErrSeatsUnavailable):
		return newError(c, fiber.StatusBadRequest, "seats_unavailable", "No seats available")
	default:
		return errInternal(c, err)
	}
}
