package usecases

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"

	"github.com/meetvasani/safar/internal/core/domain"
	"github.com/meetvasani/safar/internal/core/ports"
	"github.com/meetvasani/safar/internal/pkg/metrics"
)

// BookingRequest carries the fields a client submits to create a booking.
type BookingRequest struct {
	UserID         *int   `json:"userId" validate:"omitempty,min=1"`
	ScheduleID     int    `json:"scheduleId" validate:"required,min=1"`
	PassengerName  string `json:"passengerName" validate:"required,min=3"`
	PassengerPhone string `json:"passengerPhone" validate:"required,min=10"`
	PassengerEmail string `json:"passengerEmail" validate:"omitempty,email"`
	SeatNumber     string `json:"seatNumber" validate:"required"`
	TotalAmount    int    `json:"totalAmount" validate:"required,min=1"`
	PaymentMethod  string `json:"paymentMethod" validate:"omitempty"`
}

// BookingService validates booking requests and persists bookings.
type BookingService struct {
	schedules ports.ScheduleRepository
	bookings  ports.BookingRepository
	events    ports.EventPublisher
	validate  *validator.Validate
}

// NewBookingService creates a new BookingService. events may be nil when no
// broker is configured.
func NewBookingService(schedules ports.ScheduleRepository, bookings ports.BookingRepository, events ports.EventPublisher) *BookingService {
	return &BookingService{
		schedules: schedules,
		bookings:  bookings,
		events:    events,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create validates the request, confirms the schedule exists and still has
// seats, then persists a confirmed booking. The seat is reserved by a
// conditional decrement inside the same transaction as the insert, so a
// schedule with one seat left yields exactly one confirmed booking under
// concurrent requests.
func (s *BookingService) Create(ctx context.Context, req BookingRequest) (*domain.Booking, error) {
	ctx, span := otel.Tracer("safar").Start(ctx, "booking.create")
	defer span.End()

	if err := s.validate.Struct(req); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			fields := make(map[string]string, len(invalid))
			for _, fe := range invalid {
				fields[fe.Field()] = fe.Tag()
			}
			return nil, &domain.ValidationError{Fields: fields}
		}
		return nil, err
	}

	sched, err := s.schedules.GetByID(ctx, req.ScheduleID)
	if err != nil {
		return nil, err
	}

	if sched.AvailableSeats < 1 {
		metrics.SeatsUnavailableTotal.Inc()
		return nil, domain.ErrSeatsUnavailable
	}

	booking := &domain.Booking{
		UserID:         req.UserID,
		ScheduleID:     req.ScheduleID,
		PassengerName:  req.PassengerName,
		PassengerPhone: req.PassengerPhone,
		PassengerEmail: req.PassengerEmail,
		SeatNumber:     req.SeatNumber,
		TotalAmount:    req.TotalAmount,
		Status:         domain.BookingConfirmed,
		PaymentMethod:  req.PaymentMethod,
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, domain.ErrSeatsUnavailable) {
			// Lost the race for the last seat between check and commit.
			metrics.SeatsUnavailableTotal.Inc()
		}
		return nil, err
	}

	metrics.BookingsCreatedTotal.Inc()
	s.publish(ctx, created)

	return created, nil
}

// GetByID returns one booking.
func (s *BookingService) GetByID(ctx context.Context, id int) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// List returns all bookings, or only those of one user when userID is set.
func (s *BookingService) List(ctx context.Context, userID *int) ([]domain.Booking, error) {
	if userID != nil {
		return s.bookings.ListByUser(ctx, *userID)
	}
	return s.bookings.List(ctx)
}

// publish emits booking and seat-availability events, best effort. A broker
// outage never fails a committed booking.
func (s *BookingService) publish(ctx context.Context, booking *domain.Booking) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishBookingCreated(ctx, booking); err != nil {
		slog.Warn("publish booking event", "booking_id", booking.ID, "error", err)
	}
	sched, err := s.schedules.GetByID(ctx, booking.ScheduleID)
	if err != nil {
		return
	}
	if err := s.events.PublishSeatAvailability(ctx, sched.ID, sched.AvailableSeats); err != nil {
		slog.Warn("publish seat availability", "schedule_id", sched.ID, "error", err)
	}
}
