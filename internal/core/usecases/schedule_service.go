package usecases

import (
	"context"
	"log/slog"

	"github.com/meetvasani/safar/internal/core/domain"
	"github.com/meetvasani/safar/internal/core/ports"
)

// ScheduleService serves schedules and their seat inventory.
type ScheduleService struct {
	schedules ports.ScheduleRepository
	events    ports.EventPublisher
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(schedules ports.ScheduleRepository, events ports.EventPublisher) *ScheduleService {
	return &ScheduleService{schedules: schedules, events: events}
}

// GetByID returns one schedule.
func (s *ScheduleService) GetByID(ctx context.Context, id int) (*domain.Schedule, error) {
	return s.schedules.GetByID(ctx, id)
}

// ListByRoute returns all schedules of a route.
func (s *ScheduleService) ListByRoute(ctx context.Context, routeID int) ([]domain.Schedule, error) {
	return s.schedules.ListByRoute(ctx, routeID)
}

// SetAvailability sets the absolute seat count on a schedule and broadcasts
// the new availability. Seat counts never go negative.
func (s *ScheduleService) SetAvailability(ctx context.Context, id, availableSeats int) (*domain.Schedule, error) {
	if availableSeats < 0 {
		return nil, domain.NewValidationError("availableSeats", "must be zero or more")
	}

	sched, err := s.schedules.UpdateAvailability(ctx, id, availableSeats)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishSeatAvailability(ctx, sched.ID, sched.AvailableSeats); err != nil {
			slog.Warn("publish seat availability", "schedule_id", sched.ID, "error", err)
		}
	}

	return sched, nil
}
