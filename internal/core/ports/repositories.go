package ports

import (
	"context"

	"github.com/meetvasani/safar/internal/core/domain"
)

// ProviderRepository persists transport providers.
type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.Provider) (*domain.Provider, error)
	GetByID(ctx context.Context, id int) (*domain.Provider, error)
	List(ctx context.Context) ([]domain.Provider, error)
	ListByType(ctx context.Context, t domain.TransportType) ([]domain.Provider, error)
}

// RouteRepository persists routes.
type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) (*domain.Route, error)
	GetByID(ctx context.Context, id int) (*domain.Route, error)
	List(ctx context.Context) ([]domain.Route, error)
	ListByProvider(ctx context.Context, providerID int) ([]domain.Route, error)
	// FindByEndpoints returns routes whose source and destination match
	// exactly and whose provider operates the given transport type.
	FindByEndpoints(ctx context.Context, source, destination string, t domain.TransportType) ([]domain.Route, error)
}

// ScheduleRepository persists schedules and their seat inventory.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int) (*domain.Schedule, error)
	ListByRoute(ctx context.Context, routeID int) ([]domain.Schedule, error)
	// UpdateAvailability sets the absolute seat count on a schedule.
	// Returns domain.ErrNotFound if the schedule does not exist.
	UpdateAvailability(ctx context.Context, id, availableSeats int) (*domain.Schedule, error)
}

// BookingRepository persists bookings.
type BookingRepository interface {
	// Create reserves one seat and inserts the booking in a single
	// transaction: the seat decrement is conditional on available_seats > 0
	// and status = active, so two concurrent bookings can never oversell.
	// Returns domain.ErrSeatsUnavailable when no seat could be reserved.
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Booking, error)
}

// PopularRouteRepository persists curated homepage routes.
type PopularRouteRepository interface {
	Create(ctx context.Context, pr *domain.PopularRoute) (*domain.PopularRoute, error)
	List(ctx context.Context) ([]domain.PopularRoute, error)
}

// OfferRepository persists promotional offers.
type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) (*domain.Offer, error)
	GetByID(ctx context.Context, id int) (*domain.Offer, error)
	List(ctx context.Context) ([]domain.Offer, error)
}
