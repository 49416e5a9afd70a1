package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meetvasani/safar/internal/core/domain"
	"github.com/meetvasani/safar/internal/core/usecases"
)

// --- Mock repositories ---

type mockProviderRepo struct {
	getByIDFn    func(ctx context.Context, id int) (*domain.Provider, error)
	listFn       func(ctx context.Context) ([]domain.Provider, error)
	listByTypeFn func(ctx context.Context, t domain.TransportType) ([]domain.Provider, error)
}

func (m *mockProviderRepo) Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error) {
	return p, nil
}

func (m *mockProviderRepo) GetByID(ctx context.Context, id int) (*domain.Provider, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockProviderRepo) List(ctx context.Context) ([]domain.Provider, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockProviderRepo) ListByType(ctx context.Context, t domain.TransportType) ([]domain.Provider, error) {
	if m.listByTypeFn != nil {
		return m.listByTypeFn(ctx, t)
	}
	return nil, nil
}

type mockRouteRepo struct {
	getByIDFn         func(ctx context.Context, id int) (*domain.Route, error)
	findByEndpointsFn func(ctx context.Context, source, destination string, t domain.TransportType) ([]domain.Route, error)
}

func (m *mockRouteRepo) Create(ctx context.Context, r *domain.Route) (*domain.Route, error) {
	return r, nil
}

func (m *mockRouteRepo) GetByID(ctx context.Context, id int) (*domain.Route, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockRouteRepo) List(ctx context.Context) ([]domain.Route, error) { return nil, nil }

func (m *mockRouteRepo) ListByProvider(ctx context.Context, providerID int) ([]domain.Route, error) {
	return nil, nil
}

func (m *mockRouteRepo) FindByEndpoints(ctx context.Context, source, destination string, t domain.TransportType) ([]domain.Route, error) {
	if m.findByEndpointsFn != nil {
		return m.findByEndpointsFn(ctx, source, destination, t)
	}
	return nil, nil
}

type mockScheduleRepo struct {
	getByIDFn            func(ctx context.Context, id int) (*domain.Schedule, error)
	listByRouteFn        func(ctx context.Context, routeID int) ([]domain.Schedule, error)
	updateAvailabilityFn func(ctx context.Context, id, availableSeats int) (*domain.Schedule, error)
}

func (m *mockScheduleRepo) Create(ctx context.Context, s *domain.Schedule) (*domain.Schedule, error) {
	return s, nil
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id int) (*domain.Schedule, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockScheduleRepo) ListByRoute(ctx context.Context, routeID int) ([]domain.Schedule, error) {
	if m.listByRouteFn != nil {
		return m.listByRouteFn(ctx, routeID)
	}
	return nil, nil
}

func (m *mockScheduleRepo) UpdateAvailability(ctx context.Context, id, availableSeats int) (*domain.Schedule, error) {
	if m.updateAvailabilityFn != nil {
		return m.updateAvailabilityFn(ctx, id, availableSeats)
	}
	return nil, domain.ErrNotFound
}

type mockPopularRepo struct {
	listFn func(ctx context.Context) ([]domain.PopularRoute, error)
}

func (m *mockPopularRepo) Create(ctx context.Context, pr *domain.PopularRoute) (*domain.PopularRoute, error) {
	return pr, nil
}

func (m *mockPopularRepo) List(ctx context.Context) ([]domain.PopularRoute, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// --- Fixtures ---

func dayAt(hour, min int) time.Time {
	return time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC)
}

func searchFixture() (*mockProviderRepo, *mockRouteRepo, *mockScheduleRepo) {
	providers := &mockProviderRepo{
		getByIDFn: func(ctx context.Context, id int) (*domain.Provider, error) {
			return &domain.Provider{ID: id, Name: "GSRTC", Type: domain.TransportBus, Rating: 4.2}, nil
		},
	}
	routes := &mockRouteRepo{
		findByEndpointsFn: func(ctx context.Context, source, destination string, t domain.TransportType) ([]domain.Route, error) {
			if source != "Ahmedabad" || destination != "Surat" {
				return nil, nil
			}
			return []domain.Route{
				{ID: 1, ProviderID: 1, Source: "Ahmedabad", Destination: "Surat", Duration: 270},
			}, nil
		},
	}
	schedules := &mockScheduleRepo{
		listByRouteFn: func(ctx context.Context, routeID int) ([]domain.Schedule, error) {
			return []domain.Schedule{
				{ID: 11, RouteID: 1, DepartureTime: dayAt(14, 0), ArrivalTime: dayAt(18, 30),
					FareAmount: 350, AvailableSeats: 42, Status: domain.ScheduleActive},
				{ID: 10, RouteID: 1, DepartureTime: dayAt(7, 0), ArrivalTime: dayAt(11, 30),
					FareAmount: 350, AvailableSeats: 35, Status: domain.ScheduleActive},
			}, nil
		},
	}
	return providers, routes, schedules
}

// --- Tests ---

func TestSearchService_Search(t *testing.T) {
	providers, routes, schedules := searchFixture()
	svc := usecases.NewSearchService(providers, routes, schedules, &mockPopularRepo{}, nil)

	results, err := svc.Search(context.Background(), "Ahmedabad", "Surat", domain.TransportBus, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ScheduleID != 10 || results[1].ScheduleID != 11 {
		t.Errorf("results not sorted by departure time: got schedules %d, %d",
			results[0].ScheduleID, results[1].ScheduleID)
	}
	if results[0].ProviderName != "GSRTC" {
		t.Errorf("expected provider GSRTC, got %s", results[0].ProviderName)
	}
	if results[0].FareAmount != 350 {
		t.Errorf("expected fare 350, got %d", results[0].FareAmount)
	}
}

func TestSearchService_Search_ExcludesUnbookable(t *testing.T) {
	providers, routes, _ := searchFixture()
	schedules := &mockScheduleRepo{
		listByRouteFn: func(ctx context.Context, routeID int) ([]domain.Schedule, error) {
			return []domain.Schedule{
				{ID: 20, RouteID: 1, DepartureTime: dayAt(7, 0), AvailableSeats: 0, Status: domain.ScheduleActive},
				{ID: 21, RouteID: 1, DepartureTime: dayAt(9, 0), AvailableSeats: 30, Status: "cancelled"},
				{ID: 22, RouteID: 1, DepartureTime: dayAt(11, 0), AvailableSeats: 12, Status: domain.ScheduleActive},
			}, nil
		},
	}
	svc := usecases.NewSearchService(providers, routes, schedules, &mockPopularRepo{}, nil)

	results, err := svc.Search(context.Background(), "Ahmedabad", "Surat", domain.TransportBus, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 bookable result, got %d", len(results))
	}
	if results[0].ScheduleID != 22 {
		t.Errorf("expected schedule 22, got %d", results[0].ScheduleID)
	}
}

func TestSearchService_Search_DateFilter(t *testing.T) {
	providers, routes, schedules := searchFixture()
	svc := usecases.NewSearchService(providers, routes, schedules, &mockPopularRepo{}, nil)

	results, err := svc.Search(context.Background(), "Ahmedabad", "Surat", domain.TransportBus, "2026-03-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results on the travel date, got %d", len(results))
	}

	results, err = svc.Search(context.Background(), "Ahmedabad", "Surat", domain.TransportBus, "2026-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results on another date, got %d", len(results))
	}
}

func TestSearchService_Search_Validation(t *testing.T) {
	providers, routes, schedules := searchFixture()
	svc := usecases.NewSearchService(providers, routes, schedules, &mockPopularRepo{}, nil)

	cases := []struct {
		name        string
		source      string
		destination string
		transport   domain.TransportType
		date        string
	}{
		{"empty source", "", "Surat", domain.TransportBus, ""},
		{"empty destination", "Ahmedabad", "", domain.TransportBus, ""},
		{"invalid type", "Ahmedabad", "Surat", "boat", ""},
		{"bad date", "Ahmedabad", "Surat", domain.TransportBus, "14-03-2026"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tc.source, tc.destination, tc.transport, tc.date)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSearchService_Search_CaseSensitiveMatch(t *testing.T) {
	providers, routes, schedules := searchFixture()
	svc := usecases.NewSearchService(providers, routes, schedules, &mockPopularRepo{}, nil)

	results, err := svc.Search(context.Background(), "ahmedabad", "surat", domain.TransportBus, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("lowercased city names should not match, got %d results", len(results))
	}
}

func TestSearchService_Search_SkipsUnresolvableProvider(t *testing.T) {
	_, routes, schedules := searchFixture()
	providers := &mockProviderRepo{
		getByIDFn: func(ctx context.Context, id int) (*domain.Provider, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := usecases.NewSearchService(providers, routes, schedules, &mockPopularRepo{}, nil)

	results, err := svc.Search(context.Background(), "Ahmedabad", "Surat", domain.TransportBus, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected route with missing provider to be dropped, got %d results", len(results))
	}
}

func TestSearchService_RouteDetails(t *testing.T) {
	providers, _, _ := searchFixture()
	routes := &mockRouteRepo{
		getByIDFn: func(ctx context.Context, id int) (*domain.Route, error) {
			return &domain.Route{ID: id, ProviderID: 1, Source: "Ahmedabad", Destination: "Surat", Duration: 270}, nil
		},
	}
	schedules := &mockScheduleRepo{
		getByIDFn: func(ctx context.Context, id int) (*domain.Schedule, error) {
			return &domain.Schedule{ID: id, RouteID: 1, DepartureTime: dayAt(7, 0), ArrivalTime: dayAt(11, 30),
				FareAmount: 350, AvailableSeats: 35, Status: domain.ScheduleActive}, nil
		},
	}
	svc := usecases.NewSearchService(providers, routes, schedules, &mockPopularRepo{}, nil)

	details, err := svc.RouteDetails(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.ID != 1 || details.ScheduleID != 10 {
		t.Errorf("wrong ids composed: route %d schedule %d", details.ID, details.ScheduleID)
	}
	if details.DepartureTime != "2026-03-14T07:00:00Z" {
		t.Errorf("expected RFC 3339 departure, got %s", details.DepartureTime)
	}
}

func TestSearchService_RouteDetails_NotFound(t *testing.T) {
	svc := usecases.NewSearchService(&mockProviderRepo{}, &mockRouteRepo{}, &mockScheduleRepo{}, &mockPopularRepo{}, nil)

	_, err := svc.RouteDetails(context.Background(), 999, 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchService_PopularRoutes_SkipsBrokenEntries(t *testing.T) {
	providers, _, _ := searchFixture()
	routes := &mockRouteRepo{
		getByIDFn: func(ctx context.Context, id int) (*domain.Route, error) {
			if id == 1 {
				return &domain.Route{ID: 1, ProviderID: 1, Source: "Ahmedabad", Destination: "Surat"}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	schedules := &mockScheduleRepo{
		getByIDFn: func(ctx context.Context, id int) (*domain.Schedule, error) {
			return &domain.Schedule{ID: id, RouteID: 1, DepartureTime: dayAt(7, 0), ArrivalTime: dayAt(11, 30),
				AvailableSeats: 35, Status: domain.ScheduleActive}, nil
		},
	}
	popular := &mockPopularRepo{
		listFn: func(ctx context.Context) ([]domain.PopularRoute, error) {
			return []domain.PopularRoute{
				{ID: 1, RouteID: 1, ScheduleID: 10, Count: 120},
				{ID: 2, RouteID: 404, ScheduleID: 11, Count: 90},
			}, nil
		},
	}
	svc := usecases.NewSearchService(providers, routes, schedules, popular, nil)

	results, err := svc.PopularRoutes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected broken entry to be skipped, got %d results", len(results))
	}
	if results[0].ID != 1 {
		t.Errorf("expected route 1, got %d", results[0].ID)
	}
}
