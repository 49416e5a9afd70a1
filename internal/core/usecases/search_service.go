package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/meetvasani/safar/internal/core/domain"
	"github.com/meetvasani/safar/internal/core/ports"
	"github.com/meetvasani/safar/internal/pkg/metrics"
)

// SearchService answers route searches and assembles the denormalized
// RouteWithDetails view used by search results and detail pages.
type SearchService struct {
	providers ports.ProviderRepository
	routes    ports.RouteRepository
	schedules ports.ScheduleRepository
	popular   ports.PopularRouteRepository
	cache     ports.CacheService
}

// NewSearchService creates a new SearchService.
func NewSearchService(
	providers ports.ProviderRepository,
	routes ports.RouteRepository,
	schedules ports.ScheduleRepository,
	popular ports.PopularRouteRepository,
	cache ports.CacheService,
) *SearchService {
	return &SearchService{
		providers: providers,
		routes:    routes,
		schedules: schedules,
		popular:   popular,
		cache:     cache,
	}
}

// Search returns bookable departures between source and destination for one
// transport type, sorted ascending by departure time.
//
// Matching is exact string equality on source and destination. A schedule
// survives only if it is active, has seats left, and (when date is given,
// formatted 2006-01-02) departs on that calendar date. A route whose
// provider cannot be resolved is dropped; it never fails the whole search.
func (s *SearchService) Search(ctx context.Context, source, destination string, t domain.TransportType, date string) ([]domain.RouteWithDetails, error) {
	ctx, span := otel.Tracer("safar").Start(ctx, "search.routes")
	defer span.End()

	if source == "" || destination == "" {
		return nil, domain.NewValidationError("source", "source and destination are required")
	}
	if !t.Valid() {
		return nil, domain.NewValidationError("type", "invalid transport type")
	}
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, domain.NewValidationError("date", "date must be formatted YYYY-MM-DD")
		}
	}

	metrics.SearchesTotal.WithLabelValues(string(t)).Inc()

	cacheKey := fmt.Sprintf("search:%s:%s:%s:%s", source, destination, t, date)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var results []domain.RouteWithDetails
			if err := json.Unmarshal(data, &results); err == nil {
				metrics.CacheHits.WithLabelValues("search").Inc()
				return results, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("search").Inc()
	}

	candidates, err := s.routes.FindByEndpoints(ctx, source, destination, t)
	if err != nil {
		return nil, fmt.Errorf("find routes: %w", err)
	}

	results := []domain.RouteWithDetails{}
	for _, route := range candidates {
		provider, err := s.providers.GetByID(ctx, route.ProviderID)
		if err != nil {
			// Unresolvable provider drops this route only.
			continue
		}

		scheduleList, err := s.schedules.ListByRoute(ctx, route.ID)
		if err != nil {
			return nil, fmt.Errorf("list schedules for route %d: %w", route.ID, err)
		}

		for _, sched := range scheduleList {
			if date != "" && sched.DepartureTime.UTC().Format("2006-01-02") != date {
				continue
			}
			if sched.AvailableSeats <= 0 || sched.Status != domain.ScheduleActive {
				continue
			}
			results = append(results, composeDetails(provider, &route, &sched))
		}
	}

	// ISO-8601 strings sort lexicographically in chronological order.
	sort.Slice(results, func(i, j int) bool {
		return results[i].DepartureTime < results[j].DepartureTime
	})

	if s.cache != nil {
		if data, err := json.Marshal(results); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 60)
		}
	}

	return results, nil
}

// RouteDetails assembles the composed view for one (route, schedule) pair.
// Returns domain.ErrNotFound if the route, the schedule, or the route's
// provider cannot be resolved.
func (s *SearchService) RouteDetails(ctx context.Context, routeID, scheduleID int) (*domain.RouteWithDetails, error) {
	route, err := s.routes.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	sched, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	provider, err := s.providers.GetByID(ctx, route.ProviderID)
	if err != nil {
		return nil, err
	}

	details := composeDetails(provider, route, sched)
	return &details, nil
}

// PopularRoutes composes the curated homepage routes. Entries whose route,
// schedule, or provider no longer resolves are silently skipped.
func (s *SearchService) PopularRoutes(ctx context.Context) ([]domain.RouteWithDetails, error) {
	cacheKey := "popular:details"
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var results []domain.RouteWithDetails
			if err := json.Unmarshal(data, &results); err == nil {
				metrics.CacheHits.WithLabelValues("popular").Inc()
				return results, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("popular").Inc()
	}

	popularList, err := s.popular.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list popular routes: %w", err)
	}

	results := []domain.RouteWithDetails{}
	for _, pr := range popularList {
		route, err := s.routes.GetByID(ctx, pr.RouteID)
		if err != nil {
			continue
		}
		sched, err := s.schedules.GetByID(ctx, pr.ScheduleID)
		if err != nil {
			continue
		}
		provider, err := s.providers.GetByID(ctx, route.ProviderID)
		if err != nil {
			continue
		}
		results = append(results, composeDetails(provider, route, sched))
	}

	if s.cache != nil {
		if data, err := json.Marshal(results); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return results, nil
}

// composeDetails flattens a resolved provider/route/schedule triple into the
// read view. Times are rendered in UTC RFC 3339.
func composeDetails(provider *domain.Provider, route *domain.Route, sched *domain.Schedule) domain.RouteWithDetails {
	return domain.RouteWithDetails{
		ID:             route.ID,
		ProviderID:     provider.ID,
		ProviderName:   provider.Name,
		ProviderLogo:   provider.LogoURL,
		ProviderType:   provider.Type,
		Source:         route.Source,
		Destination:    route.Destination,
		Duration:       route.Duration,
		Distance:       route.Distance,
		FareAmount:     sched.FareAmount,
		DepartureTime:  sched.DepartureTime.UTC().Format(time.RFC3339),
		ArrivalTime:    sched.ArrivalTime.UTC().Format(time.RFC3339),
		AvailableSeats: sched.AvailableSeats,
		Status:         sched.Status,
		ScheduleID:     sched.ID,
		VehicleID:      sched.VehicleID,
	}
}
