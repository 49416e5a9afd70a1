// Package seed loads the demo dataset used by the app on first boot and by
// tests that need realistic fixtures. Seeding is explicit and idempotent:
// Ensure is called once from process bootstrap and does nothing when any
// provider already exists.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/meetvasani/safar/internal/core/domain"
	"github.com/meetvasani/safar/internal/core/ports"
)

// Repositories bundles the stores the seeder writes to.
type Repositories struct {
	Providers ports.ProviderRepository
	Routes    ports.RouteRepository
	Schedules ports.ScheduleRepository
	Popular   ports.PopularRouteRepository
	Offers    ports.OfferRepository
}

// Ensure inserts the demo dataset unless providers already exist.
func Ensure(ctx context.Context, repos Repositories) error {
	existing, err := repos.Providers.List(ctx)
	if err != nil {
		return fmt.Errorf("check providers: %w", err)
	}
	if len(existing) > 0 {
		slog.Debug("seed skipped, data already present", "providers", len(existing))
		return nil
	}

	slog.Info("seeding demo dataset")

	gsrtc, err := repos.Providers.Create(ctx, &domain.Provider{
		Name: "GSRTC", Type: domain.TransportBus,
		ContactInfo: "+91 79 2254 3273", Rating: 4.2,
	})
	if err != nil {
		return fmt.Errorf("seed provider: %w", err)
	}
	metro, err := repos.Providers.Create(ctx, &domain.Provider{
		Name: "Ahmedabad Metro", Type: domain.TransportMetro,
		ContactInfo: "+91 79 2327 6500", Rating: 4.5,
	})
	if err != nil {
		return fmt.Errorf("seed provider: %w", err)
	}
	railways, err := repos.Providers.Create(ctx, &domain.Provider{
		Name: "Indian Railways", Type: domain.TransportTrain,
		ContactInfo: "+91 139", Rating: 4.0,
	})
	if err != nil {
		return fmt.Errorf("seed provider: %w", err)
	}
	airIndia, err := repos.Providers.Create(ctx, &domain.Provider{
		Name: "Air India", Type: domain.TransportFlight,
		ContactInfo: "+91 124 625 2400", Rating: 3.7,
	})
	if err != nil {
		return fmt.Errorf("seed provider: %w", err)
	}

	type routeSpec struct {
		route     domain.Route
		schedules []domain.Schedule
	}

	amdSurat := domain.Route{ProviderID: gsrtc.ID, Source: "Ahmedabad", Destination: "Surat",
		Duration: 180, Distance: 270, StopsCount: 2, RouteNumber: "AS-1234"}
	amdVadodara := domain.Route{ProviderID: gsrtc.ID, Source: "Ahmedabad", Destination: "Vadodara",
		Duration: 120, Distance: 120, StopsCount: 1, RouteNumber: "AV-5678"}
	metroLine := domain.Route{ProviderID: metro.ID, Source: "Thaltej Gam", Destination: "Apparel Park",
		Duration: 45, Distance: 21, StopsCount: 17, RouteNumber: "Metro Line 1"}
	amdMumbai := domain.Route{ProviderID: railways.ID, Source: "Ahmedabad", Destination: "Mumbai",
		Duration: 420, Distance: 550, StopsCount: 8, RouteNumber: "12934 KARNAVATI"}
	amdDelhi := domain.Route{ProviderID: airIndia.ID, Source: "Ahmedabad", Destination: "Delhi",
		Duration: 90, Distance: 950, StopsCount: 0, RouteNumber: "AI-101"}

	specs := []routeSpec{
		{amdSurat, []domain.Schedule{
			{DepartureTime: todayAt(7, 0), ArrivalTime: todayAt(10, 0), FareAmount: 350,
				AvailableSeats: 35, Status: domain.ScheduleActive, VehicleID: "GJ-01-XX-1234"},
			{DepartureTime: todayAt(14, 0), ArrivalTime: todayAt(17, 0), FareAmount: 350,
				AvailableSeats: 42, Status: domain.ScheduleActive, VehicleID: "GJ-01-XX-5678"},
		}},
		{amdVadodara, []domain.Schedule{
			{DepartureTime: todayAt(8, 30), ArrivalTime: todayAt(10, 30), FareAmount: 190,
				AvailableSeats: 28, Status: domain.ScheduleActive, VehicleID: "GJ-01-YY-9012"},
		}},
		{metroLine, []domain.Schedule{
			{DepartureTime: todayAt(8, 0), ArrivalTime: todayAt(8, 45), FareAmount: 30,
				AvailableSeats: 200, Status: domain.ScheduleActive, VehicleID: "METRO-EW-1"},
			{DepartureTime: todayAt(9, 0), ArrivalTime: todayAt(9, 45), FareAmount: 30,
				AvailableSeats: 180, Status: domain.ScheduleActive, VehicleID: "METRO-EW-2"},
		}},
		{amdMumbai, []domain.Schedule{
			// Overnight train: arrives the next morning.
			{DepartureTime: todayAt(22, 0), ArrivalTime: todayAt(5, 0).AddDate(0, 0, 1), FareAmount: 550,
				AvailableSeats: 124, Status: domain.ScheduleActive, VehicleID: "12934-KARNAVATI"},
		}},
		{amdDelhi, []domain.Schedule{
			{DepartureTime: todayAt(10, 15), ArrivalTime: todayAt(11, 45), FareAmount: 3500,
				AvailableSeats: 120, Status: domain.ScheduleActive, VehicleID: "AI-101"},
		}},
	}

	// popularity counts for the curated entries, keyed by route number
	popularCounts := map[string]int{
		"AS-1234":         150,
		"AV-5678":         120,
		"Metro Line 1":    450,
		"12934 KARNAVATI": 300,
	}

	for _, spec := range specs {
		route, err := repos.Routes.Create(ctx, &spec.route)
		if err != nil {
			return fmt.Errorf("seed route %s: %w", spec.route.RouteNumber, err)
		}

		for i, sched := range spec.schedules {
			sched.RouteID = route.ID
			created, err := repos.Schedules.Create(ctx, &sched)
			if err != nil {
				return fmt.Errorf("seed schedule for %s: %w", route.RouteNumber, err)
			}

			// First schedule of a curated route becomes its popular entry.
			if count, ok := popularCounts[route.RouteNumber]; ok && i == 0 {
				if _, err := repos.Popular.Create(ctx, &domain.PopularRoute{
					RouteID: route.ID, ScheduleID: created.ID, Count: count,
				}); err != nil {
					return fmt.Errorf("seed popular route: %w", err)
				}
			}
		}
	}

	offers := []domain.Offer{
		{
			Title:           "20% off on GSRTC routes",
			Description:     "Use code GSRTC20 to get 20% off on all GSRTC bus routes",
			Discount:        ptr(20),
			ValidUntil:      ptr(time.Now().AddDate(0, 0, 30)),
			ApplicableTypes: []domain.TransportType{domain.TransportBus},
		},
		{
			Title:           "Metro Monthly Pass",
			Description:     "Get 30% off on monthly metro passes for regular commuters",
			Discount:        ptr(30),
			ValidUntil:      ptr(time.Now().AddDate(0, 0, 60)),
			ApplicableTypes: []domain.TransportType{domain.TransportMetro},
		},
		{
			Title:       "Monsoon Special",
			Description: "Flat ₹100 off on all bookings made during the monsoon season",
			ValidUntil:  ptr(time.Now().AddDate(0, 0, 90)),
			ApplicableTypes: []domain.TransportType{
				domain.TransportBus, domain.TransportTrain, domain.TransportMetro, domain.TransportFlight,
			},
		},
	}
	for i := range offers {
		if _, err := repos.Offers.Create(ctx, &offers[i]); err != nil {
			return fmt.Errorf("seed offer %q: %w", offers[i].Title, err)
		}
	}

	slog.Info("demo dataset seeded")
	return nil
}

// todayAt returns today's date at the given UTC wall-clock time.
func todayAt(hour, minute int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }
