//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meetvasani/safar/internal/adapters/http"
	"github.com/meetvasani/safar/internal/adapters/postgres"
	"github.com/meetvasani/safar/internal/core/domain"
	"github.com/meetvasani/safar/internal/core/usecases"
	"github.com/meetvasani/safar/internal/pkg/config"
)

// setupTestDB connects to the test database.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("safar-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	db := &postgres.DB{Pool: pool}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	return db
}

// setupTestDeps creates dependencies with real repos, no cache and no broker.
func setupTestDeps(t *testing.T, db *postgres.DB) *http.Dependencies {
	providerRepo := postgres.NewProviderRepo(db)
	routeRepo := postgres.NewRouteRepo(db)
	scheduleRepo := postgres.NewScheduleRepo(db)
	bookingRepo := postgres.NewBookingRepo(db)
	popularRepo := postgres.NewPopularRouteRepo(db)
	offerRepo := postgres.NewOfferRepo(db)

	return &http.Dependencies{
		Catalog:   usecases.NewCatalogService(providerRepo, offerRepo, nil),
		Search:    usecases.NewSearchService(providerRepo, routeRepo, scheduleRepo, popularRepo, nil),
		Schedules: usecases.NewScheduleService(scheduleRepo, nil),
		Bookings:  usecases.NewBookingService(scheduleRepo, bookingRepo, nil),
		DB:        db,
	}
}

// seedTestTrip inserts a provider, route and schedule and returns their ids.
func seedTestTrip(t *testing.T, db *postgres.DB, source, destination string, seats int) (routeID, scheduleID int) {
	ctx := context.Background()

	var providerID int
	if err := db.Pool.QueryRow(ctx, `
		INSERT INTO providers (name, type, rating)
		VALUES ($1, 'bus', 4.2)
		RETURNING id
	`, "Test Provider "+source).Scan(&providerID); err != nil {
		t.Fatalf("seed provider: %v", err)
	}

	if err := db.Pool.QueryRow(ctx, `
		INSERT INTO routes (provider_id, source, destination, duration, distance, stops_count)
		VALUES ($1, $2, $3, 270, 265, 3)
		RETURNING id
	`, providerID, source, destination).Scan(&routeID); err != nil {
		t.Fatalf("seed route: %v", err)
	}

	departure := time.Now().UTC().Add(24 * time.Hour)
	if err := db.Pool.QueryRow(ctx, `
		INSERT INTO schedules (route_id, departure_time, arrival_time, fare_amount, available_seats, status)
		VALUES ($1, $2, $3, 350, $4, 'active')
		RETURNING id
	`, routeID, departure, departure.Add(4*time.Hour), seats).Scan(&scheduleID); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}

	return routeID, scheduleID
}

// TestSearchRoutes_Integration runs a search against the real database.
func TestSearchRoutes_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	suffix := time.Now().Format("150405")
	source := "IntegCityA" + suffix
	destination := "IntegCityB" + suffix
	seedTestTrip(t, db, source, destination, 30)

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	url := fmt.Sprintf("/api/routes/search?source=%s&destination=%s&type=bus", source, destination)
	req := httptest.NewRequest("GET", url, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var results []domain.RouteWithDetails
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(results) == 0 {
		t.Error("expected at least 1 search result, got 0")
	}
}

// TestCreateBooking_Integration books the last seat twice and verifies only
// the first request wins.
func TestCreateBooking_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	suffix := time.Now().Format("150405.000")
	_, scheduleID := seedTestTrip(t, db, "IntegCityC"+suffix, "IntegCityD"+suffix, 1)

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	body := fmt.Sprintf(`{
		"scheduleId": %d,
		"passengerName": "Jane Doe",
		"passengerPhone": "9876543210",
		"seatNumber": "1A",
		"totalAmount": 350
	}`, scheduleID)

	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201 for first booking, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for sold-out schedule, got %d", resp.StatusCode)
	}

	var seats int
	if err := db.Pool.QueryRow(context.Background(),
		`SELECT available_seats FROM schedules WHERE id = $1`, scheduleID).Scan(&seats); err != nil {
		t.Fatalf("read seats: %v", err)
	}
	if seats != 0 {
		t.Errorf("expected 0 seats left, got %d", seats)
	}
}
