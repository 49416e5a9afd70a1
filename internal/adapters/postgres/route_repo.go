package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/meetvasani/safar/internal/core/domain"
)

// RouteRepo implements ports.RouteRepository.
type RouteRepo struct {
	db *DB
}

func NewRouteRepo(db *DB) *RouteRepo { return &RouteRepo{db: db} }

func (r *RouteRepo) Create(ctx context.Context, route *domain.Route) (*domain.Route, error) {
	created := *route
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO routes (provider_id, source, destination, duration, distance, stops_count, route_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, route.ProviderID, route.Source, route.Destination, route.Duration,
		route.Distance, route.StopsCount, route.RouteNumber).Scan(&created.ID)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *RouteRepo) GetByID(ctx context.Context, id int) (*domain.Route, error) {
	var rt domain.Route
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, provider_id, source, destination, duration, distance, stops_count, route_number
		FROM routes WHERE id = $1
	`, id).Scan(&rt.ID, &rt.ProviderID, &rt.Source, &rt.Destination,
		&rt.Duration, &rt.Distance, &rt.StopsCount, &rt.RouteNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RouteRepo) List(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, provider_id, source, destination, duration, distance, stops_count, route_number
		FROM routes ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoutes(rows)
}

func (r *RouteRepo) ListByProvider(ctx context.Context, providerID int) ([]domain.Route, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, provider_id, source, destination, duration, distance, stops_count, route_number
		FROM routes WHERE provider_id = $1 ORDER BY id
	`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoutes(rows)
}

// FindByEndpoints matches source and destination exactly (case-sensitive)
// and restricts to providers of the given transport type.
func (r *RouteRepo) FindByEndpoints(ctx context.Context, source, destination string, t domain.TransportType) ([]domain.Route, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT r.id, r.provider_id, r.source, r.destination, r.duration, r.distance, r.stops_count, r.route_number
		FROM routes r
		JOIN providers p ON p.id = r.provider_id
		WHERE r.source = $1 AND r.destination = $2 AND p.type = $3
		ORDER BY r.id
	`, source, destination, string(t))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoutes(rows)
}

func scanRoutes(rows pgx.Rows) ([]domain.Route, error) {
	var routes []domain.Route
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(&rt.ID, &rt.ProviderID, &rt.Source, &rt.Destination,
			&rt.Duration, &rt.Distance, &rt.StopsCount, &rt.RouteNumber); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}
