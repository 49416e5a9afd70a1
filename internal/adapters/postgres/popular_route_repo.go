package postgres

import (
	"context"

	"github.com/meetvasani/safar/internal/core/domain"
)

// PopularRouteRepo implements ports.PopularRouteRepository.
type PopularRouteRepo struct {
	db *DB
}

func NewPopularRouteRepo(db *DB) *PopularRouteRepo { return &PopularRouteRepo{db: db} }

func (r *PopularRouteRepo) Create(ctx context.Context, pr *domain.PopularRoute) (*domain.PopularRoute, error) {
	created := *pr
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO popular_routes (route_id, schedule_id, count)
		VALUES ($1, $2, $3)
		RETURNING id
	`, pr.RouteID, pr.ScheduleID, pr.Count).Scan(&created.ID)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *PopularRouteRepo) List(ctx context.Context) ([]domain.PopularRoute, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, route_id, schedule_id, count
		FROM popular_routes ORDER BY count DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var popular []domain.PopularRoute
	for rows.Next() {
		var pr domain.PopularRoute
		if err := rows.Scan(&pr.ID, &pr.RouteID, &pr.ScheduleID, &pr.Count); err != nil {
			return nil, err
		}
		popular = append(popular, pr)
	}
	return popular, rows.Err()
}
