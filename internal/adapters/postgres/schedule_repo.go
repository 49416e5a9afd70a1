package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/meetvasani/safar/internal/core/domain"
)

// ScheduleRepo implements ports.ScheduleRepository.
type ScheduleRepo struct {
	db *DB
}

func NewScheduleRepo(db *DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

func (r *ScheduleRepo) Create(ctx context.Context, s *domain.Schedule) (*domain.Schedule, error) {
	created := *s
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO schedules (route_id, departure_time, arrival_time, fare_amount, available_seats, status, vehicle_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, s.RouteID, s.DepartureTime, s.ArrivalTime, s.FareAmount,
		s.AvailableSeats, s.Status, s.VehicleID).Scan(&created.ID)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id int) (*domain.Schedule, error) {
	var s domain.Schedule
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, route_id, departure_time, arrival_time, fare_amount, available_seats, status, vehicle_id
		FROM schedules WHERE id = $1
	`, id).Scan(&s.ID, &s.RouteID, &s.DepartureTime, &s.ArrivalTime,
		&s.FareAmount, &s.AvailableSeats, &s.Status, &s.VehicleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepo) ListByRoute(ctx context.Context, routeID int) ([]domain.Schedule, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, route_id, departure_time, arrival_time, fare_amount, available_seats, status, vehicle_id
		FROM schedules WHERE route_id = $1 ORDER BY departure_time
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(&s.ID, &s.RouteID, &s.DepartureTime, &s.ArrivalTime,
			&s.FareAmount, &s.AvailableSeats, &s.Status, &s.VehicleID); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// UpdateAvailability sets the absolute seat count on a schedule.
func (r *ScheduleRepo) UpdateAvailability(ctx context.Context, id, availableSeats int) (*domain.Schedule, error) {
	var s domain.Schedule
	err := r.db.Pool.QueryRow(ctx, `
		UPDATE schedules SET available_seats = $2
		WHERE id = $1
		RETURNING id, route_id, departure_time, arrival_time, fare_amount, available_seats, status, vehicle_id
	`, id, availableSeats).Scan(&s.ID, &s.RouteID, &s.DepartureTime, &s.ArrivalTime,
		&s.FareAmount, &s.AvailableSeats, &s.Status, &s.VehicleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
