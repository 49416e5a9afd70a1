package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meetvasani/safar/internal/core/domain"
)

// BookingRepo implements ports.BookingRepository.
type BookingRepo struct {
	db *DB
}

func NewBookingRepo(db *DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, user_id, schedule_id, booking_date, passenger_name, passenger_phone,
	passenger_email, seat_number, total_amount, status, payment_method`

// Create reserves one seat and inserts the booking in a single transaction.
// The decrement is guarded by available_seats > 0 and status = 'active', so
// the last seat can only be taken once; losing the race yields
// domain.ErrSeatsUnavailable and leaves nothing persisted.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE schedules SET available_seats = available_seats - 1
		WHERE id = $1 AND available_seats > 0 AND status = $2
	`, b.ScheduleID, domain.ScheduleActive)
	if err != nil {
		return nil, fmt.Errorf("reserve seat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrSeatsUnavailable
	}

	created := *b
	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (user_id, schedule_id, passenger_name, passenger_phone,
			passenger_email, seat_number, total_amount, status, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, booking_date
	`, b.UserID, b.ScheduleID, b.PassengerName, b.PassengerPhone,
		b.PassengerEmail, b.SeatNumber, b.TotalAmount, b.Status, b.PaymentMethod,
	).Scan(&created.ID, &created.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &created, nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id int) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.Pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id,
	).Scan(&b.ID, &b.UserID, &b.ScheduleID, &b.BookingDate, &b.PassengerName,
		&b.PassengerPhone, &b.PassengerEmail, &b.SeatNumber, &b.TotalAmount,
		&b.Status, &b.PaymentMethod)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY booking_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *BookingRepo) ListByUser(ctx context.Context, userID int) ([]domain.Booking, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY booking_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.ScheduleID, &b.BookingDate,
			&b.PassengerName, &b.PassengerPhone, &b.PassengerEmail, &b.SeatNumber,
			&b.TotalAmount, &b.Status, &b.PaymentMethod); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
