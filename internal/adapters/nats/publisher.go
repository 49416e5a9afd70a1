package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/meetvasani/safar/internal/core/domain"
)

// Subjects published by the booking service. WebSocket clients subscribe to
// these through the raw connection relay.
const (
	SubjectBookingCreated = "safar.booking.created"
	subjectSeatsPrefix    = "safar.schedule.seats."
)

// SubjectSeats returns the per-schedule seat availability subject.
func SubjectSeats(scheduleID int) string {
	return subjectSeatsPrefix + strconv.Itoa(scheduleID)
}

// seatEvent is the wire shape of a seat-availability update.
type seatEvent struct {
	ScheduleID     int    `json:"scheduleId"`
	AvailableSeats int    `json:"availableSeats"`
	At             string `json:"at"`
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the booking stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      "SAFAR_BOOKINGS",
		Subjects:  []string{"safar.booking.>", "safar.schedule.>"},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectBookingCreated, data)
	return err
}

func (p *Publisher) PublishSeatAvailability(ctx context.Context, scheduleID, availableSeats int) error {
	data, err := json.Marshal(seatEvent{
		ScheduleID:     scheduleID,
		AvailableSeats: availableSeats,
		At:             time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectSeats(scheduleID), data)
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
