package http

import (
	"github.com/nats-io/nats.go"

	"github.com/meetvasani/safar/internal/adapters/postgres"
	"github.com/meetvasani/safar/internal/adapters/valkey"
	"github.com/meetvasani/safar/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Catalog   *usecases.CatalogService
	Search    *usecases.SearchService
	Schedules *usecases.ScheduleService
	Bookings  *usecases.BookingService
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache
}
