package main

import (
	"context"
	"log"
	"os"

	"github.com/meetvasani/safar/internal/adapters/postgres"
	"github.com/meetvasani/safar/internal/pkg/config"
	"github.com/meetvasani/safar/internal/pkg/logging"
	"github.com/meetvasani/safar/internal/seed"
)

// Standalone seeder for environments where the API runs with seed.enabled
// turned off (for example when several replicas share one database).
func main() {
	cfg, err := config.Load("safar-seed")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("safar-seed", logLevel, "text")

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	err = seed.Ensure(ctx, seed.Repositories{
		Providers: postgres.NewProviderRepo(db),
		Routes:    postgres.NewRouteRepo(db),
		Schedules: postgres.NewScheduleRepo(db),
		Popular:   postgres.NewPopularRouteRepo(db),
		Offers:    postgres.NewOfferRepo(db),
	})
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	log.Println("seed complete")
}
