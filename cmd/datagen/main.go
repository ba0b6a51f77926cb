// datagen is the one-shot dataset preparation CLI. It runs the identity
// backfill and a generation pass against the configured database and exits;
// no broker connection is made, so no events are published.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hrpulse/hrpulse-backend/internal/hr/identity"
	"github.com/hrpulse/hrpulse-backend/internal/hr/service"
	"github.com/hrpulse/hrpulse-backend/internal/hr/store"
	"github.com/hrpulse/hrpulse-backend/pkg/config"
	"github.com/hrpulse/hrpulse-backend/pkg/database"
	"github.com/hrpulse/hrpulse-backend/pkg/logger"
)

func main() {
	seed := flag.Int64("seed", 0, "fixed random seed for a reproducible run (0 means random)")
	asOf := flag.String("as-of", "", "anchor date for trailing windows, YYYY-MM-DD (default: today)")
	skipBackfill := flag.Bool("skip-backfill", false, "leave placeholder identities untouched")
	backfillOnly := flag.Bool("backfill-only", false, "run the identity backfill and exit")
	flag.Parse()

	cfg, err := config.Load("datagen")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("datagen", cfg.Server.Environment)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	hrStore := store.NewPostgresStore(db)
	assigner := identity.NewAssigner(hrStore, cfg.Identity.EmailDomain, log)
	svc := service.NewGenerationService(hrStore, assigner, cfg.Generator, nil, log)

	ctx := context.Background()

	if *backfillOnly {
		result, err := svc.Backfill(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("identity backfill failed")
		}
		log.Info().
			Int("rewritten", result.Rewritten).
			Int("skipped", result.Skipped).
			Msg("identity backfill finished")
		return
	}

	req := service.RunRequest{SkipBackfill: *skipBackfill}
	if *seed != 0 {
		req.Seed = seed
	}
	if *asOf != "" {
		t, err := time.Parse("2006-01-02", *asOf)
		if err != nil {
			log.Fatal().Err(err).Str("as_of", *asOf).Msg("invalid as-of date")
		}
		req.AsOf = &t
	}

	result, err := svc.Run(ctx, req)
	if err != nil {
		log.Fatal().Err(err).Msg("generation run failed")
	}

	event := log.Info().Str("run_id", result.RunID)
	if result.Backfill != nil {
		event = event.Int("identities_rewritten", result.Backfill.Rewritten)
	}
	event.
		Int("reviews", result.Summary.Reviews).
		Int("trainings", result.Summary.Trainings).
		Int("benefits", result.Summary.Benefits).
		Int("skipped_reviews", result.Summary.SkippedReviews).
		Int("failed_employees", result.Summary.FailedEmployees).
		Msg("generation run finished")
}
