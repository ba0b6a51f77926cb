package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hrpulse/hrpulse-backend/internal/hr/analytics"
	"github.com/hrpulse/hrpulse-backend/internal/hr/events"
	"github.com/hrpulse/hrpulse-backend/internal/hr/handler"
	"github.com/hrpulse/hrpulse-backend/internal/hr/identity"
	"github.com/hrpulse/hrpulse-backend/internal/hr/service"
	"github.com/hrpulse/hrpulse-backend/internal/hr/store"
	"github.com/hrpulse/hrpulse-backend/pkg/config"
	"github.com/hrpulse/hrpulse-backend/pkg/database"
	"github.com/hrpulse/hrpulse-backend/pkg/httputil"
	"github.com/hrpulse/hrpulse-backend/pkg/logger"
	"github.com/hrpulse/hrpulse-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("analytics-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("analytics-service", cfg.Server.Environment)
	log.Info().Msg("starting Analytics Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publisher
	publisher, err := events.NewHREventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Initialize store and domain services
	hrStore := store.NewPostgresStore(db)
	assigner := identity.NewAssigner(hrStore, cfg.Identity.EmailDomain, log)
	engine := analytics.NewEngine(hrStore)
	generationService := service.NewGenerationService(hrStore, assigner, cfg.Generator, publisher, log)

	// Initialize handlers
	analyticsHandler := handler.NewAnalyticsHandler(engine, log)
	generationHandler := handler.NewGenerationHandler(generationService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "analytics-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API routes
	r.Route("/api/v1/hr", func(r chi.Router) {
		// Derived views
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/reviews/latest", analyticsHandler.LatestReviews)
			r.Get("/reviews/below-average", analyticsHandler.BelowDepartmentAverage)
			r.Get("/reviews/monthly-trend", analyticsHandler.MonthlyScoreTrend)
			r.Get("/reviewers/comparison", analyticsHandler.ReviewerComparisons)
			r.Get("/departments/score-ranking", analyticsHandler.DepartmentScoreRanking)
			r.Get("/departments/income-rollup", analyticsHandler.DepartmentIncomeRollup)
			r.Get("/tenure-bands", analyticsHandler.TenureBandSummary)
			r.Get("/coverage-gap", analyticsHandler.CoverageGap)
			r.Get("/engagement/running", analyticsHandler.RunningEngagement)
			r.Get("/surveys/engagement", analyticsHandler.SurveyEngagement)
			r.Get("/training/stale", analyticsHandler.WithoutRecentTraining)
		})

		// Dataset preparation (authenticated)
		r.Route("/generation", func(r chi.Router) {
			r.Use(httputil.Auth(&cfg.JWT))
			r.Post("/runs", generationHandler.Run)
			r.Post("/backfill", generationHandler.Backfill)
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
