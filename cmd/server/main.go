package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"gigcalendar/config"
	_ "gigcalendar/docs"
	"gigcalendar/internal/adapters/auth"
	"gigcalendar/internal/adapters/gigs"
	deliveryhttp "gigcalendar/internal/delivery/http"
	"gigcalendar/internal/delivery/http/middleware"
	"gigcalendar/internal/domain"
	"gigcalendar/internal/repository/postgres"
	"gigcalendar/internal/services"
)

// @title Gig Calendar API
// @version 1.0
// @description Week-grid schedule rendering for band gig bookings.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := config.NewLogger()

	events := gigs.NewEventsClient(cfg.EventServiceURL, nil)

	var applications domain.ApplicationQueryService
	switch cfg.ApplicationsSource {
	case config.ApplicationsSourcePostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		applications = postgres.NewApplicationRepository(db)
	default:
		applications = gigs.NewApplicationsClient(cfg.ApplicationServiceURL, nil)
	}

	calendar := services.NewCalendarService(events, applications, logger, cfg.UpstreamTimeout, time.Now)

	cache := services.NewRenderCache()
	if len(cfg.WarmBandIDs) > 0 {
		warmer := services.NewWeekWarmer(calendar, cache, logger, cfg.WarmBandIDs, time.Now)
		if err := warmer.Start(cfg.WarmSchedule); err != nil {
			logger.Error("failed to start week warmer", "error", err)
			os.Exit(1)
		}
		defer warmer.Stop()
	}

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	controller := deliveryhttp.NewCalendarController(calendar, cache, logger)

	handler := middleware.Logging(logger, deliveryhttp.NewRouter(controller, verifier))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("server stopped")
}
