package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mana-gg/arena/internal/admin"
	"github.com/mana-gg/arena/internal/appwrite"
	"github.com/mana-gg/arena/internal/auth"
	"github.com/mana-gg/arena/internal/config"
	"github.com/mana-gg/arena/internal/database"
	server "github.com/mana-gg/arena/internal/http"
	"github.com/mana-gg/arena/internal/metrics"
	"github.com/mana-gg/arena/internal/mirror"
	"github.com/mana-gg/arena/internal/notifier/slack"
	"github.com/mana-gg/arena/internal/pubsub"
	"github.com/mana-gg/arena/internal/refund"
	"github.com/mana-gg/arena/internal/registration"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	pubsubClient := pubsub.New(cfg.ProjectID)

	backend := appwrite.NewClient(appwrite.Config{
		Endpoint:     cfg.Appwrite.Endpoint,
		ProjectID:    cfg.Appwrite.ProjectID,
		APIKey:       cfg.Appwrite.APIKey,
		DatabaseID:   cfg.Appwrite.DatabaseID,
		CollectionID: cfg.Appwrite.CollectionID,
		BucketID:     cfg.Appwrite.BucketID,
	})
	facade := auth.New(backend, pubsubClient, metricsSvc, cfg.WelcomeBonus)

	registrationSvc := registration.New(facade, pubsubClient, notifier, metricsSvc)
	refundStore := refund.New(db)
	refundProcessor := refund.NewProcessor(refundStore, facade, notifier, metricsSvc, pubsubClient)
	mirrorStore := mirror.New(db)
	admins := admin.NewTable(cfg.Operators)

	s := server.NewServer(
		facade,
		registrationSvc,
		refundStore,
		refundProcessor,
		mirrorStore,
		admins,
		metricsSvc,
		metricsHandler,
		notifier,
		cfg,
		pubsubClient,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
