package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/no0bAuntor/vocab-app/internal/api"
	"github.com/no0bAuntor/vocab-app/internal/config"
	"github.com/no0bAuntor/vocab-app/internal/db"
	"github.com/no0bAuntor/vocab-app/internal/logger"
	"github.com/no0bAuntor/vocab-app/internal/repository/sqlite"
	"github.com/no0bAuntor/vocab-app/internal/services"
	"github.com/no0bAuntor/vocab-app/internal/wordbank"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("VocabApp Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("wordbank_path=%s", cfg.WordbankPath)
	log.Debug("wordbank_reload_minutes=%d", cfg.WordbankReloadMinutes)
	log.Debug("history_page_size=%d", cfg.HistoryPageSize)
	log.Debug("leaderboard_limit=%d", cfg.LeaderboardLimit)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Load wordbank content
	bank := wordbank.New(cfg.WordbankPath)
	if err := bank.Load(); err != nil {
		// Content is optional; the quiz core runs on the default size without it.
		log.Warn("failed to load wordbank: %v", err)
	}

	// Periodic wordbank reload so content edits go live without a restart
	scheduler := gocron.NewScheduler(time.UTC)
	if cfg.WordbankPath != "" && cfg.WordbankReloadMinutes > 0 {
		_, err := scheduler.Every(cfg.WordbankReloadMinutes).Minutes().Do(func() {
			if err := bank.Load(); err != nil {
				log.Warn("wordbank reload failed: %v", err)
			}
		})
		if err != nil {
			log.Error("failed to schedule wordbank reload: %v", err)
			os.Exit(1)
		}
		scheduler.StartAsync()
		log.Info("wordbank reload scheduled every %d minutes", cfg.WordbankReloadMinutes)
	}

	// Initialize repositories and services
	progressRepo := sqlite.NewProgressRepository(database.DB)
	leaderboardRepo := sqlite.NewLeaderboardRepository(database.DB)
	progressService := services.NewProgressService(progressRepo, leaderboardRepo)

	srv := &api.Server{
		DB:               database,
		ProgressService:  progressService,
		Wordbank:         bank,
		HistoryPageSize:  cfg.HistoryPageSize,
		LeaderboardLimit: cfg.LeaderboardLimit,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping wordbank reload scheduler")
	scheduler.Stop()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("VocabApp Server Stopped")
	log.Info("===========================================")
}
