package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/api"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/config"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/console"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/repository/postgres"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Connect and migrate the schema
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	repos := postgres.NewRepositories(db)

	con := console.New(logger)
	registry := server.NewRegistry(con)
	listener := server.NewListener(cfg.ListenAddr, repos, registry, con, cfg.HeartbeatWarn)

	// Terminal-facing TCP server
	go func() {
		if err := listener.Start(); err != nil {
			log.Fatalf("failed to start listener: %v", err)
		}
	}()

	// Operator-facing HTTP server
	router := api.NewRouter(repos, registry, con)
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("admin API starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start admin API: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Closing the listen socket drives the accept loop through its
	// shutdown path; Stop returns once the socket is closed, the drain
	// happens inside Start.
	if err := listener.Stop(); err != nil {
		logger.Warn("listener stop", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("admin API forced to shutdown: %v", err)
	}

	logger.Info("server stopped")
}
