// Package main implements the entry point for the LiveFit API server, which
// serves accounts, the credit catalogue, coaches, courses and course
// bookings.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/livefit/livefit-api/internal/config"
	"github.com/livefit/livefit-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status, create NAME) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("uploads_enabled", cfg.Storage.Enabled()),
		slog.Bool("amqp_enabled", cfg.Events.AMQPURL != ""))

	ctx := context.Background()

	if *migrateCmd != "" {
		if err := runMigrations(ctx, cfg, l, *migrateCmd, flag.Args()...); err != nil {
			l.Error("Migration failed", slog.String("command", *migrateCmd), slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		l.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	app, err := newApplication(ctx, cfg, l, db)
	if err != nil {
		_ = db.Close()
		l.Error("Failed to initialize application", slog.Any("error", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		l.Error("Server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}
