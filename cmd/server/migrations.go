package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/livefit/livefit-api/internal/config"
	"github.com/livefit/livefit-api/internal/platform/postgres"
	"github.com/pressly/goose/v3"
)

// migrationsSourceDir is where `-migrate create` writes new migration files,
// relative to the repository root.
const migrationsSourceDir = "internal/platform/postgres/migrations"

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger. It does not exit; the error is returned to
// main, which handles the exit.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// runMigrations executes a goose command against the embedded migrations.
func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string, args ...string) error {
	gooseLogger := &slogGooseLogger{logger: logger.With(slog.String("component", "migrations"))}

	if command == "create" {
		if len(args) == 0 || args[0] == "" {
			return errors.New("create requires a migration name")
		}
		goose.SetLogger(gooseLogger)
		return goose.Create(nil, migrationsSourceDir, args[0], "sql")
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", slog.Any("error", err))
		}
	}()

	if err := postgres.ConfigureGoose(gooseLogger); err != nil {
		return err
	}

	switch command {
	case "up":
		err = goose.UpContext(ctx, db, "migrations")
	case "down":
		err = goose.DownContext(ctx, db, "migrations")
	case "status":
		err = goose.StatusContext(ctx, db, "migrations")
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	logger.Info("Migration command completed", slog.String("command", command))
	return nil
}
