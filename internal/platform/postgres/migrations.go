package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// MigrationsTable is the goose version table name.
const MigrationsTable = "schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsFS exposes the embedded SQL migrations.
func MigrationsFS() embed.FS {
	return migrationsFS
}

// ConfigureGoose points goose at the embedded migrations and Postgres dialect.
func ConfigureGoose(logger goose.Logger) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetTableName(MigrationsTable)
	if logger != nil {
		goose.SetLogger(logger)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, db *sql.DB, logger goose.Logger) error {
	if err := ConfigureGoose(logger); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
