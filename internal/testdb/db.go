package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/livefit/livefit-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// tables lists every application table, children first.
var tables = []string{
	"course_bookings",
	"courses",
	"coach_link_skills",
	"coaches",
	"credit_purchases",
	"credit_packages",
	"skills",
	"users",
}

// GetTestDatabaseURL returns the database URL for tests, checking
// DATABASE_URL and then LIVEFIT_TEST_DB_URL.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}
	return os.Getenv("LIVEFIT_TEST_DB_URL")
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// silentLogger discards goose output during tests.
type silentLogger struct{}

func (silentLogger) Printf(string, ...interface{}) {}
func (silentLogger) Fatalf(string, ...interface{}) {}

// GetTestDBWithT opens a connection to the test database and applies all
// migrations. The test is skipped when no database is configured and the
// connection is closed when the test finishes.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()
	if ShouldSkipDatabaseTest() {
		t.Skip("no test database configured: set DATABASE_URL or LIVEFIT_TEST_DB_URL")
	}

	db, err := sql.Open("pgx", GetTestDatabaseURL())
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	require.NoError(t, postgres.Migrate(context.Background(), db, silentLogger{}), "failed to migrate test database")
	return db
}

// WithTx runs fn inside a transaction that is rolled back afterwards.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Logf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// ResetTables truncates every application table.
func ResetTables(t *testing.T, db *sql.DB) {
	t.Helper()
	query := fmt.Sprintf("TRUNCATE %s CASCADE", strings.Join(tables, ", "))
	_, err := db.ExecContext(context.Background(), query)
	require.NoError(t, err, "failed to truncate tables")
}
