// Package testdb provides utilities for database integration tests.
//
// Tests obtain a migrated connection with GetTestDBWithT, which skips the
// test when no database URL is configured. WithTx runs a test body inside a
// transaction that is always rolled back, so tests do not see each other's
// data. Tests that need committed rows visible to several connections, such
// as concurrency tests, call ResetTables instead.
//
// # Basic Usage
//
//	func TestSomething(t *testing.T) {
//		db := testdb.GetTestDBWithT(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			userStore := postgres.NewPostgresUserStore(tx, nil)
//			// ...
//		})
//	}
//
// The database URL is read from DATABASE_URL, then LIVEFIT_TEST_DB_URL.
package testdb
