// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles query
// execution, row locking for the booking ledger, mapping of Postgres error
// codes to store errors, and the embedded goose schema migrations.
package postgres
