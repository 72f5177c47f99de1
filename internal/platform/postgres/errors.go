package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/livefit/livefit-api/internal/store"
)

// SQLSTATE codes the stores react to.
const (
	// integrity constraint violations (class 23)
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"

	// lock contention on the ledger rows (classes 40 and 55)
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
	lockNotAvailableCode     = "55P03"
)

// sqlStateClass describes how one SQLSTATE is surfaced to the store layer.
type sqlStateClass struct {
	sentinel error
	// label prefixes the wrapped message; empty means the bare sentinel.
	label string
}

var sqlStateClasses = map[string]sqlStateClass{
	uniqueViolationCode:      {sentinel: store.ErrDuplicate},
	foreignKeyViolationCode:  {sentinel: store.ErrInvalidEntity, label: "foreign key violation"},
	checkViolationCode:       {sentinel: store.ErrInvalidEntity, label: "check constraint violation"},
	notNullViolationCode:     {sentinel: store.ErrInvalidEntity, label: "not null violation"},
	serializationFailureCode: {sentinel: store.ErrTransactionFailed, label: "serialization failure"},
	deadlockDetectedCode:     {sentinel: store.ErrTransactionFailed, label: "deadlock detected"},
	lockNotAvailableCode:     {sentinel: store.ErrTransactionFailed, label: "lock not available"},
}

// constraintErrors names the unique constraints that have their own sentinel.
// Keep in sync with the migrations.
var constraintErrors = map[string]error{
	"users_email_key":          store.ErrEmailExists,
	"skills_name_key":          store.ErrSkillExists,
	"credit_packages_name_key": store.ErrCreditPackageExists,
	"coaches_user_id_key":      store.ErrCoachExists,
	ActiveBookingIndex:         store.ErrActiveBookingExists,
}

// asPgError unwraps err to the driver's error type.
func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// MapError translates a driver error into the store's sentinel errors. The
// original error stays in the message for logging but is not wrapped, so
// callers only ever match on store sentinels.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	pgErr, ok := asPgError(err)
	if !ok {
		return err
	}

	// a named unique constraint beats the generic duplicate error
	if pgErr.Code == uniqueViolationCode {
		if specific, found := constraintErrors[pgErr.ConstraintName]; found {
			return fmt.Errorf("%w: %v", specific, err)
		}
	}

	class, known := sqlStateClasses[pgErr.Code]
	if !known {
		return err
	}
	if class.label == "" {
		return fmt.Errorf("%w: %v", class.sentinel, err)
	}

	// not-null violations name the column, everything else the constraint
	subject := pgErr.ConstraintName
	if pgErr.Code == notNullViolationCode {
		subject = pgErr.ColumnName
	}
	return fmt.Errorf("%w: %s (%s): %v", class.sentinel, class.label, subject, err)
}

func hasCode(err error, code string) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == code
}

// IsUniqueViolation reports a unique constraint or unique index violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolationCode)
}

// IsForeignKeyViolation reports a foreign key violation, which on delete
// means the row is still referenced.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolationCode)
}

// ConstraintName returns the violated constraint or index name, if any.
func ConstraintName(err error) string {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}

// CheckRowsAffected turns a zero-row write into notFound (store.ErrNotFound
// when nil). Conditional updates such as booking cancellation rely on it.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if notFound == nil {
		return store.ErrNotFound
	}
	return notFound
}

// MapUniqueViolation maps a unique violation to specificError
// (store.ErrDuplicate when nil) and returns any other error unchanged.
func MapUniqueViolation(err error, specificError error) error {
	if !IsUniqueViolation(err) {
		return err
	}
	if specificError == nil {
		specificError = store.ErrDuplicate
	}
	return fmt.Errorf("%w: %v", specificError, err)
}
