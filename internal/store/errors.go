package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrUserNotFound, ErrCourseNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrReferenced is returned when a delete is blocked because other rows
	// still point at the entity (e.g., a credit package with purchases).
	ErrReferenced = errors.New("entity is referenced by other entities")

	// ErrUpdateFailed is returned when an update operation fails, for example
	// because the entity does not exist or the update violates constraints.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a database transaction fails
	// to begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	ErrUserNotFound          = fmt.Errorf("%w: user", ErrNotFound)
	ErrSkillNotFound         = fmt.Errorf("%w: skill", ErrNotFound)
	ErrCreditPackageNotFound = fmt.Errorf("%w: credit package", ErrNotFound)
	ErrCoachNotFound         = fmt.Errorf("%w: coach", ErrNotFound)
	ErrCourseNotFound        = fmt.Errorf("%w: course", ErrNotFound)
	ErrBookingNotFound       = fmt.Errorf("%w: course booking", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists         = fmt.Errorf("%w: email", ErrDuplicate)
	ErrSkillExists         = fmt.Errorf("%w: skill name", ErrDuplicate)
	ErrCreditPackageExists = fmt.Errorf("%w: credit package name", ErrDuplicate)
	ErrCoachExists         = fmt.Errorf("%w: coach profile", ErrDuplicate)

	// ErrActiveBookingExists is returned when the partial unique index on
	// active bookings rejects a second active booking for the same user and course.
	ErrActiveBookingExists = fmt.Errorf("%w: active course booking", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// All entity-specific variants wrap ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "course_booking")
	Operation string // The operation that failed (e.g., "create", "cancel")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
