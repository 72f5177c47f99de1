package service

import (
	"errors"

	"github.com/livefit/livefit-api/internal/domain"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent conditions that callers check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Store sentinels (store.ErrEmailExists, store.ErrSkillNotFound, ...) pass through unchanged
// 3. Input problems are wrapped in domain.ValidationError so they satisfy errors.Is(err, domain.ErrValidation)
// 4. The API layer maps service errors to HTTP status codes and messages
var (
	// ErrInvalidCredentials indicates an unknown email or a wrong password at login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNameUnchanged indicates a profile update that would not change the name.
	ErrNameUnchanged = errors.New("user name unchanged")

	// ErrUserUpdateFailed indicates a profile update touched no row.
	ErrUserUpdateFailed = errors.New("failed to update user")

	// ErrPasswordUnchanged indicates the new password equals the current one.
	ErrPasswordUnchanged = errors.New("new password equals current password")

	// ErrPasswordConfirmMismatch indicates the confirmation differs from the new password.
	ErrPasswordConfirmMismatch = errors.New("new password confirmation does not match")

	// ErrWrongPassword indicates the current password supplied for a change is wrong.
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrPasswordUpdateFailed indicates a password change touched no row.
	ErrPasswordUpdateFailed = errors.New("failed to update password")

	// ErrNoPurchases indicates a user has never bought a credit package.
	ErrNoPurchases = errors.New("no purchase records")

	// ErrNoBookings indicates a user has never booked a course.
	ErrNoBookings = errors.New("no booking records")

	// ErrAlreadyCoach indicates the user has already been promoted.
	ErrAlreadyCoach = errors.New("user is already a coach")

	// ErrNotCoach indicates the user does not hold the COACH role.
	ErrNotCoach = errors.New("user is not a coach")

	// ErrNoCourses indicates a coach offers no courses.
	ErrNoCourses = errors.New("no courses for coach")

	// ErrCapacityBelowBookings indicates a course update would set
	// max_participants below the number of active bookings.
	ErrCapacityBelowBookings = errors.New("max participants below active bookings")

	// ErrUploadDisabled indicates no object storage bucket is configured.
	ErrUploadDisabled = errors.New("image upload is not configured")

	// ErrUnsupportedImage indicates an upload that is not a JPEG or PNG image.
	ErrUnsupportedImage = errors.New("unsupported image type")

	// ErrImageTooLarge indicates an upload over the configured size limit.
	ErrImageTooLarge = errors.New("image exceeds size limit")
)

// invalid wraps a domain rule violation so callers can match ErrValidation
// as well as the specific rule.
func invalid(field string, err error) error {
	return domain.NewValidationError(field, err.Error(), err)
}
