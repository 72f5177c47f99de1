package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
)

// Service admits and cancels course bookings against a user's credit and a
// course's capacity. Both figures are derived from purchase and booking
// history on every call; nothing is stored as a running balance.
type Service interface {
	// BookCourse books courseID for userID.
	//
	// Checks run in a fixed order and the first failure wins:
	//   - ErrCourseNotFound if the course does not exist
	//   - ErrAlreadyBooked if the user already holds an active booking on it
	//   - ErrInsufficientCredit if active bookings >= purchased credits
	//   - ErrCourseFull if the course's active bookings >= max_participants
	//
	// The checks and the insert run in one transaction holding row locks on
	// the user and then the course, so concurrent calls cannot overdraw
	// credit or overfill a course.
	BookCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.CourseBooking, error)

	// CancelBooking cancels the user's active booking on courseID, freeing one
	// credit and one seat. Returns ErrBookingNotFound if there is no active
	// booking and ErrCancelFailed if the conditional update matched no row.
	CancelBooking(ctx context.Context, userID, courseID uuid.UUID) error

	// Summary reports the user's purchased, used and remaining credit.
	Summary(ctx context.Context, userID uuid.UUID) (*CreditSummary, error)
}

// CreditSummary is a point-in-time view of a user's credit.
type CreditSummary struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

var (
	// ErrCourseNotFound indicates the course does not exist.
	ErrCourseNotFound = errors.New("course not found")

	// ErrAlreadyBooked indicates the user already holds an active booking on the course.
	ErrAlreadyBooked = errors.New("course already booked")

	// ErrInsufficientCredit indicates every purchased credit is in use.
	ErrInsufficientCredit = errors.New("no remaining credit")

	// ErrCourseFull indicates the course has no free seat.
	ErrCourseFull = errors.New("course is full")

	// ErrBookingNotFound indicates there is no active booking to cancel.
	ErrBookingNotFound = errors.New("active booking not found")

	// ErrCancelFailed indicates the cancellation matched no row, typically
	// because a concurrent request cancelled it first.
	ErrCancelFailed = errors.New("cancellation failed")

	// ErrUserNotFound indicates the booking user no longer exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrStoreUnavailable wraps any persistence or transaction failure.
	ErrStoreUnavailable = errors.New("booking store unavailable")
)

// isLedgerError reports whether err is one of the outcomes callers branch on.
func isLedgerError(err error) bool {
	for _, target := range []error{
		ErrCourseNotFound,
		ErrAlreadyBooked,
		ErrInsufficientCredit,
		ErrCourseFull,
		ErrBookingNotFound,
		ErrCancelFailed,
		ErrUserNotFound,
		ErrStoreUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
