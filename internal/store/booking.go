package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
)

// BookingStore defines persistence for course bookings. Credit use and course
// occupancy are never stored; they are counted from active rows.
type BookingStore interface {
	// Create inserts an active booking.
	// Returns ErrActiveBookingExists if the user already holds an active
	// booking on the course.
	Create(ctx context.Context, booking *domain.CourseBooking) error

	// GetActive returns the active booking for a user and course, or
	// ErrBookingNotFound.
	GetActive(ctx context.Context, userID, courseID uuid.UUID) (*domain.CourseBooking, error)

	// CountActiveByUser returns the number of credits the user has in use.
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// CountActiveByCourse returns the number of seats taken on a course.
	CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error)

	// CancelActive stamps cancelled_at on the active booking for a user and
	// course, only if it is still active, and reports the affected row count.
	CancelActive(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (int64, error)

	// ListByUser returns every booking of a user, active and cancelled,
	// joined with course and coach details.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserCourseBooking, error)

	// WithTx returns a new BookingStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) BookingStore
}
