package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
)

// CourseStore defines persistence for courses.
type CourseStore interface {
	// Create saves a new course.
	Create(ctx context.Context, course *domain.Course) error

	// Update saves the mutable fields of a course.
	// Returns ErrCourseNotFound if no row was updated.
	Update(ctx context.Context, course *domain.Course) error

	// GetByID returns ErrCourseNotFound if the course does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// LockByID retrieves a course and holds a row lock until the surrounding
	// transaction ends. Only meaningful on a store returned by WithTx.
	LockByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// ListListings returns every course with coach and skill names.
	ListListings(ctx context.Context) ([]domain.CourseListing, error)

	// GetListing returns one course with coach and skill names.
	GetListing(ctx context.Context, id uuid.UUID) (*domain.CourseListing, error)

	// ListByCoachUser returns the courses offered by the coach with this user id.
	ListByCoachUser(ctx context.Context, userID uuid.UUID) ([]*domain.Course, error)

	// WithTx returns a new CourseStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CourseStore
}
