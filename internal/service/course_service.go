package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/livefit/livefit-api/internal/store"
)

// CourseService provides course administration for coaches and the public
// course catalogue.
type CourseService interface {
	// CreateCourse creates a course for the coach with user id coachUserID.
	// Returns store.ErrUserNotFound, ErrNotCoach or store.ErrSkillNotFound.
	CreateCourse(ctx context.Context, coachUserID uuid.UUID, details domain.CourseDetails) (*domain.Course, error)

	// UpdateCourse replaces the mutable fields of a course. The new capacity
	// may not drop below the number of active bookings.
	UpdateCourse(ctx context.Context, courseID uuid.UUID, details domain.CourseDetails) (*domain.Course, error)

	// ListOwnCourses returns the courses of the coach, or ErrNoCourses.
	ListOwnCourses(ctx context.Context, coachUserID uuid.UUID) ([]*domain.Course, error)

	// GetCourse returns a course with its coach and skill names.
	GetCourse(ctx context.Context, courseID uuid.UUID) (*domain.CourseListing, error)

	// ListCourses returns the public catalogue.
	ListCourses(ctx context.Context) ([]domain.CourseListing, error)
}

type courseServiceImpl struct {
	db       *sql.DB
	users    store.UserStore
	courses  store.CourseStore
	bookings store.BookingStore
	now      func() time.Time
	logger   *slog.Logger
}

// NewCourseService creates a CourseService.
func NewCourseService(
	db *sql.DB,
	users store.UserStore,
	courses store.CourseStore,
	bookings store.BookingStore,
	logger *slog.Logger,
) CourseService {
	if db == nil {
		panic("db cannot be nil")
	}
	if users == nil || courses == nil || bookings == nil {
		panic("stores cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &courseServiceImpl{
		db:       db,
		users:    users,
		courses:  courses,
		bookings: bookings,
		now:      time.Now,
		logger:   logger.With(slog.String("component", "course_service")),
	}
}

func (s *courseServiceImpl) CreateCourse(
	ctx context.Context,
	coachUserID uuid.UUID,
	details domain.CourseDetails,
) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	course, err := domain.NewCourse(coachUserID, details)
	if err != nil {
		return nil, invalid("course", err)
	}

	user, err := s.users.GetByID(ctx, coachUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course owner: %w", err)
	}
	if !user.IsCoach() {
		return nil, ErrNotCoach
	}

	if err := s.courses.Create(ctx, course); err != nil {
		if errors.Is(err, store.ErrSkillNotFound) {
			return nil, err
		}
		log.Error("failed to create course",
			slog.String("error", err.Error()),
			slog.String("user_id", coachUserID.String()))
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	log.Info("course created",
		slog.String("course_id", course.ID.String()),
		slog.String("user_id", coachUserID.String()))
	return course, nil
}

func (s *courseServiceImpl) UpdateCourse(
	ctx context.Context,
	courseID uuid.UUID,
	details domain.CourseDetails,
) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var course *domain.Course
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// The course lock is the one bookings take, so the active count
		// cannot grow between the check and the update.
		c, err := s.courses.WithTx(tx).LockByID(ctx, courseID)
		if err != nil {
			return err
		}

		c.Apply(details, s.now())
		if err := c.Validate(); err != nil {
			return invalid("course", err)
		}

		active, err := s.bookings.WithTx(tx).CountActiveByCourse(ctx, courseID)
		if err != nil {
			return err
		}
		if c.MaxParticipants < active {
			return ErrCapacityBelowBookings
		}

		if err := s.courses.WithTx(tx).Update(ctx, c); err != nil {
			return err
		}
		course = c
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) &&
			!errors.Is(err, ErrCapacityBelowBookings) &&
			!store.IsNotFoundError(err) {
			log.Error("failed to update course",
				slog.String("error", err.Error()),
				slog.String("course_id", courseID.String()))
		}
		return nil, err
	}

	log.Info("course updated", slog.String("course_id", courseID.String()))
	return course, nil
}

func (s *courseServiceImpl) ListOwnCourses(ctx context.Context, coachUserID uuid.UUID) ([]*domain.Course, error) {
	courses, err := s.courses.ListByCoachUser(ctx, coachUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}
	return courses, nil
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, courseID uuid.UUID) (*domain.CourseListing, error) {
	listing, err := s.courses.GetListing(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	return listing, nil
}

func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]domain.CourseListing, error) {
	listings, err := s.courses.ListListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return listings, nil
}
