package postgres

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

// ActiveBookingIndex is the partial unique index that allows at most one
// active booking per user and course.
const ActiveBookingIndex = "uq_course_bookings_active"

// PostgresBookingStore implements store.BookingStore.
type PostgresBookingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookingStore creates a new PostgreSQL implementation of the BookingStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
func NewPostgresBookingStore(db store.DBTX, logger *slog.Logger) *PostgresBookingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBookingStore{
		db:     db,
		logger: logger.With(slog.String("component", "booking_store")),
	}
}

// Ensure PostgresBookingStore implements store.BookingStore interface
var _ store.BookingStore = (*PostgresBookingStore)(nil)

// WithTx implements store.BookingStore.WithTx
func (s *PostgresBookingStore) WithTx(tx *sql.Tx) store.BookingStore {
	return &PostgresBookingStore{db: tx, logger: s.logger}
}

// Create implements store.BookingStore.Create
func (s *PostgresBookingStore) Create(ctx context.Context, b *domain.CourseBooking) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO course_bookings (id, user_id, course_id, booking_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, b.ID, b.UserID, b.CourseID, b.BookingAt, b.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("active booking already exists",
				slog.String("user_id", b.UserID.String()),
				slog.String("course_id", b.CourseID.String()),
				slog.String("constraint", ConstraintName(err)))
			return MapUniqueViolation(err, store.ErrActiveBookingExists)
		}
		log.Error("failed to create booking",
			slog.String("error", err.Error()),
			slog.String("user_id", b.UserID.String()),
			slog.String("course_id", b.CourseID.String()))
		return MapError(err)
	}

	log.Debug("booking created",
		slog.String("booking_id", b.ID.String()),
		slog.String("user_id", b.UserID.String()),
		slog.String("course_id", b.CourseID.String()))
	return nil
}

// GetActive implements store.BookingStore.GetActive
func (s *PostgresBookingStore) GetActive(ctx context.Context, userID, courseID uuid.UUID) (*domain.CourseBooking, error) {
	var b domain.CourseBooking
	var joinAt, leaveAt, cancelledAt sql.NullTime
	var reason sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, course_id, booking_at, join_at, leave_at,
			cancelled_at, cancellation_reason, created_at
		FROM course_bookings
		WHERE user_id = $1 AND course_id = $2 AND cancelled_at IS NULL
	`, userID, courseID).Scan(
		&b.ID,
		&b.UserID,
		&b.CourseID,
		&b.BookingAt,
		&joinAt,
		&leaveAt,
		&cancelledAt,
		&reason,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBookingNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get active booking",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("course_id", courseID.String()))
		return nil, MapError(err)
	}

	b.JoinAt = nullTimePtr(joinAt)
	b.LeaveAt = nullTimePtr(leaveAt)
	b.CancelledAt = nullTimePtr(cancelledAt)
	if reason.Valid {
		b.CancellationReason = &reason.String
	}
	return &b, nil
}

// CountActiveByUser implements store.BookingStore.CountActiveByUser
func (s *PostgresBookingStore) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.count(ctx,
		`SELECT COUNT(*) FROM course_bookings WHERE user_id = $1 AND cancelled_at IS NULL`,
		userID)
}

// CountActiveByCourse implements store.BookingStore.CountActiveByCourse
func (s *PostgresBookingStore) CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	return s.count(ctx,
		`SELECT COUNT(*) FROM course_bookings WHERE course_id = $1 AND cancelled_at IS NULL`,
		courseID)
}

func (s *PostgresBookingStore) count(ctx context.Context, query string, id uuid.UUID) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count active bookings",
			slog.String("error", err.Error()),
			slog.String("id", id.String()))
		return 0, MapError(err)
	}
	return n, nil
}

// CancelActive implements store.BookingStore.CancelActive.
// The cancelled_at IS NULL guard makes a concurrent double cancel affect zero rows.
func (s *PostgresBookingStore) CancelActive(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE course_bookings
		SET cancelled_at = $3
		WHERE user_id = $1 AND course_id = $2 AND cancelled_at IS NULL
	`, userID, courseID, at.UTC())
	if err != nil {
		log.Error("failed to cancel booking",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("course_id", courseID.String()))
		return 0, MapError(err)
	}

	// Zero rows means someone else cancelled first; the caller decides what
	// that means, so the count is returned rather than an error.
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// ListByUser implements store.BookingStore.ListByUser
func (s *PostgresBookingStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserCourseBooking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, u.name, c.start_at, c.end_at, c.meeting_url, b.cancelled_at
		FROM course_bookings b
		JOIN courses c ON c.id = b.course_id
		JOIN users u ON u.id = c.user_id
		WHERE b.user_id = $1
		ORDER BY b.booking_at DESC
	`, userID)
	if err != nil {
		log.Error("failed to list bookings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	bookings := make([]domain.UserCourseBooking, 0)
	for rows.Next() {
		var ub domain.UserCourseBooking
		var cancelledAt sql.NullTime
		if err := rows.Scan(
			&ub.CourseID,
			&ub.Name,
			&ub.CoachName,
			&ub.StartAt,
			&ub.EndAt,
			&ub.MeetingURL,
			&cancelledAt,
		); err != nil {
			return nil, MapError(err)
		}
		ub.Status = domain.BookingStatusActive
		if cancelledAt.Valid {
			ub.Status = domain.BookingStatusCancelled
		}
		bookings = append(bookings, ub)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return bookings, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
