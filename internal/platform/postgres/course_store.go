package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/livefit/livefit-api/internal/store"
)

// PostgresCourseStore implements store.CourseStore.
type PostgresCourseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCourseStore creates a new PostgreSQL implementation of the CourseStore interface.
func NewPostgresCourseStore(db store.DBTX, logger *slog.Logger) *PostgresCourseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCourseStore{
		db:     db,
		logger: logger.With(slog.String("component", "course_store")),
	}
}

var _ store.CourseStore = (*PostgresCourseStore)(nil)

// WithTx implements store.CourseStore.WithTx
func (s *PostgresCourseStore) WithTx(tx *sql.Tx) store.CourseStore {
	return &PostgresCourseStore{db: tx, logger: s.logger}
}

const courseColumns = `id, user_id, skill_id, name, description, start_at, end_at,
	max_participants, meeting_url, created_at, updated_at`

// Create implements store.CourseStore.Create
func (s *PostgresCourseStore) Create(ctx context.Context, c *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO courses (`+courseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		c.ID, c.UserID, c.SkillID, c.Name, c.Description, c.StartAt, c.EndAt,
		c.MaxParticipants, c.MeetingURL, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create course",
			slog.String("error", err.Error()),
			slog.String("course_id", c.ID.String()))
		if IsForeignKeyViolation(err) && ConstraintName(err) == "courses_skill_id_fkey" {
			return store.ErrSkillNotFound
		}
		return MapError(err)
	}

	log.Info("course created",
		slog.String("course_id", c.ID.String()),
		slog.String("coach_user_id", c.UserID.String()))
	return nil
}

// Update implements store.CourseStore.Update
func (s *PostgresCourseStore) Update(ctx context.Context, c *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE courses
		SET skill_id = $1, name = $2, description = $3, start_at = $4, end_at = $5,
			max_participants = $6, meeting_url = $7, updated_at = $8
		WHERE id = $9
	`,
		c.SkillID, c.Name, c.Description, c.StartAt, c.EndAt,
		c.MaxParticipants, c.MeetingURL, c.UpdatedAt, c.ID,
	)
	if err != nil {
		log.Error("failed to update course",
			slog.String("error", err.Error()),
			slog.String("course_id", c.ID.String()))
		if IsForeignKeyViolation(err) {
			return store.ErrSkillNotFound
		}
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrCourseNotFound); err != nil {
		return err
	}

	log.Info("course updated", slog.String("course_id", c.ID.String()))
	return nil
}

// GetByID implements store.CourseStore.GetByID
func (s *PostgresCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return s.getOne(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)
}

// LockByID implements store.CourseStore.LockByID
func (s *PostgresCourseStore) LockByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return s.getOne(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1 FOR UPDATE`, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*domain.Course, error) {
	var c domain.Course
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.SkillID,
		&c.Name,
		&c.Description,
		&c.StartAt,
		&c.EndAt,
		&c.MaxParticipants,
		&c.MeetingURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresCourseStore) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.Course, error) {
	c, err := scanCourse(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCourseNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get course",
			slog.String("error", err.Error()),
			slog.String("course_id", id.String()))
		return nil, MapError(err)
	}
	return c, nil
}

const listingQuery = `
	SELECT c.id, u.name, sk.name, c.name, c.description, c.start_at, c.end_at, c.max_participants
	FROM courses c
	JOIN users u ON u.id = c.user_id
	JOIN skills sk ON sk.id = c.skill_id
`

func scanListing(row rowScanner) (domain.CourseListing, error) {
	var l domain.CourseListing
	err := row.Scan(
		&l.ID,
		&l.CoachName,
		&l.SkillName,
		&l.Name,
		&l.Description,
		&l.StartAt,
		&l.EndAt,
		&l.MaxParticipants,
	)
	return l, err
}

// ListListings implements store.CourseStore.ListListings
func (s *PostgresCourseStore) ListListings(ctx context.Context) ([]domain.CourseListing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listingQuery+` ORDER BY c.start_at`)
	if err != nil {
		log.Error("failed to list courses", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	listings := make([]domain.CourseListing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, MapError(err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return listings, nil
}

// GetListing implements store.CourseStore.GetListing
func (s *PostgresCourseStore) GetListing(ctx context.Context, id uuid.UUID) (*domain.CourseListing, error) {
	l, err := scanListing(s.db.QueryRowContext(ctx, listingQuery+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCourseNotFound
		}
		return nil, MapError(err)
	}
	return &l, nil
}

// ListByCoachUser implements store.CourseStore.ListByCoachUser
func (s *PostgresCourseStore) ListByCoachUser(ctx context.Context, userID uuid.UUID) ([]*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE user_id = $1 ORDER BY start_at`,
		userID)
	if err != nil {
		log.Error("failed to list coach courses",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	courses := make([]*domain.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, MapError(err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return courses, nil
}
