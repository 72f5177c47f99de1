package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/livefit/livefit-api/internal/store"
)

// PostgresCoachStore implements store.CoachStore.
type PostgresCoachStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCoachStore creates a new PostgreSQL implementation of the CoachStore interface.
func NewPostgresCoachStore(db store.DBTX, logger *slog.Logger) *PostgresCoachStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCoachStore{
		db:     db,
		logger: logger.With(slog.String("component", "coach_store")),
	}
}

var _ store.CoachStore = (*PostgresCoachStore)(nil)

// WithTx implements store.CoachStore.WithTx
func (s *PostgresCoachStore) WithTx(tx *sql.Tx) store.CoachStore {
	return &PostgresCoachStore{db: tx, logger: s.logger}
}

// Create implements store.CoachStore.Create
func (s *PostgresCoachStore) Create(ctx context.Context, c *domain.Coach) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO coaches (id, user_id, experience_years, description, profile_image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.UserID, c.ExperienceYears, c.Description, c.ProfileImageURL, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrCoachExists)
		}
		log.Error("failed to create coach",
			slog.String("error", err.Error()),
			slog.String("user_id", c.UserID.String()))
		return MapError(err)
	}

	log.Info("coach created",
		slog.String("coach_id", c.ID.String()),
		slog.String("user_id", c.UserID.String()))
	return nil
}

const coachColumns = `id, user_id, experience_years, description, profile_image_url, created_at, updated_at`

// GetByID implements store.CoachStore.GetByID
func (s *PostgresCoachStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Coach, error) {
	return s.getOne(ctx, `SELECT `+coachColumns+` FROM coaches WHERE id = $1`, id)
}

// GetByUserID implements store.CoachStore.GetByUserID
func (s *PostgresCoachStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Coach, error) {
	return s.getOne(ctx, `SELECT `+coachColumns+` FROM coaches WHERE user_id = $1`, userID)
}

func (s *PostgresCoachStore) getOne(ctx context.Context, query string, arg uuid.UUID) (*domain.Coach, error) {
	var c domain.Coach
	var img sql.NullString
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID,
		&c.UserID,
		&c.ExperienceYears,
		&c.Description,
		&img,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCoachNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get coach",
			slog.String("error", err.Error()),
			slog.String("lookup_id", arg.String()))
		return nil, MapError(err)
	}
	if img.Valid {
		c.ProfileImageURL = &img.String
	}
	return &c, nil
}

// Update implements store.CoachStore.Update
func (s *PostgresCoachStore) Update(ctx context.Context, c *domain.Coach) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE coaches
		SET experience_years = $1, description = $2, profile_image_url = $3, updated_at = $4
		WHERE id = $5
	`, c.ExperienceYears, c.Description, c.ProfileImageURL, c.UpdatedAt, c.ID)
	if err != nil {
		log.Error("failed to update coach",
			slog.String("error", err.Error()),
			slog.String("coach_id", c.ID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrCoachNotFound)
}

// ReplaceSkills implements store.CoachStore.ReplaceSkills.
// Callers run it inside a transaction so the delete and inserts land together.
func (s *PostgresCoachStore) ReplaceSkills(ctx context.Context, coachID uuid.UUID, skillIDs []uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM coach_link_skills WHERE coach_id = $1`, coachID); err != nil {
		log.Error("failed to clear coach skills",
			slog.String("error", err.Error()),
			slog.String("coach_id", coachID.String()))
		return MapError(err)
	}

	now := time.Now().UTC()
	seen := make(map[uuid.UUID]struct{}, len(skillIDs))
	for _, skillID := range skillIDs {
		if _, dup := seen[skillID]; dup {
			continue
		}
		seen[skillID] = struct{}{}

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO coach_link_skills (id, coach_id, skill_id, created_at)
			VALUES ($1, $2, $3, $4)
		`, uuid.New(), coachID, skillID, now)
		if err != nil {
			log.Error("failed to link coach skill",
				slog.String("error", err.Error()),
				slog.String("coach_id", coachID.String()),
				slog.String("skill_id", skillID.String()))
			if IsForeignKeyViolation(err) {
				return store.ErrSkillNotFound
			}
			return MapError(err)
		}
	}

	log.Debug("coach skills replaced",
		slog.String("coach_id", coachID.String()),
		slog.Int("skill_count", len(seen)))
	return nil
}

// ListSkillIDs implements store.CoachStore.ListSkillIDs
func (s *PostgresCoachStore) ListSkillIDs(ctx context.Context, coachID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT skill_id FROM coach_link_skills WHERE coach_id = $1 ORDER BY created_at`,
		coachID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return ids, nil
}

// List implements store.CoachStore.List
func (s *PostgresCoachStore) List(ctx context.Context, limit, offset int) ([]domain.CoachListing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, u.name
		FROM coaches c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.created_at
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		log.Error("failed to list coaches", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	coaches := make([]domain.CoachListing, 0)
	for rows.Next() {
		var c domain.CoachListing
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, MapError(err)
		}
		coaches = append(coaches, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return coaches, nil
}
