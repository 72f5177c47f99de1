package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/livefit/livefit-api/internal/store"
)

// PostgresSkillStore implements store.SkillStore.
type PostgresSkillStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSkillStore creates a new PostgreSQL implementation of the SkillStore interface.
func NewPostgresSkillStore(db store.DBTX, logger *slog.Logger) *PostgresSkillStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSkillStore{
		db:     db,
		logger: logger.With(slog.String("component", "skill_store")),
	}
}

var _ store.SkillStore = (*PostgresSkillStore)(nil)

// Create implements store.SkillStore.Create
func (s *PostgresSkillStore) Create(ctx context.Context, skill *domain.Skill) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO skills (id, name, created_at) VALUES ($1, $2, $3)`,
		skill.ID, skill.Name, skill.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrSkillExists)
		}
		log.Error("failed to create skill", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("skill created", slog.String("skill_id", skill.ID.String()))
	return nil
}

// List implements store.SkillStore.List
func (s *PostgresSkillStore) List(ctx context.Context) ([]*domain.Skill, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM skills ORDER BY name`)
	if err != nil {
		log.Error("failed to list skills", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	skills := make([]*domain.Skill, 0)
	for rows.Next() {
		var sk domain.Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.CreatedAt); err != nil {
			return nil, MapError(err)
		}
		skills = append(skills, &sk)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return skills, nil
}

// CountExisting implements store.SkillStore.CountExisting
func (s *PostgresSkillStore) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM skills WHERE id = ANY($1::uuid[])`,
		uuidArray(ids)).Scan(&count)
	if err != nil {
		log.Error("failed to count skills", slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return count, nil
}

// Delete implements store.SkillStore.Delete
func (s *PostgresSkillStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: skill %s", store.ErrReferenced, id)
		}
		log.Error("failed to delete skill",
			slog.String("error", err.Error()),
			slog.String("skill_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrSkillNotFound); err != nil {
		return err
	}

	log.Info("skill deleted", slog.String("skill_id", id.String()))
	return nil
}

// PostgresCreditPackageStore implements store.CreditPackageStore.
type PostgresCreditPackageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCreditPackageStore creates a new PostgreSQL implementation of the CreditPackageStore interface.
func NewPostgresCreditPackageStore(db store.DBTX, logger *slog.Logger) *PostgresCreditPackageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCreditPackageStore{
		db:     db,
		logger: logger.With(slog.String("component", "credit_package_store")),
	}
}

var _ store.CreditPackageStore = (*PostgresCreditPackageStore)(nil)

// Create implements store.CreditPackageStore.Create
func (s *PostgresCreditPackageStore) Create(ctx context.Context, pkg *domain.CreditPackage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credit_packages (id, name, credit_amount, price, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, pkg.ID, pkg.Name, pkg.CreditAmount, pkg.Price, pkg.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrCreditPackageExists)
		}
		log.Error("failed to create credit package", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("credit package created", slog.String("credit_package_id", pkg.ID.String()))
	return nil
}

// List implements store.CreditPackageStore.List
func (s *PostgresCreditPackageStore) List(ctx context.Context) ([]*domain.CreditPackage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, credit_amount, price, created_at
		FROM credit_packages
		ORDER BY created_at
	`)
	if err != nil {
		log.Error("failed to list credit packages", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	pkgs := make([]*domain.CreditPackage, 0)
	for rows.Next() {
		var p domain.CreditPackage
		if err := rows.Scan(&p.ID, &p.Name, &p.CreditAmount, &p.Price, &p.CreatedAt); err != nil {
			return nil, MapError(err)
		}
		pkgs = append(pkgs, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return pkgs, nil
}

// GetByID implements store.CreditPackageStore.GetByID
func (s *PostgresCreditPackageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditPackage, error) {
	var p domain.CreditPackage
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, credit_amount, price, created_at
		FROM credit_packages
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.CreditAmount, &p.Price, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCreditPackageNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get credit package",
			slog.String("error", err.Error()),
			slog.String("credit_package_id", id.String()))
		return nil, MapError(err)
	}
	return &p, nil
}

// Delete implements store.CreditPackageStore.Delete
func (s *PostgresCreditPackageStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM credit_packages WHERE id = $1`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: credit package %s", store.ErrReferenced, id)
		}
		log.Error("failed to delete credit package",
			slog.String("error", err.Error()),
			slog.String("credit_package_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrCreditPackageNotFound); err != nil {
		return err
	}

	log.Info("credit package deleted", slog.String("credit_package_id", id.String()))
	return nil
}

// uuidArray binds a uuid slice as a Postgres array literal; database/sql only
// passes slice arguments through when the driver accepts them.
type uuidArray []uuid.UUID

// Value implements driver.Valuer.
func (a uuidArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(id.String())
	}
	b.WriteByte('}')
	return b.String(), nil
}
