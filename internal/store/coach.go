package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
)

// CoachStore defines persistence for coach profiles and their skill links.
type CoachStore interface {
	// Create saves a new profile. Returns ErrCoachExists if the user already has one.
	Create(ctx context.Context, coach *domain.Coach) error

	// GetByID returns ErrCoachNotFound if the coach does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Coach, error)

	// GetByUserID returns ErrCoachNotFound if the user has no profile.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Coach, error)

	// Update saves the mutable profile fields.
	Update(ctx context.Context, coach *domain.Coach) error

	// ReplaceSkills replaces every skill link of a coach with skillIDs.
	ReplaceSkills(ctx context.Context, coachID uuid.UUID, skillIDs []uuid.UUID) error

	// ListSkillIDs returns the skills linked to a coach.
	ListSkillIDs(ctx context.Context, coachID uuid.UUID) ([]uuid.UUID, error)

	// List returns a page of coaches with their user names.
	List(ctx context.Context, limit, offset int) ([]domain.CoachListing, error)

	// WithTx returns a new CoachStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CoachStore
}
