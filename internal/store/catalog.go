package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
)

// SkillStore defines persistence for coaching skills.
type SkillStore interface {
	// Create saves a new skill. Returns ErrSkillExists on a duplicate name.
	Create(ctx context.Context, skill *domain.Skill) error

	// List returns all skills ordered by name.
	List(ctx context.Context) ([]*domain.Skill, error)

	// CountExisting returns how many of ids exist.
	CountExisting(ctx context.Context, ids []uuid.UUID) (int, error)

	// Delete removes a skill. Returns ErrSkillNotFound if it does not exist
	// and ErrReferenced if courses or coaches still use it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreditPackageStore defines persistence for purchasable credit packages.
type CreditPackageStore interface {
	// Create saves a new package. Returns ErrCreditPackageExists on a duplicate name.
	Create(ctx context.Context, pkg *domain.CreditPackage) error

	// List returns all packages ordered by creation time.
	List(ctx context.Context) ([]*domain.CreditPackage, error)

	// GetByID returns ErrCreditPackageNotFound if the package does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditPackage, error)

	// Delete removes a package. Returns ErrCreditPackageNotFound if it does
	// not exist and ErrReferenced if it has been purchased.
	Delete(ctx context.Context, id uuid.UUID) error
}
