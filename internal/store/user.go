package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. The caller must have hashed the password.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// LockByID retrieves a user and holds a row lock until the surrounding
	// transaction ends. Only meaningful on a store returned by WithTx.
	LockByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// UpdateName changes a user's display name.
	// Returns ErrUserNotFound if no row was updated.
	UpdateName(ctx context.Context, id uuid.UUID, name string) error

	// UpdatePassword replaces a user's password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error

	// UpdateRole changes a user's role.
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
