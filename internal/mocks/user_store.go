package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock of store.UserStore interface for use with testify/mock
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByEmail is a mock implementation of store.UserStore.GetByEmail
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// LockByID is a mock implementation of store.UserStore.LockByID
func (m *MockUserStore) LockByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateName is a mock implementation of store.UserStore.UpdateName
func (m *MockUserStore) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

// UpdatePassword is a mock implementation of store.UserStore.UpdatePassword
func (m *MockUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	return m.Called(ctx, id, hashedPassword).Error(0)
}

// UpdateRole is a mock implementation of store.UserStore.UpdateRole
func (m *MockUserStore) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

// WithTx returns the mock itself so expectations set on it also cover
// transactional calls.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
