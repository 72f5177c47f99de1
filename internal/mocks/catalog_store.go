package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockSkillStore is a testify mock of store.SkillStore.
type MockSkillStore struct {
	mock.Mock
}

var _ store.SkillStore = (*MockSkillStore)(nil)

func (m *MockSkillStore) Create(ctx context.Context, skill *domain.Skill) error {
	return m.Called(ctx, skill).Error(0)
}

func (m *MockSkillStore) List(ctx context.Context) ([]*domain.Skill, error) {
	args := m.Called(ctx)
	skills, _ := args.Get(0).([]*domain.Skill)
	return skills, args.Error(1)
}

func (m *MockSkillStore) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockSkillStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCreditPackageStore is a testify mock of store.CreditPackageStore.
type MockCreditPackageStore struct {
	mock.Mock
}

var _ store.CreditPackageStore = (*MockCreditPackageStore)(nil)

func (m *MockCreditPackageStore) Create(ctx context.Context, pkg *domain.CreditPackage) error {
	return m.Called(ctx, pkg).Error(0)
}

func (m *MockCreditPackageStore) List(ctx context.Context) ([]*domain.CreditPackage, error) {
	args := m.Called(ctx)
	pkgs, _ := args.Get(0).([]*domain.CreditPackage)
	return pkgs, args.Error(1)
}

func (m *MockCreditPackageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditPackage, error) {
	args := m.Called(ctx, id)
	pkg, _ := args.Get(0).(*domain.CreditPackage)
	return pkg, args.Error(1)
}

func (m *MockCreditPackageStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
