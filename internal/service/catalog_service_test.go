package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/mocks"
	"github.com/livefit/livefit-api/internal/service"
	"github.com/livefit/livefit-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSkillService(t *testing.T) {
	ctx := context.Background()

	t.Run("create trims name", func(t *testing.T) {
		skills := new(mocks.MockSkillStore)
		skills.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Skill) bool {
			return s.Name == "Yoga"
		})).Return(nil)

		skill, err := service.NewSkillService(skills, nil).CreateSkill(ctx, "  Yoga ")

		require.NoError(t, err)
		assert.Equal(t, "Yoga", skill.Name)
		skills.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		skills := new(mocks.MockSkillStore)
		skills.On("Create", mock.Anything, mock.Anything).Return(store.ErrSkillExists)

		_, err := service.NewSkillService(skills, nil).CreateSkill(ctx, "Yoga")

		assert.ErrorIs(t, err, store.ErrSkillExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("empty name", func(t *testing.T) {
		skills := new(mocks.MockSkillStore)

		_, err := service.NewSkillService(skills, nil).CreateSkill(ctx, "")

		assert.ErrorIs(t, err, domain.ErrValidation)
		skills.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("delete passes store sentinels through", func(t *testing.T) {
		for _, want := range []error{store.ErrSkillNotFound, store.ErrReferenced} {
			skills := new(mocks.MockSkillStore)
			id := uuid.New()
			skills.On("Delete", mock.Anything, id).Return(want)

			err := service.NewSkillService(skills, nil).DeleteSkill(ctx, id)

			assert.ErrorIs(t, err, want)
		}
	})
}

func TestCreditService_CreatePackage(t *testing.T) {
	tests := []struct {
		name     string
		pkgName  string
		credits  int
		price    float64
		storeErr error
		wantErr  error
	}{
		{name: "created", pkgName: "10 classes", credits: 10, price: 2000},
		{name: "free package allowed", pkgName: "trial", credits: 1, price: 0},
		{name: "zero credits", pkgName: "empty", credits: 0, price: 100, wantErr: domain.ErrInvalidCreditAmount},
		{name: "negative price", pkgName: "refund", credits: 1, price: -1, wantErr: domain.ErrInvalidPrice},
		{name: "duplicate", pkgName: "10 classes", credits: 10, price: 2000,
			storeErr: store.ErrCreditPackageExists, wantErr: store.ErrCreditPackageExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packages := new(mocks.MockCreditPackageStore)
			packages.On("Create", mock.Anything, mock.Anything).Return(tt.storeErr).Maybe()
			svc := service.NewCreditService(packages, new(mocks.MockCreditPurchaseStore), nil)

			pkg, err := svc.CreatePackage(context.Background(), tt.pkgName, tt.credits, tt.price)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.credits, pkg.CreditAmount)
		})
	}
}

func TestCreditService_Purchase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	pkg := &domain.CreditPackage{ID: uuid.New(), Name: "5 classes", CreditAmount: 5, Price: 1500}

	t.Run("copies credits and price", func(t *testing.T) {
		packages := new(mocks.MockCreditPackageStore)
		purchases := new(mocks.MockCreditPurchaseStore)
		packages.On("GetByID", mock.Anything, pkg.ID).Return(pkg, nil)
		purchases.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.CreditPurchase) bool {
			return p.UserID == userID &&
				p.CreditPackageID == pkg.ID &&
				p.PurchasedCredits == 5 &&
				p.PricePaid == 1500
		})).Return(nil)

		purchase, err := service.NewCreditService(packages, purchases, nil).Purchase(ctx, userID, pkg.ID)

		require.NoError(t, err)
		assert.False(t, purchase.PurchaseAt.IsZero())
		purchases.AssertExpectations(t)
	})

	t.Run("unknown package", func(t *testing.T) {
		packages := new(mocks.MockCreditPackageStore)
		purchases := new(mocks.MockCreditPurchaseStore)
		missing := uuid.New()
		packages.On("GetByID", mock.Anything, missing).Return(nil, store.ErrCreditPackageNotFound)

		_, err := service.NewCreditService(packages, purchases, nil).Purchase(ctx, userID, missing)

		assert.ErrorIs(t, err, store.ErrCreditPackageNotFound)
		purchases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("referenced package cannot be deleted", func(t *testing.T) {
		packages := new(mocks.MockCreditPackageStore)
		packages.On("Delete", mock.Anything, pkg.ID).Return(store.ErrReferenced)

		err := service.NewCreditService(packages, new(mocks.MockCreditPurchaseStore), nil).DeletePackage(ctx, pkg.ID)

		assert.ErrorIs(t, err, store.ErrReferenced)
	})
}
