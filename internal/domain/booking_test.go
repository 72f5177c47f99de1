package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseBookingLifecycle(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	b, err := NewCourseBooking(uuid.New(), uuid.New(), now)
	require.NoError(t, err)

	assert.True(t, b.IsActive())
	assert.Equal(t, BookingStatusActive, b.Status())
	assert.Equal(t, now, b.BookingAt)

	require.NoError(t, b.Cancel(now.Add(time.Minute)))
	assert.False(t, b.IsActive())
	assert.Equal(t, BookingStatusCancelled, b.Status())
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, now.Add(time.Minute), *b.CancelledAt)

	// One-way transition: a second cancel leaves the first timestamp alone.
	assert.ErrorIs(t, b.Cancel(now.Add(time.Hour)), ErrBookingCancelled)
	assert.Equal(t, now.Add(time.Minute), *b.CancelledAt)
}

func TestNewCourseBookingRequiresIDs(t *testing.T) {
	_, err := NewCourseBooking(uuid.Nil, uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrEmptyBookingUserID)

	_, err = NewCourseBooking(uuid.New(), uuid.Nil, time.Now())
	assert.ErrorIs(t, err, ErrEmptyBookingCourseID)
}

func TestCreditPackageAndPurchase(t *testing.T) {
	pkg, err := NewCreditPackage(" 7 堂組合包方案 ", 7, 1400)
	require.NoError(t, err)
	assert.Equal(t, "7 堂組合包方案", pkg.Name)

	at := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()
	purchase, err := NewCreditPurchase(userID, pkg, at)
	require.NoError(t, err)
	assert.Equal(t, userID, purchase.UserID)
	assert.Equal(t, pkg.ID, purchase.CreditPackageID)
	assert.Equal(t, 7, purchase.PurchasedCredits)
	assert.Equal(t, 1400.0, purchase.PricePaid)
	assert.Equal(t, at, purchase.PurchaseAt)

	_, err = NewCreditPackage("free", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidCreditAmount)
	_, err = NewCreditPackage("refund", 1, -1)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	_, err = NewCreditPackage("", 1, 1)
	assert.ErrorIs(t, err, ErrEmptyPackageName)

	_, err = NewCreditPurchase(uuid.Nil, pkg, at)
	assert.ErrorIs(t, err, ErrEmptyPurchaseUserID)
}

func TestNewSkill(t *testing.T) {
	s, err := NewSkill("重訓")
	require.NoError(t, err)
	assert.Equal(t, "重訓", s.Name)

	_, err = NewSkill("  ")
	assert.ErrorIs(t, err, ErrEmptySkillName)
}
