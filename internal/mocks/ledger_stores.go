package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCreditPurchaseStore is a testify mock of store.CreditPurchaseStore.
type MockCreditPurchaseStore struct {
	mock.Mock
}

var _ store.CreditPurchaseStore = (*MockCreditPurchaseStore)(nil)

func (m *MockCreditPurchaseStore) Create(ctx context.Context, purchase *domain.CreditPurchase) error {
	return m.Called(ctx, purchase).Error(0)
}

func (m *MockCreditPurchaseStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.PurchaseRecord, error) {
	args := m.Called(ctx, userID)
	records, _ := args.Get(0).([]domain.PurchaseRecord)
	return records, args.Error(1)
}

func (m *MockCreditPurchaseStore) SumCreditsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockCreditPurchaseStore) WithTx(tx *sql.Tx) store.CreditPurchaseStore {
	return m
}

// MockBookingStore is a testify mock of store.BookingStore.
type MockBookingStore struct {
	mock.Mock
}

var _ store.BookingStore = (*MockBookingStore)(nil)

func (m *MockBookingStore) Create(ctx context.Context, booking *domain.CourseBooking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingStore) GetActive(ctx context.Context, userID, courseID uuid.UUID) (*domain.CourseBooking, error) {
	args := m.Called(ctx, userID, courseID)
	b, _ := args.Get(0).(*domain.CourseBooking)
	return b, args.Error(1)
}

func (m *MockBookingStore) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingStore) CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	args := m.Called(ctx, courseID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingStore) CancelActive(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (int64, error) {
	args := m.Called(ctx, userID, courseID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserCourseBooking, error) {
	args := m.Called(ctx, userID)
	bookings, _ := args.Get(0).([]domain.UserCourseBooking)
	return bookings, args.Error(1)
}

func (m *MockBookingStore) WithTx(tx *sql.Tx) store.BookingStore {
	return m
}

// MockCoachStore is a testify mock of store.CoachStore.
type MockCoachStore struct {
	mock.Mock
}

var _ store.CoachStore = (*MockCoachStore)(nil)

func (m *MockCoachStore) Create(ctx context.Context, coach *domain.Coach) error {
	return m.Called(ctx, coach).Error(0)
}

func (m *MockCoachStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Coach, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Coach)
	return c, args.Error(1)
}

func (m *MockCoachStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Coach, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*domain.Coach)
	return c, args.Error(1)
}

func (m *MockCoachStore) Update(ctx context.Context, coach *domain.Coach) error {
	return m.Called(ctx, coach).Error(0)
}

func (m *MockCoachStore) ReplaceSkills(ctx context.Context, coachID uuid.UUID, skillIDs []uuid.UUID) error {
	return m.Called(ctx, coachID, skillIDs).Error(0)
}

func (m *MockCoachStore) ListSkillIDs(ctx context.Context, coachID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, coachID)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *MockCoachStore) List(ctx context.Context, limit, offset int) ([]domain.CoachListing, error) {
	args := m.Called(ctx, limit, offset)
	coaches, _ := args.Get(0).([]domain.CoachListing)
	return coaches, args.Error(1)
}

func (m *MockCoachStore) WithTx(tx *sql.Tx) store.CoachStore {
	return m
}

// MockCourseStore is a testify mock of store.CourseStore.
type MockCourseStore struct {
	mock.Mock
}

var _ store.CourseStore = (*MockCourseStore)(nil)

func (m *MockCourseStore) Create(ctx context.Context, course *domain.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *MockCourseStore) Update(ctx context.Context, course *domain.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *MockCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Course)
	return c, args.Error(1)
}

func (m *MockCourseStore) LockByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Course)
	return c, args.Error(1)
}

func (m *MockCourseStore) ListListings(ctx context.Context) ([]domain.CourseListing, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]domain.CourseListing)
	return l, args.Error(1)
}

func (m *MockCourseStore) GetListing(ctx context.Context, id uuid.UUID) (*domain.CourseListing, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*domain.CourseListing)
	return l, args.Error(1)
}

func (m *MockCourseStore) ListByCoachUser(ctx context.Context, userID uuid.UUID) ([]*domain.Course, error) {
	args := m.Called(ctx, userID)
	courses, _ := args.Get(0).([]*domain.Course)
	return courses, args.Error(1)
}

func (m *MockCourseStore) WithTx(tx *sql.Tx) store.CourseStore {
	return m
}
