package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/service"
	"github.com/livefit/livefit-api/internal/service/booking"
	"github.com/stretchr/testify/mock"
)

// MockBookingService is a testify mock of booking.Service.
type MockBookingService struct {
	mock.Mock
}

var _ booking.Service = (*MockBookingService)(nil)

func (m *MockBookingService) BookCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.CourseBooking, error) {
	args := m.Called(ctx, userID, courseID)
	b, _ := args.Get(0).(*domain.CourseBooking)
	return b, args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, userID, courseID uuid.UUID) error {
	return m.Called(ctx, userID, courseID).Error(0)
}

func (m *MockBookingService) Summary(ctx context.Context, userID uuid.UUID) (*booking.CreditSummary, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*booking.CreditSummary)
	return s, args.Error(1)
}

// MockUserService is a testify mock of service.UserService.
type MockUserService struct {
	mock.Mock
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	args := m.Called(ctx, name, email, password)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(1).(*domain.User)
	return args.String(0), u, args.Error(2)
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *MockUserService) UpdateName(ctx context.Context, userID uuid.UUID, name string) error {
	return m.Called(ctx, userID, name).Error(0)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword, confirm string) error {
	return m.Called(ctx, userID, current, newPassword, confirm).Error(0)
}

func (m *MockUserService) ListPurchases(ctx context.Context, userID uuid.UUID) ([]domain.PurchaseRecord, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]domain.PurchaseRecord)
	return r, args.Error(1)
}

func (m *MockUserService) ListBookings(ctx context.Context, userID uuid.UUID) ([]domain.UserCourseBooking, error) {
	args := m.Called(ctx, userID)
	b, _ := args.Get(0).([]domain.UserCourseBooking)
	return b, args.Error(1)
}

// MockSkillService is a testify mock of service.SkillService.
type MockSkillService struct {
	mock.Mock
}

var _ service.SkillService = (*MockSkillService)(nil)

func (m *MockSkillService) ListSkills(ctx context.Context) ([]*domain.Skill, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]*domain.Skill)
	return s, args.Error(1)
}

func (m *MockSkillService) CreateSkill(ctx context.Context, name string) (*domain.Skill, error) {
	args := m.Called(ctx, name)
	s, _ := args.Get(0).(*domain.Skill)
	return s, args.Error(1)
}

func (m *MockSkillService) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCreditService is a testify mock of service.CreditService.
type MockCreditService struct {
	mock.Mock
}

var _ service.CreditService = (*MockCreditService)(nil)

func (m *MockCreditService) ListPackages(ctx context.Context) ([]*domain.CreditPackage, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]*domain.CreditPackage)
	return p, args.Error(1)
}

func (m *MockCreditService) CreatePackage(
	ctx context.Context,
	name string,
	creditAmount int,
	price float64,
) (*domain.CreditPackage, error) {
	args := m.Called(ctx, name, creditAmount, price)
	p, _ := args.Get(0).(*domain.CreditPackage)
	return p, args.Error(1)
}

func (m *MockCreditService) Purchase(ctx context.Context, userID, packageID uuid.UUID) (*domain.CreditPurchase, error) {
	args := m.Called(ctx, userID, packageID)
	p, _ := args.Get(0).(*domain.CreditPurchase)
	return p, args.Error(1)
}

func (m *MockCreditService) DeletePackage(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCoachService is a testify mock of service.CoachService.
type MockCoachService struct {
	mock.Mock
}

var _ service.CoachService = (*MockCoachService)(nil)

func (m *MockCoachService) Promote(
	ctx context.Context,
	userID uuid.UUID,
	profile service.CoachProfile,
) (*service.CoachDetail, error) {
	args := m.Called(ctx, userID, profile)
	d, _ := args.Get(0).(*service.CoachDetail)
	return d, args.Error(1)
}

func (m *MockCoachService) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	profile service.CoachProfile,
) (*domain.Coach, error) {
	args := m.Called(ctx, userID, profile)
	c, _ := args.Get(0).(*domain.Coach)
	return c, args.Error(1)
}

func (m *MockCoachService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Coach, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*domain.Coach)
	return c, args.Error(1)
}

func (m *MockCoachService) ListCoaches(ctx context.Context, page, per int) ([]domain.CoachListing, error) {
	args := m.Called(ctx, page, per)
	l, _ := args.Get(0).([]domain.CoachListing)
	return l, args.Error(1)
}

func (m *MockCoachService) GetCoach(ctx context.Context, coachID uuid.UUID) (*service.CoachDetail, error) {
	args := m.Called(ctx, coachID)
	d, _ := args.Get(0).(*service.CoachDetail)
	return d, args.Error(1)
}

func (m *MockCoachService) ListCoachCourses(ctx context.Context, coachID uuid.UUID) ([]*domain.Course, error) {
	args := m.Called(ctx, coachID)
	c, _ := args.Get(0).([]*domain.Course)
	return c, args.Error(1)
}

// MockCourseService is a testify mock of service.CourseService.
type MockCourseService struct {
	mock.Mock
}

var _ service.CourseService = (*MockCourseService)(nil)

func (m *MockCourseService) CreateCourse(
	ctx context.Context,
	coachUserID uuid.UUID,
	details domain.CourseDetails,
) (*domain.Course, error) {
	args := m.Called(ctx, coachUserID, details)
	c, _ := args.Get(0).(*domain.Course)
	return c, args.Error(1)
}

func (m *MockCourseService) UpdateCourse(
	ctx context.Context,
	courseID uuid.UUID,
	details domain.CourseDetails,
) (*domain.Course, error) {
	args := m.Called(ctx, courseID, details)
	c, _ := args.Get(0).(*domain.Course)
	return c, args.Error(1)
}

func (m *MockCourseService) ListOwnCourses(ctx context.Context, coachUserID uuid.UUID) ([]*domain.Course, error) {
	args := m.Called(ctx, coachUserID)
	c, _ := args.Get(0).([]*domain.Course)
	return c, args.Error(1)
}

func (m *MockCourseService) GetCourse(ctx context.Context, courseID uuid.UUID) (*domain.CourseListing, error) {
	args := m.Called(ctx, courseID)
	l, _ := args.Get(0).(*domain.CourseListing)
	return l, args.Error(1)
}

func (m *MockCourseService) ListCourses(ctx context.Context) ([]domain.CourseListing, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]domain.CourseListing)
	return l, args.Error(1)
}

// MockUploadService is a testify mock of service.UploadService.
type MockUploadService struct {
	mock.Mock
}

var _ service.UploadService = (*MockUploadService)(nil)

func (m *MockUploadService) Upload(ctx context.Context, r io.Reader) (string, error) {
	args := m.Called(ctx, r)
	return args.String(0), args.Error(1)
}

func (m *MockUploadService) ListImages(ctx context.Context) ([]service.Image, error) {
	args := m.Called(ctx)
	i, _ := args.Get(0).([]service.Image)
	return i, args.Error(1)
}
