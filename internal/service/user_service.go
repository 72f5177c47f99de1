package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/livefit/livefit-api/internal/service/auth"
	"github.com/livefit/livefit-api/internal/store"
)

// UserService provides account operations for members.
type UserService interface {
	// Signup registers a member with the USER role.
	// Returns store.ErrEmailExists if the email is taken.
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)

	// Login checks credentials and issues an access token.
	// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateName changes the display name; ErrNameUnchanged if it is the same.
	UpdateName(ctx context.Context, userID uuid.UUID, name string) error

	// ChangePassword replaces the password after checking the current one.
	ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword, confirm string) error

	// ListPurchases returns the user's purchase history; ErrNoPurchases when empty.
	ListPurchases(ctx context.Context, userID uuid.UUID) ([]domain.PurchaseRecord, error)

	// ListBookings returns every booking of the user; ErrNoBookings when empty.
	ListBookings(ctx context.Context, userID uuid.UUID) ([]domain.UserCourseBooking, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore     store.UserStore
	purchaseStore store.CreditPurchaseStore
	bookingStore  store.BookingStore
	passwords     auth.PasswordManager
	jwtService    auth.JWTService
	logger        *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	purchaseStore store.CreditPurchaseStore,
	bookingStore store.BookingStore,
	passwords auth.PasswordManager,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *UserServiceImpl {
	if userStore == nil || purchaseStore == nil || bookingStore == nil {
		panic("stores cannot be nil")
	}
	if passwords == nil || jwtService == nil {
		panic("auth dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore:     userStore,
		purchaseStore: purchaseStore,
		bookingStore:  bookingStore,
		passwords:     passwords,
		jwtService:    jwtService,
		logger:        logger.With("component", "user_service"),
	}
}

// Signup implements UserService.Signup
func (s *UserServiceImpl) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, strings.ToLower(email), password)
	if err != nil {
		return nil, invalid("user", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, err
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to sign up with existing email")
			return nil, store.ErrEmailExists
		}
		log.Error("failed to save user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user signed up", "user_id", user.ID)
	return user, nil
}

// Login implements UserService.Login
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", "error", err)
		return "", nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}

	if err := s.passwords.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login password mismatch", "user_id", user.ID)
			return "", nil, ErrInvalidCredentials
		}
		log.Error("failed to compare password", "error", err, "user_id", user.ID)
		return "", nil, err
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Role)
	if err != nil {
		log.Error("failed to generate token", "error", err, "user_id", user.ID)
		return "", nil, err
	}

	log.Debug("user logged in", "user_id", user.ID)
	return token, user, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// UpdateName implements UserService.UpdateName
func (s *UserServiceImpl) UpdateName(ctx context.Context, userID uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if err := domain.ValidateUserName(name); err != nil {
		return invalid("name", err)
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Name == name {
		return ErrNameUnchanged
	}

	if err := s.userStore.UpdateName(ctx, userID, name); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUserUpdateFailed
		}
		return fmt.Errorf("failed to update user name: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user name updated", "user_id", userID)
	return nil
}

// ChangePassword implements UserService.ChangePassword
func (s *UserServiceImpl) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	current, newPassword, confirm string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for field, pw := range map[string]string{
		"password":             current,
		"new_password":         newPassword,
		"confirm_new_password": confirm,
	} {
		if err := domain.ValidatePassword(pw); err != nil {
			return invalid(field, err)
		}
	}
	if newPassword == current {
		return ErrPasswordUnchanged
	}
	if newPassword != confirm {
		return ErrPasswordConfirmMismatch
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.passwords.Compare(user.HashedPassword, current); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return ErrWrongPassword
		}
		log.Error("failed to compare password", "error", err, "user_id", userID)
		return err
	}

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.userStore.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrPasswordUpdateFailed
		}
		log.Error("failed to update password", "error", err, "user_id", userID)
		return fmt.Errorf("failed to update password: %w", err)
	}

	log.Info("password changed", "user_id", userID)
	return nil
}

// ListPurchases implements UserService.ListPurchases
func (s *UserServiceImpl) ListPurchases(ctx context.Context, userID uuid.UUID) ([]domain.PurchaseRecord, error) {
	records, err := s.purchaseStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoPurchases
	}
	return records, nil
}

// ListBookings implements UserService.ListBookings
func (s *UserServiceImpl) ListBookings(ctx context.Context, userID uuid.UUID) ([]domain.UserCourseBooking, error) {
	bookings, err := s.bookingStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	if len(bookings) == 0 {
		return nil, ErrNoBookings
	}
	return bookings, nil
}
