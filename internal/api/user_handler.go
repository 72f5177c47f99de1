package api

import (
	"log/slog"
	"net/http"

	"github.com/livefit/livefit-api/internal/api/shared"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/livefit/livefit-api/internal/service"
	"github.com/livefit/livefit-api/internal/service/booking"
)

// UserHandler serves account endpoints under /api/users.
type UserHandler struct {
	users    service.UserService
	bookings booking.Service
	logger   *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(users service.UserService, bookings booking.Service, logger *slog.Logger) *UserHandler {
	if users == nil {
		panic("users service cannot be nil")
	}
	if bookings == nil {
		panic("booking service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:    users,
		bookings: bookings,
		logger:   logger.With(slog.String("component", "user_handler")),
	}
}

// Signup handles POST /api/users/signup.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, SignupResponse{
		User: UserSummary{ID: user.ID, Name: user.Name},
	})
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, LoginResponse{
		Token: token,
		User:  UserSummary{Name: user.Name},
	})
}

// GetProfile handles GET /api/users/profile.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, ProfileResponse{Email: user.Email, Name: user.Name})
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.users.UpdateName(r.Context(), userID, req.Name); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, nil)
}

// ChangePassword handles PUT /api/users/password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.users.ChangePassword(r.Context(), userID, req.Password, req.NewPassword, req.ConfirmNewPassword)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("password changed")
	shared.RespondWithData(w, r, http.StatusOK, nil)
}

// ListPurchases handles GET /api/users/credit-package.
func (h *UserHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	purchases, err := h.users.ListPurchases(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, purchases)
}

// ListCourses handles GET /api/users/courses.
func (h *UserHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	bookings, err := h.users.ListBookings(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	summary, err := h.bookings.Summary(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, UserCoursesResponse{
		CreditUsage:   *summary,
		CourseBooking: bookings,
	})
}
