package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/livefit/livefit-api/internal/api/shared"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/livefit/livefit-api/internal/service"
	"github.com/livefit/livefit-api/internal/service/booking"
	"github.com/livefit/livefit-api/internal/store"
)

// CourseHandler serves the public course list, course bookings and coach
// course management.
type CourseHandler struct {
	courses  service.CourseService
	bookings booking.Service
	logger   *slog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courses service.CourseService, bookings booking.Service, logger *slog.Logger) *CourseHandler {
	if courses == nil {
		panic("course service cannot be nil")
	}
	if bookings == nil {
		panic("booking service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseHandler{
		courses:  courses,
		bookings: bookings,
		logger:   logger.With(slog.String("component", "course_handler")),
	}
}

// List handles GET /api/courses.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.ListCourses(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, courses)
}

// Book handles POST /api/courses/{courseId}.
func (h *CourseHandler) Book(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	courseID, err := getPathUUID(r, "courseId")
	if err != nil {
		HandleAPIError(w, r, booking.ErrCourseNotFound, "")
		return
	}

	b, err := h.bookings.BookCourse(r.Context(), userID, courseID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("course booked",
		slog.String("booking_id", b.ID.String()),
		slog.String("course_id", courseID.String()))
	shared.RespondWithData(w, r, http.StatusCreated, nil)
}

// Cancel handles DELETE /api/courses/{courseId}.
func (h *CourseHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	courseID, err := getPathUUID(r, "courseId")
	if err != nil {
		HandleAPIError(w, r, booking.ErrBookingNotFound, "")
		return
	}

	if err := h.bookings.CancelBooking(r.Context(), userID, courseID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, nil)
}

// Create handles POST /api/admin/coaches/courses.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	course, err := h.courses.CreateCourse(r.Context(), req.UserID, req.details())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, CourseResponse{Course: course})
}

// Update handles PUT /api/admin/coaches/courses/{courseId}.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	courseID, err := getPathUUID(r, "courseId")
	if err != nil {
		HandleAPIError(w, r, err, MsgCourseNotFound)
		return
	}
	var req CourseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	course, err := h.courses.UpdateCourse(r.Context(), courseID, req.details())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, CourseResponse{Course: course})
}

// ListOwn handles GET /api/admin/coaches/courses.
func (h *CourseHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	courses, err := h.courses.ListOwnCourses(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, courses)
}

// GetOwn handles GET /api/admin/coaches/courses/{courseId}.
func (h *CourseHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	courseID, err := getPathUUID(r, "courseId")
	if err != nil {
		HandleAPIError(w, r, err, MsgCoachNotFound)
		return
	}

	course, err := h.courses.GetCourse(r.Context(), courseID)
	if err != nil {
		// the coach dashboard reports a missing course as a missing coach
		msg := ""
		if errors.Is(err, store.ErrCourseNotFound) {
			msg = MsgCoachNotFound
		}
		HandleAPIError(w, r, err, msg)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, course)
}
