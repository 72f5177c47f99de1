package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/livefit/livefit-api/internal/api/shared"
	"github.com/livefit/livefit-api/internal/service"
	"github.com/livefit/livefit-api/internal/store"
)

// CoachHandler serves the public coach directory and coach self-service.
type CoachHandler struct {
	coaches service.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(coaches service.CoachService) *CoachHandler {
	if coaches == nil {
		panic("coach service cannot be nil")
	}
	return &CoachHandler{coaches: coaches}
}

// positiveQueryInt parses a required query parameter that must be an integer >= 1.
func positiveQueryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// List handles GET /api/coaches?per=&page=.
func (h *CoachHandler) List(w http.ResponseWriter, r *http.Request) {
	per, okPer := positiveQueryInt(r, "per")
	page, okPage := positiveQueryInt(r, "page")
	if !okPer || !okPage {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidFields)
		return
	}

	coaches, err := h.coaches.ListCoaches(r.Context(), page, per)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, coaches)
}

// Get handles GET /api/coaches/{coachId}.
func (h *CoachHandler) Get(w http.ResponseWriter, r *http.Request) {
	coachID, err := getPathUUID(r, "coachId")
	if err != nil {
		HandleAPIError(w, r, err, MsgCoachNotFound)
		return
	}

	detail, err := h.coaches.GetCoach(r.Context(), coachID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, newCoachDetailResponse(detail))
}

// ListCourses handles GET /api/coaches/{coachId}/courses.
func (h *CoachHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	coachID, err := getPathUUID(r, "coachId")
	if err != nil {
		HandleAPIError(w, r, err, MsgCoachNotFound)
		return
	}

	courses, err := h.coaches.ListCoachCourses(r.Context(), coachID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, courses)
}

// Promote handles POST /api/admin/coaches/{userId}.
func (h *CoachHandler) Promote(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "userId")
	if err != nil {
		HandleAPIError(w, r, err, MsgUserNotFound)
		return
	}
	var req PromoteCoachRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	detail, err := h.coaches.Promote(r.Context(), userID, req.profile())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, newCoachDetailResponse(detail))
}

// UpdateProfile handles PUT /api/admin/coaches.
func (h *CoachHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req UpdateCoachRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	coach, err := h.coaches.UpdateProfile(r.Context(), userID, req.profile())
	if err != nil {
		msg := ""
		if errors.Is(err, store.ErrSkillNotFound) {
			msg = MsgInvalidFields
		}
		HandleAPIError(w, r, err, msg)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, coach)
}

// GetProfile handles GET /api/admin/coaches.
func (h *CoachHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	coach, err := h.coaches.GetProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, coach)
}
