package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/livefit/livefit-api/internal/api/shared"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/service"
	"github.com/livefit/livefit-api/internal/service/auth"
	"github.com/livefit/livefit-api/internal/service/booking"
	"github.com/livefit/livefit-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"nil error", nil, http.StatusInternalServerError, shared.ServerErrorMessage},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, shared.ServerErrorMessage},
		{
			"password rule",
			domain.NewValidationError("password", "invalid", domain.ErrInvalidPassword),
			http.StatusBadRequest, MsgInvalidPassword,
		},
		{
			"generic validation",
			domain.NewValidationError("name", "too long", domain.ErrUserNameTooLong),
			http.StatusBadRequest, MsgInvalidFields,
		},
		{
			"invalid path id",
			domain.NewValidationError("skillId", "has invalid format", domain.ErrInvalidID),
			http.StatusBadRequest, MsgInvalidID,
		},
		{"email taken", store.ErrEmailExists, http.StatusConflict, MsgEmailTaken},
		{"duplicate skill", fmt.Errorf("create: %w", store.ErrSkillExists), http.StatusConflict, MsgDuplicate},
		{"package in use", store.ErrReferenced, http.StatusConflict, MsgInUse},
		{"unknown package", store.ErrCreditPackageNotFound, http.StatusBadRequest, MsgInvalidID},
		{"unknown course", store.ErrCourseNotFound, http.StatusBadRequest, MsgCourseNotFound},
		{"unknown coach", store.ErrCoachNotFound, http.StatusBadRequest, MsgCoachNotFound},
		{"unknown user", fmt.Errorf("lookup: %w", store.ErrUserNotFound), http.StatusBadRequest, MsgUserNotFound},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusBadRequest, MsgBadCredentials},
		{"name unchanged", service.ErrNameUnchanged, http.StatusBadRequest, MsgNameUnchanged},
		{"same password", service.ErrPasswordUnchanged, http.StatusBadRequest, MsgPasswordUnchanged},
		{"confirm mismatch", service.ErrPasswordConfirmMismatch, http.StatusBadRequest, MsgPasswordMismatch},
		{"wrong password", service.ErrWrongPassword, http.StatusBadRequest, MsgWrongPassword},
		{"no purchases", service.ErrNoPurchases, http.StatusNotFound, MsgNoRecords},
		{"no bookings", service.ErrNoBookings, http.StatusNotFound, MsgNoRecords},
		{"already coach", service.ErrAlreadyCoach, http.StatusConflict, MsgAlreadyCoach},
		{"not coach", service.ErrNotCoach, http.StatusBadRequest, MsgNotCoach},
		{"no courses", service.ErrNoCourses, http.StatusBadRequest, MsgCoachNotFound},
		{"capacity", service.ErrCapacityBelowBookings, http.StatusBadRequest, MsgInvalidFields},
		{"bad image", service.ErrUnsupportedImage, http.StatusBadRequest, MsgInvalidFields},
		{"uploads disabled", service.ErrUploadDisabled, http.StatusServiceUnavailable, shared.ServerErrorMessage},
		{"booking: course", booking.ErrCourseNotFound, http.StatusBadRequest, MsgInvalidID},
		{"booking: duplicate", booking.ErrAlreadyBooked, http.StatusBadRequest, MsgAlreadyBooked},
		{"booking: credit", booking.ErrInsufficientCredit, http.StatusBadRequest, MsgNoCredit},
		{"booking: full", booking.ErrCourseFull, http.StatusBadRequest, MsgCourseFull},
		{"booking: none", booking.ErrBookingNotFound, http.StatusBadRequest, MsgInvalidID},
		{"booking: cancel", booking.ErrCancelFailed, http.StatusBadRequest, MsgCancelFailed},
		{"booking: user", booking.ErrUserNotFound, http.StatusUnauthorized, MsgInvalidToken},
		{
			"booking: store failure hides wrapped store error",
			fmt.Errorf("%w: %w", booking.ErrStoreUnavailable, store.ErrCourseNotFound),
			http.StatusInternalServerError, shared.ServerErrorMessage,
		},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, MsgInvalidToken},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, MsgNotLoggedIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.message, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Run("message override for client errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(rec, req, store.ErrSkillNotFound, MsgInvalidFields)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), MsgInvalidFields)
		assert.Contains(t, rec.Body.String(), `"status":"failed"`)
	})

	t.Run("override ignored for server errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(rec, req, errors.New("db down: password=hunter2"), "details")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"error"`)
		assert.Contains(t, rec.Body.String(), shared.ServerErrorMessage)
		assert.NotContains(t, rec.Body.String(), "hunter2")
		assert.NotContains(t, rec.Body.String(), "details")
	})
}
