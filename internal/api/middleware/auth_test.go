package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/api/shared"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/mocks"
	"github.com/livefit/livefit-api/internal/service/auth"
	"github.com/livefit/livefit-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		authHeader     string
		validateErr    error
		userErr        error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing auth header",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    MsgNotLoggedIn,
		},
		{
			name:           "not a bearer header",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    MsgNotLoggedIn,
		},
		{
			name:           "empty bearer token",
			authHeader:     "Bearer ",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    MsgNotLoggedIn,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired-token",
			validateErr:    auth.ErrExpiredToken,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    MsgInvalidToken,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalid-token",
			validateErr:    auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    MsgInvalidToken,
		},
		{
			name:           "user no longer exists",
			authHeader:     "Bearer valid-token",
			userErr:        store.ErrUserNotFound,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    MsgInvalidToken,
		},
		{
			name:           "user lookup fails",
			authHeader:     "Bearer valid-token",
			userErr:        errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    shared.ServerErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService := &mocks.MockJWTService{
				ValidateErr: tt.validateErr,
				Claims:      &auth.Claims{UserID: userID, Role: domain.RoleUser},
			}
			users := new(mocks.MockUserStore)
			if tt.userErr != nil {
				users.On("GetByID", mock.Anything, userID).Return(nil, tt.userErr)
			} else {
				// The role is read from the store, not the token.
				users.On("GetByID", mock.Anything, userID).
					Return(&domain.User{ID: userID, Role: domain.RoleCoach}, nil)
			}

			var gotID uuid.UUID
			var gotRole domain.Role
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = shared.UserID(r.Context())
				gotRole, _ = shared.UserRole(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			NewAuthMiddleware(jwtService, users).Authenticate(next).ServeHTTP(rec, req)

			require.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, userID, gotID)
				assert.Equal(t, domain.RoleCoach, gotRole)
				return
			}
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedMsg, body.Message)
		})
	}
}

func TestRequireCoach(t *testing.T) {
	tests := []struct {
		name   string
		role   *domain.Role
		status int
	}{
		{"coach passes", rolePtr(domain.RoleCoach), http.StatusOK},
		{"user rejected", rolePtr(domain.RoleUser), http.StatusUnauthorized},
		{"unauthenticated rejected", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != nil {
				req = req.WithContext(shared.WithUser(req.Context(), uuid.New(), *tt.role))
			}
			rec := httptest.NewRecorder()

			RequireCoach(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusOK {
				assert.Contains(t, rec.Body.String(), MsgNotCoach)
			}
		})
	}
}

func TestTraceMiddleware(t *testing.T) {
	var traceID string
	h := NewTraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, traceID, 32)
}

func rolePtr(r domain.Role) *domain.Role { return &r }
