package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/livefit/livefit-api/internal/api/shared"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/livefit/livefit-api/internal/service/auth"
	"github.com/livefit/livefit-api/internal/store"
)

// Messages returned by the authentication middleware.
const (
	MsgNotLoggedIn  = "尚未登入！"
	MsgInvalidToken = "無效的token"
	MsgNotCoach     = "使用者尚未成為教練"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, users store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// Authenticate validates the bearer token, checks that its user still
// exists and stores the user's id and current role in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgNotLoggedIn)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrExpiredToken) {
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgInvalidToken, err,
					shared.WithElevatedLogLevel())
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "", err)
			return
		}

		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgInvalidToken, err,
					shared.WithElevatedLogLevel())
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "", err)
			return
		}

		ctx := shared.WithUser(r.Context(), user.ID, user.Role)
		log := logger.FromContext(ctx).With(slog.String("user_id", user.ID.String()))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCoach rejects requests whose authenticated user is not a coach.
// It must run after Authenticate.
func RequireCoach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := shared.UserRole(r.Context())
		if !ok || role != domain.RoleCoach {
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgNotCoach)
			return
		}
		next.ServeHTTP(w, r)
	})
}
