package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/blogem/actionlog/authenticator"
	"github.com/blogem/actionlog/metrics"
	"github.com/blogem/actionlog/models"
	"github.com/blogem/actionlog/userctx"
	"go.uber.org/zap"
)

// UserFinder looks up users by username
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Reasons reported to the auth failure counter
const (
	reasonMissingToken = "missing_token"
	reasonInvalidToken = "invalid_token"
	reasonNoUsername   = "no_username"
	reasonUnknownUser  = "unknown_user"
	reasonForbidden    = "forbidden"
)

// RequireAuth ensures the request carries a valid bearer token for a known user.
// The user is loaded from the user store and placed in the request context.
func RequireAuth(verifier authenticator.TokenVerifier, users UserFinder, m *metrics.Metrics, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawToken, ok := bearerToken(r)
			if !ok {
				m.AuthFailed(reasonMissingToken)
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(r.Context(), rawToken)
			if err != nil {
				m.AuthFailed(reasonInvalidToken)
				logger.Debug("rejected bearer token", zap.Error(err))
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			username := claims.Username()
			if username == "" {
				m.AuthFailed(reasonNoUsername)
				writeError(w, http.StatusUnauthorized, "token carries no username")
				return
			}

			user, err := users.FindByUsername(r.Context(), username)
			if err != nil {
				logger.Error("failed to load user", zap.String("username", username), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to load user")
				return
			}
			if user == nil {
				m.AuthFailed(reasonUnknownUser)
				writeError(w, http.StatusUnauthorized, "unknown user")
				return
			}

			next.ServeHTTP(w, r.WithContext(userctx.SetUser(r.Context(), user)))
		})
	}
}

// RequireRole rejects authenticated users who do not hold role. It must run after RequireAuth.
func RequireRole(role string, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := userctx.GetUser(r.Context())
			if !ok || user.Role != role {
				m.AuthFailed(reasonForbidden)
				writeError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
