package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"gitea.com/go-chi/session"
	"github.com/blogem/actionlog/authenticator"
	"github.com/blogem/actionlog/models"
	"github.com/blogem/actionlog/services"
	"go.uber.org/zap"
)

// ActionLogin is the audit action recorded for a completed interactive login
const ActionLogin = "login"

// AuthController handles the OpenID Connect login flow
type AuthController struct {
	provider authenticator.Provider
	services *services.Services
	logger   *zap.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(provider authenticator.Provider, services *services.Services, logger *zap.Logger) *AuthController {
	return &AuthController{
		provider: provider,
		services: services,
		logger:   logger,
	}
}

// Login handles GET /login by redirecting to the identity provider
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	// Generate random state
	state, err := generateRandomState()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate state")
		return
	}

	// Save the state in the session to validate in callback
	sess := session.GetSession(r)
	sess.Set("state", state)

	http.Redirect(w, r, ac.provider.GetAuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles GET /callback from the identity provider.
// The user must already exist in the user store; the login is recorded as an audit entry.
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)

	// Verify state
	storedState, ok := sess.Get("state").(string)
	if !ok || storedState == "" {
		writeError(w, http.StatusBadRequest, "state not found in session")
		return
	}
	if r.URL.Query().Get("state") != storedState {
		writeError(w, http.StatusBadRequest, "invalid state parameter")
		return
	}
	sess.Delete("state")

	token, err := ac.provider.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "failed to exchange authorization code for a token")
		return
	}

	claims, err := ac.provider.GetClaims(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "failed to verify ID token")
		return
	}

	username := claims.Username()
	user, err := ac.services.Users.FindByUsername(r.Context(), username)
	if err != nil {
		ac.logger.Error("failed to load user", zap.String("username", username), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		writeError(w, http.StatusForbidden, "unknown user")
		return
	}

	response := models.TokenResponse{
		Username:  user.Username,
		IDToken:   token.IDToken,
		ExpiresAt: time.Unix(token.Expiry, 0).UTC(),
	}

	// A login that cannot be audited is refused
	if _, err := ac.services.Logging.LogAction(r.Context(), user.Username, ActionLogin, describeCallback(r), describeLogin(response)); err != nil {
		ac.logger.Error("failed to record login", zap.String("username", user.Username), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record login")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// describeCallback summarizes the callback request without the authorization code
func describeCallback(r *http.Request) string {
	data, _ := json.Marshal(map[string]string{
		"method": r.Method,
		"path":   r.URL.Path,
	})
	return string(data)
}

// describeLogin summarizes the login response without the token itself
func describeLogin(resp models.TokenResponse) string {
	data, _ := json.Marshal(map[string]interface{}{
		"status":     http.StatusOK,
		"username":   resp.Username,
		"expires_at": resp.ExpiresAt,
	})
	return string(data)
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
