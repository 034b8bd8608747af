package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/blogem/actionlog/authenticator"
	"github.com/blogem/actionlog/models"
	"github.com/blogem/actionlog/services"
	"go.uber.org/zap"
)

// writeJSON writes v as a JSON body with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body with the given status
func writeError(w http.ResponseWriter, status int, message string, details ...string) {
	writeJSON(w, status, models.ErrorResponse{Error: message, Details: details})
}

// Controllers holds all controller instances
type Controllers struct {
	Auth   *AuthController
	Users  *UserController
	Health *HealthController
}

// NewControllers creates and initializes all controller instances.
// provider may be nil when interactive login is not configured.
func NewControllers(services *services.Services, provider authenticator.Provider, logger *zap.Logger) *Controllers {
	return &Controllers{
		Auth:   NewAuthController(provider, services, logger),
		Users:  NewUserController(services, logger),
		Health: NewHealthController(),
	}
}
