package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blogem/actionlog/models"
	"github.com/blogem/actionlog/repositories"
	"github.com/blogem/actionlog/services"
	"github.com/blogem/actionlog/userctx"
	"go.uber.org/zap"
)

// UserController handles user requests
type UserController struct {
	services *services.Services
	logger   *zap.Logger
}

// NewUserController creates a new user controller
func NewUserController(services *services.Services, logger *zap.Logger) *UserController {
	return &UserController{
		services: services,
		logger:   logger,
	}
}

// Me handles GET /api/me
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Create handles POST /api/users
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.UserForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := c.services.Users.CreateUser(r.Context(), &form)
	if err != nil {
		var ve models.ValidationErrors
		switch {
		case errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, "validation failed", ve.GetMessages()...)
		case errors.Is(err, repositories.ErrDuplicateUsername):
			writeError(w, http.StatusConflict, "username already exists")
		default:
			c.logger.Error("failed to create user", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
