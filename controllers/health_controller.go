package controllers

import (
	"net/http"

	"github.com/blogem/actionlog/models"
)

// HealthController reports service liveness
type HealthController struct{}

// NewHealthController creates a new health controller
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Index handles GET /health
func (c *HealthController) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "healthy", Service: "actionlog"})
}
