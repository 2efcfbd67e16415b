package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler reports which collaborators this deployment has wired.
type HealthHandler struct {
	db           *gorm.DB
	aiConfigured bool
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *gorm.DB, aiConfigured bool) *HealthHandler {
	return &HealthHandler{db: db, aiConfigured: aiConfigured}
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status   string `json:"status"`
	Database bool   `json:"database"`
	AI       bool   `json:"ai"`
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Database: h.db != nil,
		AI:       h.aiConfigured,
	})
}
