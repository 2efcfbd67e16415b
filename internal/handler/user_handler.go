package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wayfarer/internal/auth"
	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
	"wayfarer/internal/service"
)

// UserHandler handles user preference endpoints.
type UserHandler struct {
	authService service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// UpdatePreferences godoc
// @Summary Replace the user's preference document
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.JSONMap true "Preference document"
// @Success 200 {object} map[string]model.JSONMap
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /user/preferences [put]
func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apierrors.ErrorResponse{Error: "Invalid token"})
	}

	var prefs model.JSONMap
	if err := c.Bind(&prefs); err != nil {
		return badRequest("Invalid request body", "")
	}

	updated, err := h.authService.UpdatePreferences(c.Request().Context(), user.ID, prefs)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"preferences": updated})
}
