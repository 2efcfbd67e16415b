package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wayfarer/internal/auth"
	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the register/login success body.
type AuthResponse struct {
	User  UserPayload `json:"user"`
	Token string      `json:"token"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body", "")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(apierrors.ErrEmailPasswordRequired.Error(), err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, AuthResponse{User: toUserPayload(user), Token: token})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body", "")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(apierrors.ErrEmailPasswordRequired.Error(), err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{User: toUserPayload(user), Token: token})
}

// Me godoc
// @Summary Return the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]UserPayload
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apierrors.ErrorResponse{Error: "Invalid token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPayload(user)})
}

// Logout godoc
// @Summary Logout
// @Description Tokens are stateless; the client simply discards its copy.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
