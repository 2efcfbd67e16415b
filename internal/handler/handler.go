package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
)

// UserPayload is the client-visible slice of a user record. The password
// hash is excluded by construction, not just by tag.
type UserPayload struct {
	ID          uuid.UUID     `json:"id"`
	Email       string        `json:"email"`
	Name        string        `json:"name"`
	Preferences model.JSONMap `json:"preferences"`
}

func toUserPayload(u *model.User) UserPayload {
	return UserPayload{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Preferences: u.Preferences,
	}
}

// domainError maps a service error to its HTTP status and body.
func domainError(err error) error {
	httpErr := apierrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, details string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apierrors.ErrorResponse{Error: message, Details: details})
}
