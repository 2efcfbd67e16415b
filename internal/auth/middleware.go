package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
)

// ContextUserKey is where the resolved user record is attached on the
// request context. The password hash never leaves the model's json:"-".
const ContextUserKey = "currentUser"

// UserFetcher is the slice of the user repository the gate needs.
type UserFetcher interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// ResolveUser runs after the JWT middleware has verified the token. It
// loads the user record for the embedded identifier and attaches it for
// downstream handlers. A user deleted after token issue is reported
// exactly like a bad token so record existence never leaks.
func ResolveUser(users UserFetcher) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return invalidToken()
			}
			claims, ok := token.Claims.(*Claims)
			if !ok || claims.UserID == "" {
				return invalidToken()
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return invalidToken()
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// valid signature but the account is gone; log the
					// distinction, report it as a bad token
					log.Printf("auth: token for missing user %s", userID)
					return invalidToken()
				}
				return echo.NewHTTPError(http.StatusServiceUnavailable, apierrors.ErrorResponse{
					Error: apierrors.ErrStoreUnavailable.Error(),
				})
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by ResolveUser.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}

func invalidToken() error {
	return echo.NewHTTPError(http.StatusUnauthorized, apierrors.ErrorResponse{Error: "Invalid token"})
}
