package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"wayfarer/internal/auth"
	"wayfarer/internal/config"
	apierrors "wayfarer/internal/errors"
	"wayfarer/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	users auth.UserFetcher,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	itineraryHandler *handler.ItineraryHandler,
	generateHandler *handler.GenerateHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// Protected routes: token check, then user resolution
	secured := e.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(cfg.JWTSecret),
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.Claims)
			},
			ErrorHandler: jwtErrorHandler,
		}),
		auth.ResolveUser(users),
	)

	secured.GET("/auth/me", authHandler.Me)
	secured.PUT("/user/preferences", userHandler.UpdatePreferences)

	secured.GET("/itineraries", itineraryHandler.List)
	secured.GET("/itineraries/:id", itineraryHandler.Get)
	secured.POST("/itineraries", itineraryHandler.Create)
	secured.PUT("/itineraries/:id", itineraryHandler.Update)
	secured.DELETE("/itineraries/:id", itineraryHandler.Delete)

	secured.POST("/generate-itinerary", generateHandler.Generate)
}

// jwtErrorHandler keeps the auth failure contract: a missing header and a
// bad token are both 401, with distinct messages.
func jwtErrorHandler(c echo.Context, err error) error {
	if errors.Is(err, echojwt.ErrJWTMissing) {
		return echo.NewHTTPError(http.StatusUnauthorized, apierrors.ErrorResponse{Error: "No token provided"})
	}
	return echo.NewHTTPError(http.StatusUnauthorized, apierrors.ErrorResponse{Error: "Invalid token"})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
