package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrItineraryNotFound is returned when an itinerary does not exist or
	// is owned by another user; the two cases are deliberately
	// indistinguishable.
	ErrItineraryNotFound = errors.New("Itinerary not found")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("Email already registered")
	// ErrEmailPasswordRequired is returned when a register/login body is
	// missing email or password.
	ErrEmailPasswordRequired = errors.New("Email and password required")
	// ErrTitleDestinationRequired is returned when creating an itinerary
	// without title or destination.
	ErrTitleDestinationRequired = errors.New("Title and destination required")
	// ErrDestinationRequired is returned when generation is requested
	// without a destination.
	ErrDestinationRequired = errors.New("Destination required")
	// ErrStoreUnavailable is returned when the backing store is not
	// configured or unreachable. Protected routes fail closed with it.
	ErrStoreUnavailable = errors.New("Database not configured")
)

// ErrorResponse is the client-visible failure body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HTTPError pairs an HTTP status with a response body.
type HTTPError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// ToErrorResponse converts an HTTPError to the client body shape.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Details: e.Details}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become
// a generic 500 so internal diagnostics never leak past Details.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrItineraryNotFound):
		return NewHTTPError(http.StatusNotFound, ErrItineraryNotFound.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error())
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrEmailPasswordRequired),
		errors.Is(err, ErrTitleDestinationRequired),
		errors.Is(err, ErrDestinationRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrStoreUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrStoreUnavailable.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
