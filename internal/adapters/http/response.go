package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/core/internal/domain/entities"
)

// Envelope is the response shape shared by every endpoint: successes carry
// data, failures carry a message, never both.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK writes a success envelope with the given status code.
func OK(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, Envelope{Success: true, Data: data})
}

// Fail writes a failure envelope with the given status code.
func Fail(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{Success: false, Error: message})
}

// FailFromError maps a domain error to its HTTP status and a caller-safe
// message. Unexpected errors become a generic 500; their details belong in
// the server log, not the response body.
func FailFromError(c echo.Context, err error) error {
	var validationErr *entities.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return Fail(c, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, entities.ErrInvalidCredentials):
		return Fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, entities.ErrMissingToken):
		return Fail(c, http.StatusUnauthorized, "Authorization token required")
	case errors.Is(err, entities.ErrInvalidToken):
		return Fail(c, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, entities.ErrTaskNotFound):
		return Fail(c, http.StatusNotFound, "Task not found")
	case errors.Is(err, entities.ErrUserNotFound):
		return Fail(c, http.StatusNotFound, "User not found")
	case errors.Is(err, entities.ErrEmailExists):
		return Fail(c, http.StatusConflict, "User with this email already exists")
	default:
		return Fail(c, http.StatusInternalServerError, "Internal server error")
	}
}
