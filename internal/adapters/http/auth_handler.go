package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// AuthHandler handles registration, login and profile requests
type AuthHandler struct {
	authService ports.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Email, password, name, and role are required")
	}

	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Registration failed", "error", err, "email", req.Email)
		return FailFromError(c, err)
	}

	return OK(c, http.StatusCreated, resp)
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Email and password are required")
	}

	resp, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Warnw("Login failed", "error", err, "email", req.Email)
		return FailFromError(c, err)
	}

	return OK(c, http.StatusOK, resp)
}

// GetProfile returns the authenticated user's record. The password hash is
// excluded by the entity's JSON tags.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	identity := IdentityFromContext(c)

	user, err := h.authService.GetProfile(c.Request().Context(), identity.UserID)
	if err != nil {
		h.logger.Errorw("Get profile failed", "error", err, "user_id", identity.UserID)
		return FailFromError(c, err)
	}

	return OK(c, http.StatusOK, user)
}

// UpdateProfile applies profile changes for the authenticated user
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	identity := IdentityFromContext(c)

	var req ports.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid profile fields")
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), identity.UserID, req)
	if err != nil {
		h.logger.Errorw("Update profile failed", "error", err, "user_id", identity.UserID)
		return FailFromError(c, err)
	}

	return OK(c, http.StatusOK, user)
}
