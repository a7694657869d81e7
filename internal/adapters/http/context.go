package http

import (
	"github.com/labstack/echo/v4"

	"github.com/taskflow/core/internal/ports"
)

// IdentityKey is the echo context key under which the authorization guard
// stores the resolved identity.
const IdentityKey = "identity"

// IdentityFromContext returns the identity the guard attached to the
// request. Handlers behind the guard can rely on it being present; the zero
// value is only seen if a route was wired without the middleware.
func IdentityFromContext(c echo.Context) ports.Claims {
	identity, _ := c.Get(IdentityKey).(ports.Claims)
	return identity
}
