package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-scribe/errors"
)

// TokenAuth returns an Echo middleware that requires the static API token
// as a bearer token or access_token cookie. An empty token disables the
// check.
func TokenAuth(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if token == "" {
			return next
		}
		return func(c echo.Context) error {
			got := extractToken(c)
			if got == "" {
				return errors.ErrUnauthenticated().WithDetail("reason", "missing authorization token")
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return errors.ErrUnauthenticated().WithDetail("reason", "invalid token")
			}
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	// Expected format: "Bearer <token>"
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	// Try cookie as fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
