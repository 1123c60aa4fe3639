package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ekinsu/learnhub/internal/utils"
)

// RequireRole returns a middleware that enforces that the authenticated
// user has one of the specified roles. It assumes JWTAuth ran earlier and
// stored the role in the context under "role". An authenticated user with
// the wrong role gets 403, never 400: validation of the body only happens
// after the gate.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	// Build a set of allowed roles for constant-time lookups.
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return utils.Fail(c, http.StatusForbidden, "forbidden: insufficient role")
			}
			return next(c)
		}
	}
}
