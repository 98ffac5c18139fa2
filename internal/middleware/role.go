package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/iliyamo/sneaker-store/internal/model"
)

// RequireRole returns a middleware function that enforces that the
// authenticated user holds one of the specified roles.  Roles form a
// closed enumeration (model.Role); the JWT's string-valued "role" claim
// is converted and checked against it, so a claim naming an unknown
// role never passes.  Requests with a missing or disallowed role are
// aborted with a 403 Forbidden response.  It assumes JWTAuth has
// already stored the role in the context under the key "role".
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	// Build a set of allowed roles for constant-time lookups.
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("role")
			s, ok := v.(string)
			if !ok || !model.ValidRole(s) || !allowed[model.Role(s)] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
