package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/unibook/room-reservation/internal/model"
)

// RequireRole returns a middleware that enforces that the
// authenticated caller has one of the given roles. Role comparison is
// exact; unknown or missing roles are rejected with 403. It assumes
// JWTAuth has already stored the role under the "role" context key.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, _ := c.Get("role").(string)
			role, ok := model.ParseRole(v)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
