package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gate-pass-service/internal/auth"
)

// RequireOp returns a middleware that enforces the capability table for a
// single operation. It assumes JWTAuth already stored the role claim in the
// context; a missing or unknown role is treated the same as an insufficient
// one. The check runs before the handler, so a forbidden request never
// touches the store.
func RequireOp(op auth.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, _ := c.Get(CtxRole).(string)
			role, ok := auth.ParseRole(v)
			if !ok || !auth.Allowed(role, op) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "FORBIDDEN", "message": "insufficient role"})
			}
			return next(c)
		}
	}
}
