package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gate-pass-service/internal/utils"
)

// Context keys set by JWTAuth for downstream middleware and handlers.
const (
	CtxAccountID = "account_id"
	CtxRole      = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and role claims into the request context.
// The role placed in context is the snapshot from issuance time; no fresh
// account lookup happens here. Every failure mode (missing header, bad
// signature, expiry) answers the same 401 so callers only learn that they
// must log in again.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "UNAUTHENTICATED", "message": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "UNAUTHENTICATED", "message": "invalid or expired token"})
			}

			c.Set(CtxAccountID, claims.AccountID)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}
