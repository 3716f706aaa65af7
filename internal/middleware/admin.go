package middleware

import (
	"github.com/labstack/echo/v4"

	"notehub/internal/common"
	"notehub/internal/models"
)

// RequireAdmin gates a route group to admin users. Must run after Session.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := common.SessionFromContext(c.Request().Context())
			if !ok {
				return common.SendUnauthorizedError(c, "Not authenticated")
			}
			if session.Role != models.RoleAdmin {
				return common.SendForbiddenError(c, "Admin role required")
			}
			return next(c)
		}
	}
}
