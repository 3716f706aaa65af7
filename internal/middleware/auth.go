package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"notehub/internal/common"
	"notehub/internal/services"
)

// Session verifies the bearer token on every protected request and attaches
// the resulting session to the request context. It is a pure function of the
// token; the store is not consulted.
func Session(tokens services.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return common.SendUnauthorizedError(c, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return common.SendUnauthorizedError(c, "Invalid token format")
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				return common.SendUnauthorizedError(c, "Invalid or expired token")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return common.SendUnauthorizedError(c, "Invalid user id in token")
			}
			tenantID, err := uuid.Parse(claims.TenantID)
			if err != nil {
				return common.SendUnauthorizedError(c, "Invalid tenant id in token")
			}

			session := &common.Session{
				UserID:     userID,
				Email:      claims.Email,
				Role:       claims.Role,
				TenantID:   tenantID,
				TenantSlug: claims.TenantSlug,
			}

			ctx := common.WithSession(c.Request().Context(), session)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
