package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"notehub/internal/caching"
	"notehub/internal/repositories"
)

// HealthHandlers handles health check endpoints
type HealthHandlers struct {
	db    repositories.Database
	cache caching.TenantCache
}

func NewHealthHandlers(db repositories.Database, cache caching.TenantCache) *HealthHandlers {
	return &HealthHandlers{db: db, cache: cache}
}

// HealthCheck reports basic liveness
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"message":   "Server is healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}

	if err := h.cache.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Cache unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}
