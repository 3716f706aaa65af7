package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"notehub/internal/common"
	"notehub/internal/metrics"
	"notehub/internal/services"
)

// TenantHandlers handles tenant administration HTTP requests
type TenantHandlers struct {
	tenantService services.TenantService
}

func NewTenantHandlers(tenantService services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService}
}

// UpgradeTenant upgrades the acting tenant to the PRO plan
func (h *TenantHandlers) UpgradeTenant(c echo.Context) error {
	ctx := c.Request().Context()

	session, ok := common.SessionFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "Not authenticated")
	}

	slug := c.Param("slug")
	if slug == "" {
		return common.SendClientError(c, "Tenant slug is required")
	}

	tenant, err := h.tenantService.Upgrade(ctx, session, slug)
	if err != nil {
		return writeServiceError(c, "Tenant", err)
	}

	metrics.TenantUpgradeCounter.Inc()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Successfully upgraded to Pro plan",
		"tenant":  tenant,
	})
}
