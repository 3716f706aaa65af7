package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"notehub/internal/common"
	"notehub/internal/metrics"
	"notehub/pkg/logger"
)

// writeServiceError maps the service error taxonomy to HTTP responses.
// Anything outside the taxonomy is logged server-side and surfaces as a
// generic 500 with no internal detail.
func writeServiceError(c echo.Context, resource string, err error) error {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		return common.SendValidationError(c, ve.Field, ve.Message)
	case errors.Is(err, common.ErrPlanLimit):
		metrics.PlanLimitRejectionCounter.Inc()
		return common.SendForbiddenError(c, "Free plan limit reached. Upgrade to Pro to create more notes.")
	case errors.Is(err, common.ErrForbidden):
		return common.SendForbiddenError(c, "Forbidden")
	case errors.Is(err, common.ErrUnauthenticated):
		return common.SendUnauthorizedError(c, "Invalid credentials")
	case errors.Is(err, common.ErrNotFound):
		return common.SendNotFoundError(c, resource)
	default:
		logger.FromContext(c).Error("unexpected error", zap.Error(err))
		return common.SendServerError(c, "Internal server error")
	}
}
