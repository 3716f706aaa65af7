package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"notehub/internal/common"
	"notehub/internal/metrics"
	"notehub/internal/services"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login with email and password
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.Email == "" || req.Password == "" {
		return common.SendClientError(c, "Email and password are required")
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			metrics.LoginCounter.WithLabelValues("failure").Inc()
		}
		return writeServiceError(c, "User", err)
	}

	metrics.LoginCounter.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, result)
}
