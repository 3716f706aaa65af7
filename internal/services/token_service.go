package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"notehub/internal/common"
	"notehub/internal/models"
)

// SessionClaims is the claim set embedded in session tokens. Claims reflect
// the user and tenant state at issuance time; tokens are not revoked early.
// The tenant plan is deliberately absent so plan changes take effect on the
// next request, not the next login.
type SessionClaims struct {
	UserID     string      `json:"user_id"`
	Email      string      `json:"email"`
	Role       models.Role `json:"role"`
	TenantID   string      `json:"tenant_id"`
	TenantSlug string      `json:"tenant_slug"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(user *models.User, tenant *models.Tenant) (string, error)
	// Verify returns the claims of a valid token, or an error matching
	// common.ErrUnauthenticated for anything malformed, expired, or
	// signed with the wrong key.
	Verify(tokenString string) (*SessionClaims, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, expirationHours int) TokenService {
	return &tokenService{
		secret: []byte(secret),
		ttl:    time.Duration(expirationHours) * time.Hour,
	}
}

func (s *tokenService) Issue(user *models.User, tenant *models.Tenant) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		UserID:     user.ID.String(),
		Email:      user.Email,
		Role:       user.Role,
		TenantID:   tenant.ID.String(),
		TenantSlug: tenant.Slug,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "notehub",
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", common.ErrUnauthenticated)
	}
	return claims, nil
}
