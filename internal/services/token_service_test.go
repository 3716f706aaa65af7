package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notehub/internal/common"
	"notehub/internal/models"
)

func testUserAndTenant() (*models.User, *models.Tenant) {
	tenant := &models.Tenant{
		ID:   uuid.New(),
		Slug: "acme",
		Name: "Acme Corporation",
		Plan: models.PlanFree,
	}
	user := &models.User{
		ID:       uuid.New(),
		TenantID: tenant.ID,
		Email:    "admin@acme.test",
		Role:     models.RoleAdmin,
	}
	return user, tenant
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 24)
	user, tenant := testUserAndTenant()

	token, err := svc.Issue(user, tenant)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, tenant.ID.String(), claims.TenantID)
	assert.Equal(t, "acme", claims.TenantSlug)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -1)
	user, tenant := testUserAndTenant()

	token, err := svc.Issue(user, tenant)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestVerifyWrongSecret(t *testing.T) {
	user, tenant := testUserAndTenant()

	token, err := NewTokenService("secret-one", 24).Issue(user, tenant)
	require.NoError(t, err)

	_, err = NewTokenService("secret-two", 24).Verify(token)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := NewTokenService("test-secret", 24)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, common.ErrUnauthenticated)
	}
}
