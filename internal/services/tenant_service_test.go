package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"notehub/internal/common"
	"notehub/internal/models"
)

type TenantServiceTestSuite struct {
	suite.Suite
	tenantRepo *MockTenantRepository
	cache      *MockTenantCache
	service    TenantService
	tenant     *models.Tenant
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.tenantRepo = &MockTenantRepository{}
	suite.cache = &MockTenantCache{}
	suite.service = NewTenantService(suite.tenantRepo, suite.cache, NewAccessPolicy(), zap.NewNop())

	suite.tenant = &models.Tenant{
		ID:   uuid.New(),
		Slug: "acme",
		Name: "Acme Corporation",
		Plan: models.PlanFree,
	}

	suite.tenantRepo.Test(suite.T())
	suite.cache.Test(suite.T())
}

func (suite *TenantServiceTestSuite) TearDownTest() {
	suite.tenantRepo.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}

func adminSession(tenant *models.Tenant) *common.Session {
	return &common.Session{
		UserID:     uuid.New(),
		Email:      "admin@" + tenant.Slug + ".test",
		Role:       models.RoleAdmin,
		TenantID:   tenant.ID,
		TenantSlug: tenant.Slug,
	}
}

func (suite *TenantServiceTestSuite) TestGetBySlug_CacheHit() {
	ctx := context.Background()

	suite.cache.On("GetBySlug", ctx, "acme").Return(suite.tenant, nil)

	tenant, err := suite.service.GetBySlug(ctx, "acme")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.tenant, tenant)
	suite.tenantRepo.AssertNotCalled(suite.T(), "GetBySlug", mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestGetBySlug_CacheMissFillsCache() {
	ctx := context.Background()

	suite.cache.On("GetBySlug", ctx, "acme").Return(nil, nil)
	suite.tenantRepo.On("GetBySlug", ctx, "acme").Return(suite.tenant, nil)
	suite.cache.On("Set", ctx, suite.tenant, tenantCacheTTL).Return(nil)

	tenant, err := suite.service.GetBySlug(ctx, "acme")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.tenant, tenant)
}

func (suite *TenantServiceTestSuite) TestGetBySlug_CacheErrorFallsThrough() {
	ctx := context.Background()

	suite.cache.On("GetBySlug", ctx, "acme").Return(nil, errors.New("redis down"))
	suite.tenantRepo.On("GetBySlug", ctx, "acme").Return(suite.tenant, nil)
	suite.cache.On("Set", ctx, suite.tenant, tenantCacheTTL).Return(errors.New("redis down"))

	tenant, err := suite.service.GetBySlug(ctx, "acme")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.tenant, tenant)
}

func (suite *TenantServiceTestSuite) TestUpgrade_AdminOwnTenant() {
	ctx := context.Background()

	upgraded := &models.Tenant{ID: suite.tenant.ID, Slug: "acme", Name: suite.tenant.Name, Plan: models.PlanPro}
	suite.tenantRepo.On("UpdatePlan", ctx, "acme", models.PlanPro).Return(upgraded, nil)
	suite.cache.On("Delete", ctx, "acme").Return(nil)

	tenant, err := suite.service.Upgrade(ctx, adminSession(suite.tenant), "acme")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PlanPro, tenant.Plan)
}

func (suite *TenantServiceTestSuite) TestUpgrade_AlreadyProIsNoOpSuccess() {
	ctx := context.Background()

	pro := &models.Tenant{ID: suite.tenant.ID, Slug: "acme", Name: suite.tenant.Name, Plan: models.PlanPro}
	suite.tenantRepo.On("UpdatePlan", ctx, "acme", models.PlanPro).Return(pro, nil)
	suite.cache.On("Delete", ctx, "acme").Return(nil)

	tenant, err := suite.service.Upgrade(ctx, adminSession(pro), "acme")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PlanPro, tenant.Plan)
}

func (suite *TenantServiceTestSuite) TestUpgrade_MemberIsForbidden() {
	ctx := context.Background()

	session := &common.Session{
		UserID:     uuid.New(),
		Email:      "user@acme.test",
		Role:       models.RoleMember,
		TenantID:   suite.tenant.ID,
		TenantSlug: "acme",
	}

	tenant, err := suite.service.Upgrade(ctx, session, "acme")
	assert.Nil(suite.T(), tenant)
	assert.ErrorIs(suite.T(), err, common.ErrForbidden)
	suite.tenantRepo.AssertNotCalled(suite.T(), "UpdatePlan", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestUpgrade_AdminOtherTenantIsForbidden() {
	ctx := context.Background()

	tenant, err := suite.service.Upgrade(ctx, adminSession(suite.tenant), "globex")
	assert.Nil(suite.T(), tenant)
	assert.ErrorIs(suite.T(), err, common.ErrForbidden)
	suite.tenantRepo.AssertNotCalled(suite.T(), "UpdatePlan", mock.Anything, mock.Anything, mock.Anything)
}
