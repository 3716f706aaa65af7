package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notehub/internal/caching"
	"notehub/internal/common"
	"notehub/internal/models"
	"notehub/internal/repositories"
)

const tenantCacheTTL = 5 * time.Minute

type TenantService interface {
	// GetBySlug reads through the tenant cache.
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	// Upgrade sets the target tenant's plan to PRO. Admins only, own tenant
	// only; upgrading an already-PRO tenant is a no-op success.
	Upgrade(ctx context.Context, session *common.Session, targetSlug string) (*models.Tenant, error)
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	cache      caching.TenantCache
	policy     *AccessPolicy
	logger     *zap.Logger
}

func NewTenantService(tenantRepo repositories.TenantRepository, cache caching.TenantCache, policy *AccessPolicy, logger *zap.Logger) TenantService {
	return &tenantService{
		tenantRepo: tenantRepo,
		cache:      cache,
		policy:     policy,
		logger:     logger,
	}
}

func (s *tenantService) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	cached, err := s.cache.GetBySlug(ctx, slug)
	if err != nil {
		// Cache trouble must not fail the request
		s.logger.Warn("tenant cache read failed", zap.String("slug", slug), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, tenant, tenantCacheTTL); err != nil {
		s.logger.Warn("tenant cache write failed", zap.String("slug", slug), zap.Error(err))
	}
	return tenant, nil
}

func (s *tenantService) Upgrade(ctx context.Context, session *common.Session, targetSlug string) (*models.Tenant, error) {
	if !s.policy.CanUpgrade(session.Role, session.TenantSlug, targetSlug) {
		return nil, common.ErrForbidden
	}

	tenant, err := s.tenantRepo.UpdatePlan(ctx, targetSlug, models.PlanPro)
	if err != nil {
		return nil, err
	}

	// Drop the cached entry so the next plan read sees PRO immediately.
	if err := s.cache.Delete(ctx, targetSlug); err != nil {
		s.logger.Warn("tenant cache invalidation failed", zap.String("slug", targetSlug), zap.Error(err))
	}

	s.logger.Info("tenant upgraded",
		zap.String("slug", tenant.Slug),
		zap.String("plan", string(tenant.Plan)),
		zap.String("actor", session.Email),
	)
	return tenant, nil
}
