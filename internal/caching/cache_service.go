package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"notehub/internal/models"
)

// TenantCache is a cache-aside store for tenant records. The tenant plan is
// re-read on every note creation, so this is the one entity worth caching;
// upgrade invalidates the entry to keep plan reads current.
type TenantCache interface {
	// GetBySlug returns the cached tenant or (nil, nil) on a miss.
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	Set(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error
	Delete(ctx context.Context, slug string) error
	Ping(ctx context.Context) error
}

type redisTenantCache struct {
	client *redis.Client
}

func NewRedisTenantCache(addr, password string, db int) TenantCache {
	// Accept redis:// and rediss:// style addresses as well as host:port
	parsedAddr := addr
	if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
		parsedAddr = hostPort
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	return &redisTenantCache{client: client}
}

func tenantKey(slug string) string {
	return fmt.Sprintf("notehub:tenant:%s", slug)
}

func (r *redisTenantCache) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	data, err := r.client.Get(ctx, tenantKey(slug)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var tenant models.Tenant
	if err := json.Unmarshal(data, &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *redisTenantCache) Set(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error {
	data, err := json.Marshal(tenant)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, tenantKey(tenant.Slug), data, ttl).Err()
}

func (r *redisTenantCache) Delete(ctx context.Context, slug string) error {
	return r.client.Del(ctx, tenantKey(slug)).Err()
}

func (r *redisTenantCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
