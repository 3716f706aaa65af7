package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"notehub/internal/common"
	"notehub/internal/models"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	UpdatePlan(ctx context.Context, slug string, plan models.Plan) (*models.Tenant, error)
	List(ctx context.Context) ([]*models.Tenant, error)
}

type tenantRepo struct {
	db Database
}

func NewTenantRepo(db Database) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, slug, name, plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, tenant.ID, tenant.Slug, tenant.Name, tenant.Plan)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, slug, name, plan, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&tenant.ID, &tenant.Slug, &tenant.Name, &tenant.Plan, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, slug, name, plan, created_at, updated_at
		FROM tenants
		WHERE slug = $1
	`
	err := r.db.QueryRow(ctx, query, slug).Scan(&tenant.ID, &tenant.Slug, &tenant.Name, &tenant.Plan, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return tenant, nil
}

// UpdatePlan sets the tenant's plan unconditionally and returns the updated
// row. Setting an already-held plan is a no-op success.
func (r *tenantRepo) UpdatePlan(ctx context.Context, slug string, plan models.Plan) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		UPDATE tenants
		SET plan = $1, updated_at = NOW()
		WHERE slug = $2
		RETURNING id, slug, name, plan, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, plan, slug).Scan(&tenant.ID, &tenant.Slug, &tenant.Name, &tenant.Plan, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) List(ctx context.Context) ([]*models.Tenant, error) {
	query := `
		SELECT id, slug, name, plan, created_at, updated_at
		FROM tenants
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant := &models.Tenant{}
		if err := rows.Scan(&tenant.ID, &tenant.Slug, &tenant.Name, &tenant.Plan, &tenant.CreatedAt, &tenant.UpdatedAt); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}
