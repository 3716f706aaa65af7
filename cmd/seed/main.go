package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"notehub/internal/config"
	"notehub/internal/models"
	"notehub/internal/repositories"
	"notehub/pkg/database"
)

// Seeds the demo fixture: two FREE tenants with an admin and a member each,
// all with the password "password".
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(cfg.DB.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()

	// Clear existing data; notes first to satisfy FK ordering
	for _, table := range []string{"notes", "users", "tenants"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("Failed to clear %s: %v", table, err)
		}
	}

	tenantRepo := repositories.NewTenantRepo(pool)
	userRepo := repositories.NewUserRepo(pool)

	tenants := []*models.Tenant{
		{ID: uuid.New(), Slug: "acme", Name: "Acme Corporation", Plan: models.PlanFree},
		{ID: uuid.New(), Slug: "globex", Name: "Globex Corporation", Plan: models.PlanFree},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	for _, tenant := range tenants {
		if err := tenantRepo.Create(ctx, tenant); err != nil {
			log.Fatalf("Failed to create tenant %s: %v", tenant.Slug, err)
		}

		users := []*models.User{
			{ID: uuid.New(), TenantID: tenant.ID, Email: "admin@" + tenant.Slug + ".test", PasswordHash: string(hash), Role: models.RoleAdmin},
			{ID: uuid.New(), TenantID: tenant.ID, Email: "user@" + tenant.Slug + ".test", PasswordHash: string(hash), Role: models.RoleMember},
		}
		for _, user := range users {
			if err := userRepo.Create(ctx, user); err != nil {
				log.Fatalf("Failed to create user %s: %v", user.Email, err)
			}
		}

		log.Printf("Seeded tenant %s with admin and member users", tenant.Slug)
	}

	log.Println("Database seeded successfully")
}
