package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a tenant's subscription plan.
type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Slug      string    `json:"slug" db:"slug"`
	Name      string    `json:"name" db:"name"`
	Plan      Plan      `json:"plan" db:"plan"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
