package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notehub/internal/models"
)

func TestCanCreateNote(t *testing.T) {
	policy := NewAccessPolicy()

	tests := []struct {
		name  string
		plan  models.Plan
		count int
		want  bool
	}{
		{"free plan empty tenant", models.PlanFree, 0, true},
		{"free plan below cap", models.PlanFree, 2, true},
		{"free plan at cap", models.PlanFree, 3, false},
		{"free plan above cap", models.PlanFree, 4, false},
		{"pro plan empty tenant", models.PlanPro, 0, true},
		{"pro plan at free cap", models.PlanPro, 3, true},
		{"pro plan far beyond free cap", models.PlanPro, 1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanCreateNote(tt.plan, tt.count))
		})
	}
}

func TestCanUpgrade(t *testing.T) {
	policy := NewAccessPolicy()

	tests := []struct {
		name       string
		role       models.Role
		actorSlug  string
		targetSlug string
		want       bool
	}{
		{"admin upgrading own tenant", models.RoleAdmin, "acme", "acme", true},
		{"admin upgrading another tenant", models.RoleAdmin, "acme", "globex", false},
		{"member upgrading own tenant", models.RoleMember, "acme", "acme", false},
		{"member upgrading another tenant", models.RoleMember, "acme", "globex", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanUpgrade(tt.role, tt.actorSlug, tt.targetSlug))
		})
	}
}
