package services

import (
	"notehub/internal/models"
)

// FreePlanNoteLimit is the maximum number of notes a FREE tenant may hold.
const FreePlanNoteLimit = 3

// AccessPolicy is the pure authorization decision core. It never touches the
// store; callers supply the current plan, count, and identity.
type AccessPolicy struct{}

func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanCreateNote reports whether a tenant on the given plan with the given
// current note count may create another note.
func (p *AccessPolicy) CanCreateNote(plan models.Plan, currentNoteCount int) bool {
	if plan == models.PlanFree && currentNoteCount >= FreePlanNoteLimit {
		return false
	}
	return true
}

// CanUpgrade reports whether the actor may upgrade the target tenant:
// admins only, and only for their own tenant.
func (p *AccessPolicy) CanUpgrade(role models.Role, actorTenantSlug, targetTenantSlug string) bool {
	return role == models.RoleAdmin && actorTenantSlug == targetTenantSlug
}
