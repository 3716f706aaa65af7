package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"notehub/internal/models"
)

type contextKey string

const SessionKey contextKey = "session"

// Session is the verified identity attached to every authenticated request.
// It is built from token claims by the session middleware and never
// re-queried from the store within a request.
type Session struct {
	UserID     uuid.UUID
	Email      string
	Role       models.Role
	TenantID   uuid.UUID
	TenantSlug string
}

// WithSession returns a context carrying the given session.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// SessionFromContext extracts the authenticated session from the request context.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(SessionKey).(*Session)
	return s, ok
}

// GetTenantIDFromContext extracts the tenant ID from the request context.
func GetTenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return s.TenantID, true
}

// ValidateUUID validates a path or payload UUID parameter.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID: %v", fieldName, err)
	}

	return id, nil
}
