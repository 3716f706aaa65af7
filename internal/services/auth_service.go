package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"notehub/internal/common"
	"notehub/internal/models"
	"notehub/internal/repositories"
)

// UserProjection is the user-facing login payload: no password hash, tenant
// embedded.
type UserProjection struct {
	ID     uuid.UUID      `json:"id"`
	Email  string         `json:"email"`
	Role   models.Role    `json:"role"`
	Tenant *models.Tenant `json:"tenant"`
}

type LoginResult struct {
	Token string          `json:"token"`
	User  *UserProjection `json:"user"`
}

type AuthService interface {
	// Login verifies the credentials and issues a session token. Unknown
	// email and wrong password both surface as common.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	userRepo   repositories.UserRepository
	tenantRepo repositories.TenantRepository
	tokens     TokenService
}

func NewAuthService(userRepo repositories.UserRepository, tenantRepo repositories.TenantRepository, tokens TokenService) AuthService {
	return &authService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		tokens:     tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	tenant, err := s.tenantRepo.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user, tenant)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User: &UserProjection{
			ID:     user.ID,
			Email:  user.Email,
			Role:   user.Role,
			Tenant: tenant,
		},
	}, nil
}
