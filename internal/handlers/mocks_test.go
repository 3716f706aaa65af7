package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"notehub/internal/common"
	"notehub/internal/models"
	"notehub/internal/services"
)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Note), args.Error(1)
}

func (m *MockNoteService) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteService) Create(ctx context.Context, session *common.Session, title, content string) (*models.Note, error) {
	args := m.Called(ctx, session, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteService) Update(ctx context.Context, tenantID, id uuid.UUID, title, content string) (*models.Note, error) {
	args := m.Called(ctx, tenantID, id, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResult), args.Error(1)
}

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantService) Upgrade(ctx context.Context, session *common.Session, targetSlug string) (*models.Tenant, error) {
	args := m.Called(ctx, session, targetSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}
