package services

import (
	"context"

	"github.com/google/uuid"

	"notehub/internal/common"
	"notehub/internal/models"
	"notehub/internal/repositories"
)

type NoteService interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error)
	Create(ctx context.Context, session *common.Session, title, content string) (*models.Note, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, title, content string) (*models.Note, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type noteService struct {
	noteRepo  repositories.NoteRepository
	tenantSvc TenantService
	policy    *AccessPolicy
}

func NewNoteService(noteRepo repositories.NoteRepository, tenantSvc TenantService, policy *AccessPolicy) NoteService {
	return &noteService{
		noteRepo:  noteRepo,
		tenantSvc: tenantSvc,
		policy:    policy,
	}
}

func validateNoteInput(title, content string) error {
	if title == "" {
		return &common.ValidationError{Field: "title", Message: "title is required"}
	}
	if content == "" {
		return &common.ValidationError{Field: "content", Message: "content is required"}
	}
	return nil
}

func (s *noteService) List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error) {
	return s.noteRepo.List(ctx, tenantID)
}

func (s *noteService) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error) {
	return s.noteRepo.GetByID(ctx, tenantID, id)
}

func (s *noteService) Create(ctx context.Context, session *common.Session, title, content string) (*models.Note, error) {
	if err := validateNoteInput(title, content); err != nil {
		return nil, err
	}

	// Plan is read from the store, not the token, so an upgrade takes
	// effect on the very next create.
	tenant, err := s.tenantSvc.GetBySlug(ctx, session.TenantSlug)
	if err != nil {
		return nil, err
	}

	count, err := s.noteRepo.CountByTenant(ctx, session.TenantID)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanCreateNote(tenant.Plan, count) {
		return nil, common.ErrPlanLimit
	}

	note := &models.Note{
		ID:       uuid.New(),
		TenantID: session.TenantID,
		AuthorID: session.UserID,
		Title:    title,
		Content:  content,
		Author:   &models.NoteAuthor{Email: session.Email},
	}

	if tenant.Plan == models.PlanFree {
		// The capped insert re-checks the count under the tenant row lock;
		// the policy check above is the fast path only.
		err = s.noteRepo.CreateCapped(ctx, note, FreePlanNoteLimit)
	} else {
		err = s.noteRepo.Create(ctx, note)
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Update(ctx context.Context, tenantID, id uuid.UUID, title, content string) (*models.Note, error) {
	if err := validateNoteInput(title, content); err != nil {
		return nil, err
	}

	// Any same-tenant member may edit any note; there is no
	// ownership check beyond the tenant scope.
	if err := s.noteRepo.Update(ctx, tenantID, id, title, content); err != nil {
		return nil, err
	}
	return s.noteRepo.GetByID(ctx, tenantID, id)
}

func (s *noteService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.noteRepo.Delete(ctx, tenantID, id)
}
