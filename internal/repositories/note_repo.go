package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"notehub/internal/common"
	"notehub/internal/models"
)

// Every read, update, and delete is conjoined with tenant_id, so a note
// belonging to another tenant reads as not found rather than forbidden.
type NoteRepository interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	// CreateCapped inserts the note only if the tenant's current note count
	// is below cap. The count and insert run in one transaction holding the
	// tenant row lock, so concurrent creates against the cap serialize.
	CreateCapped(ctx context.Context, note *models.Note, cap int) error
	Update(ctx context.Context, tenantID, id uuid.UUID, title, content string) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error)
}

type noteRepo struct {
	db Database
}

func NewNoteRepo(db Database) NoteRepository {
	return &noteRepo{db: db}
}

const noteSelect = `
	SELECT n.id, n.tenant_id, n.author_id, n.title, n.content, n.created_at, n.updated_at, u.email
	FROM notes n
	JOIN users u ON u.id = n.author_id
`

func scanNote(row pgx.Row) (*models.Note, error) {
	note := &models.Note{Author: &models.NoteAuthor{}}
	err := row.Scan(&note.ID, &note.TenantID, &note.AuthorID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt, &note.Author.Email)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (r *noteRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error) {
	query := noteSelect + `
	WHERE n.tenant_id = $1
	ORDER BY n.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (r *noteRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error) {
	query := noteSelect + `
	WHERE n.tenant_id = $1 AND n.id = $2
	`
	note, err := scanNote(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return note, nil
}

const noteInsert = `
	INSERT INTO notes (id, tenant_id, author_id, title, content, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	RETURNING created_at, updated_at
`

func (r *noteRepo) Create(ctx context.Context, note *models.Note) error {
	return r.db.QueryRow(ctx, noteInsert, note.ID, note.TenantID, note.AuthorID, note.Title, note.Content).
		Scan(&note.CreatedAt, &note.UpdatedAt)
}

func (r *noteRepo) CreateCapped(ctx context.Context, note *models.Note, cap int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	// Lock the tenant row so two racing creates cannot both pass the count.
	if _, err := tx.Exec(ctx, `SELECT id FROM tenants WHERE id = $1 FOR UPDATE`, note.TenantID); err != nil {
		tx.Rollback(ctx)
		return err
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM notes WHERE tenant_id = $1`, note.TenantID).Scan(&count); err != nil {
		tx.Rollback(ctx)
		return err
	}

	if count >= cap {
		tx.Rollback(ctx)
		return common.ErrPlanLimit
	}

	if err := tx.QueryRow(ctx, noteInsert, note.ID, note.TenantID, note.AuthorID, note.Title, note.Content).
		Scan(&note.CreatedAt, &note.UpdatedAt); err != nil {
		tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

func (r *noteRepo) Update(ctx context.Context, tenantID, id uuid.UUID, title, content string) error {
	query := `
		UPDATE notes
		SET title = $1, content = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
	`
	tag, err := r.db.Exec(ctx, query, title, content, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *noteRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE tenant_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *noteRepo) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notes WHERE tenant_id = $1`, tenantID).Scan(&count)
	return count, err
}
