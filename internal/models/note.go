package models

import (
	"time"

	"github.com/google/uuid"
)

// NoteAuthor is the author projection returned alongside notes.
type NoteAuthor struct {
	Email string `json:"email"`
}

type Note struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	TenantID  uuid.UUID   `json:"tenant_id" db:"tenant_id"`
	AuthorID  uuid.UUID   `json:"author_id" db:"author_id"`
	Title     string      `json:"title" db:"title"`
	Content   string      `json:"content" db:"content"`
	Author    *NoteAuthor `json:"author,omitempty"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
