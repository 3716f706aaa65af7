package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"notehub/internal/common"
	"notehub/internal/metrics"
	"notehub/internal/models"
	"notehub/internal/services"
)

// NoteHandlers handles note-related HTTP requests
type NoteHandlers struct {
	noteService services.NoteService
}

func NewNoteHandlers(noteService services.NoteService) *NoteHandlers {
	return &NoteHandlers{noteService: noteService}
}

// NoteRequest is the create/update payload
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListNotes returns all notes of the acting tenant, newest first
func (h *NoteHandlers) ListNotes(c echo.Context) error {
	ctx := c.Request().Context()

	session, ok := common.SessionFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "Not authenticated")
	}

	notes, err := h.noteService.List(ctx, session.TenantID)
	if err != nil {
		return writeServiceError(c, "Note", err)
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	return c.JSON(http.StatusOK, notes)
}

// GetNote returns a single note scoped to the acting tenant
func (h *NoteHandlers) GetNote(c echo.Context) error {
	ctx := c.Request().Context()

	session, ok := common.SessionFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "Not authenticated")
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		// A malformed id can never reference an existing note
		return common.SendNotFoundError(c, "Note")
	}

	note, err := h.noteService.Get(ctx, session.TenantID, id)
	if err != nil {
		return writeServiceError(c, "Note", err)
	}

	return c.JSON(http.StatusOK, note)
}

// CreateNote creates a note for the acting tenant, enforcing the plan cap
func (h *NoteHandlers) CreateNote(c echo.Context) error {
	ctx := c.Request().Context()

	session, ok := common.SessionFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "Not authenticated")
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	note, err := h.noteService.Create(ctx, session, req.Title, req.Content)
	if err != nil {
		return writeServiceError(c, "Note", err)
	}

	metrics.NoteCreatedCounter.Inc()
	return c.JSON(http.StatusCreated, note)
}

// UpdateNote updates a note's title and content
func (h *NoteHandlers) UpdateNote(c echo.Context) error {
	ctx := c.Request().Context()

	session, ok := common.SessionFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "Not authenticated")
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendNotFoundError(c, "Note")
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	note, err := h.noteService.Update(ctx, session.TenantID, id, req.Title, req.Content)
	if err != nil {
		return writeServiceError(c, "Note", err)
	}

	return c.JSON(http.StatusOK, note)
}

// DeleteNote deletes a note; deleting an already-deleted id is a 404
func (h *NoteHandlers) DeleteNote(c echo.Context) error {
	ctx := c.Request().Context()

	session, ok := common.SessionFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "Not authenticated")
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendNotFoundError(c, "Note")
	}

	if err := h.noteService.Delete(ctx, session.TenantID, id); err != nil {
		return writeServiceError(c, "Note", err)
	}

	return c.NoContent(http.StatusNoContent)
}
