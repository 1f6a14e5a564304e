package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"notesapi/internal/service"
)

// NoteHandler handles note endpoints.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNoteRequest represents a note creation request.
type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

// UpdateNoteRequest represents a partial note update. Omitted or null tags
// leave the associations alone; an empty list clears them.
type UpdateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// ListNotes godoc
// @Summary List the caller's notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Note
// @Failure 401 {object} errors.ErrorResponse
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(err)
	}
	notes, err := h.noteService.ListNotes(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, notes)
}

// CreateNote godoc
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateNoteRequest true "Note data"
// @Success 201 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes [post]
func (h *NoteHandler) CreateNote(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(err)
	}

	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest("title and content are required")
	}

	note, err := h.noteService.CreateNote(c.Request().Context(), userID, service.CreateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, note)
}

// GetNote godoc
// @Summary Get one of the caller's notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [get]
func (h *NoteHandler) GetNote(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(err)
	}
	noteID, err := noteIDParam(c)
	if err != nil {
		return err
	}

	note, err := h.noteService.GetNote(c.Request().Context(), userID, noteID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// UpdateNote godoc
// @Summary Update one of the caller's notes
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Param request body UpdateNoteRequest true "Fields to change"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id} [put]
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(err)
	}
	noteID, err := noteIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	note, err := h.noteService.UpdateNote(c.Request().Context(), userID, noteID, service.UpdateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// DeleteNote godoc
// @Summary Delete one of the caller's notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(err)
	}
	noteID, err := noteIDParam(c)
	if err != nil {
		return err
	}

	if err := h.noteService.DeleteNote(c.Request().Context(), userID, noteID); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "note deleted successfully"})
}
