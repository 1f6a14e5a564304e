package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"notesapi/internal/service"
)

// TagHandler handles tag endpoints.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// ListTags godoc
// @Summary List every tag
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Tag
// @Failure 401 {object} errors.ErrorResponse
// @Router /tags [get]
func (h *TagHandler) ListTags(c echo.Context) error {
	tags, err := h.tagService.ListTags(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, tags)
}

// NotesByTag godoc
// @Summary List the caller's notes carrying a tag
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param name path string true "Tag name"
// @Success 200 {array} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{name}/notes [get]
func (h *TagHandler) NotesByTag(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(err)
	}

	name, err := tagNameParam(c)
	if err != nil {
		return err
	}

	notes, err := h.tagService.NotesByTag(c.Request().Context(), userID, name)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, notes)
}
