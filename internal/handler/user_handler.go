package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"notesapi/internal/service"
)

// UserHandler serves the caller's profile.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(err)
	}
	user, err := h.svc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}
