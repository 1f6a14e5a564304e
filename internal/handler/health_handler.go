package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Hello godoc
// @Summary Connectivity check for the frontend
// @Tags meta
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /hello [get]
func Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Hello! I'm a message that came from the backend",
	})
}

// Healthz reports liveness.
func Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
