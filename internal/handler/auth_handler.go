package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"notesapi/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest carries an email and password. The email travels as
// "Nombre"; "email" is accepted too.
type CredentialsRequest struct {
	Nombre   string `json:"Nombre" validate:"required_without=Email"`
	Email    string `json:"email" validate:"required_without=Nombre"`
	Password string `json:"password" validate:"required"`
}

func (r CredentialsRequest) email() string {
	if r.Nombre != "" {
		return r.Nombre
	}
	return r.Email
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        interface{} `json:"user"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Registration data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return badRequest("Nombre and password are required")
	}

	if _, err := h.authService.Register(c.Request().Context(), req.email(), req.Password); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "user created successfully"})
}

// Token godoc
// @Summary Log in and obtain an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return badRequest("Nombre and password are required")
	}

	accessToken, user, err := h.authService.Authenticate(c.Request().Context(), req.email(), req.Password)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: accessToken,
		User:        user,
	})
}

// Logout godoc
// @Summary Revoke the presented access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return respondError(err)
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
}
