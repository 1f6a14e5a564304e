package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesapi/internal/auth"
	"notesapi/internal/errors"
)

func newContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCallerID(t *testing.T) {
	c := newContext()
	_, err := callerID(c)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	c.Set(ClaimsContextKey, &auth.Claims{UserID: 0})
	_, err = callerID(c)
	assert.ErrorIs(t, err, errors.ErrInvalidToken)

	c.Set(ClaimsContextKey, &auth.Claims{UserID: 42})
	id, err := callerID(c)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestNoteIDParam(t *testing.T) {
	tests := []struct {
		raw  string
		want uint
		ok   bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := newContext()
			c.SetParamNames("id")
			c.SetParamValues(tt.raw)

			id, err := noteIDParam(c)
			if !tt.ok {
				var he *echo.HTTPError
				require.ErrorAs(t, err, &he)
				assert.Equal(t, http.StatusBadRequest, he.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestRespondError_KeepsCauseInternal(t *testing.T) {
	cause := errors.Persistence("list notes", fmt.Errorf("connection reset"))
	err := respondError(cause)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
	assert.Equal(t, errors.ErrorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"}, he.Message)
	assert.Equal(t, cause, he.Internal)
}

func TestCredentialsRequest_Email(t *testing.T) {
	assert.Equal(t, "a@b.com", CredentialsRequest{Nombre: "a@b.com", Email: "x@y.com"}.email())
	assert.Equal(t, "x@y.com", CredentialsRequest{Email: "x@y.com"}.email())
}

func TestTagNameParam(t *testing.T) {
	tests := []struct {
		target string
		param  string
		want   string
	}{
		{"/api/tags/a%2Fb/notes", "a%2Fb", "a/b"},
		{"/api/tags/c%20d/notes", "c d", "c d"},
		{"/api/tags/50%25/notes", "50%", "50%"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, tt.target, nil), httptest.NewRecorder())
			c.SetParamNames("name")
			c.SetParamValues(tt.param)

			name, err := tagNameParam(c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, name)
		})
	}
}
