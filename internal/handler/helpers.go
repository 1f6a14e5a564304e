package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"notesapi/internal/auth"
	"notesapi/internal/errors"
)

// ClaimsContextKey is where the JWT middleware stores verified claims.
const ClaimsContextKey = "user"

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// callerClaims returns the verified claims of the request. The router only
// mounts protected handlers behind the JWT middleware, so a miss is a 401.
func callerClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok || claims == nil || claims.UserID == 0 {
		return nil, errors.ErrInvalidToken
	}
	return claims, nil
}

func callerID(c echo.Context) (uint, error) {
	claims, err := callerClaims(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func noteIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid note id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// tagNameParam returns the decoded tag name. Echo matches on the raw path
// when the request carries one (for example an escaped "/"), leaving the
// param escaped.
func tagNameParam(c echo.Context) (string, error) {
	name := c.Param("name")
	if c.Request().URL.RawPath == "" {
		return name, nil
	}
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", badRequest("invalid tag name")
	}
	return decoded, nil
}

// respondError converts a domain error into an echo.HTTPError. The cause
// is kept as the internal error for logging and never sent to the client.
func respondError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: msg,
		Code:  "VALIDATION_ERROR",
	})
}
