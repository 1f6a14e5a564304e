package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"notesapi/internal/errors"
	"notesapi/internal/handler"
	"notesapi/internal/service"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth *handler.AuthHandler
	User *handler.UserHandler
	Note *handler.NoteHandler
	Tag  *handler.TagHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, log zerolog.Logger, authService service.AuthService, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", handler.Healthz)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.GET("/hello", handler.Hello)
	api.POST("/signup", h.Auth.Signup)
	api.POST("/token", h.Auth.Token)

	// Secured routes (require a valid, unrevoked bearer token)
	secured := api.Group("", JWTMiddleware(authService))

	secured.POST("/logout", h.Auth.Logout)
	secured.GET("/me", h.User.Me)

	secured.GET("/notes", h.Note.ListNotes)
	secured.POST("/notes", h.Note.CreateNote)
	secured.GET("/notes/:id", h.Note.GetNote)
	secured.PUT("/notes/:id", h.Note.UpdateNote)
	secured.DELETE("/notes/:id", h.Note.DeleteNote)

	secured.GET("/tags", h.Tag.ListTags)
	secured.GET("/tags/:name/notes", h.Tag.NotesByTag)
}

// JWTMiddleware authenticates requests through the auth service so that
// signature, expiry and revocation are all checked in one place. Verified
// claims are stored under handler.ClaimsContextKey.
func JWTMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Verify(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "invalid or expired token",
				Code:  "UNAUTHORIZED",
			}).SetInternal(err)
		},
	})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
