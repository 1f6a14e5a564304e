package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"notesapi/docs" // swagger docs
	"notesapi/internal/auth"
	"notesapi/internal/cache"
	"notesapi/internal/config"
	"notesapi/internal/db"
	"notesapi/internal/handler"
	"notesapi/internal/logger"
	"notesapi/internal/repository"
	"notesapi/internal/router"
	"notesapi/internal/service"
)

// @title Notes API
// @version 1.0
// @description Personal notes with tags behind JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	gormDB, err := db.Open(cfg.DatabaseURL, &gorm.Config{
		Logger:         db.NewLogger(log, db.LevelFor(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, token revocation and user cache degraded")
	}
	defer cacheClient.Close()

	store := repository.NewStore(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	denylist := auth.NewRedisDenylist(cacheClient)

	// Initialize services
	authService := service.NewAuthService(store.Users(), jwtService, denylist)
	userService := service.NewUserService(store, cacheClient)
	noteService := service.NewNoteService(store)
	tagService := service.NewTagService(store)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(e, log, authService, router.Handlers{
		Auth: handler.NewAuthHandler(authService),
		User: handler.NewUserHandler(userService),
		Note: handler.NewNoteHandler(noteService),
		Tag:  handler.NewTagHandler(tagService),
	})

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		docs.SwaggerInfo.Host = host
	}
	log.Info().Str("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").Msg("swagger documentation available")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Str("env", cfg.AppEnv).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
