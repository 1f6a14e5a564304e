package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"notesapi/internal/cache"
	"notesapi/internal/config"
	"notesapi/internal/db"
	"notesapi/internal/logger"
)

// Env carries the resources subcommands operate on.
type Env struct {
	Config *config.Config
	DB     *gorm.DB
	Cache  *cache.Client
	Log    zerolog.Logger

	closer func() error
}

// Close releases the database and cache connections.
func (e *Env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer()
}

// Opener builds an Env. Commands open it lazily so help output never needs
// a database.
type Opener func(ctx context.Context) (*Env, error)

// DefaultOpener connects to the database and cache named by the environment.
func DefaultOpener() Opener {
	return func(ctx context.Context) (*Env, error) {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		log := logger.NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}, cfg.LogLevel)

		gormDB, err := db.Open(cfg.DatabaseURL, &gorm.Config{
			Logger:         db.NewLogger(log, db.LevelFor(cfg.LogLevel)),
			TranslateError: true,
		})
		if err != nil {
			return nil, err
		}
		cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, user cache disabled")
		}

		return &Env{
			Config: cfg,
			DB:     gormDB,
			Cache:  cacheClient,
			Log:    log,
			closer: func() error {
				_ = cacheClient.Close()
				sqlDB, err := gormDB.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil
	}
}

// NewRootCommand builds the notesctl command tree.
func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "notesctl",
		Short: "Administrative tasks for the notes service",
		Long: `notesctl manages the notes service database.

It applies the schema, removes users together with their notes and
loads demo data for local development.`,
		SilenceUsage: true,
	}

	root.AddCommand(newMigrateCommand(open))
	root.AddCommand(newUserCommand(open))
	root.AddCommand(newSeedCommand(open))
	return root
}

// withEnv opens an Env for the duration of fn.
func withEnv(cmd *cobra.Command, open Opener, fn func(env *Env) error) error {
	env, err := open(cmd.Context())
	if err != nil {
		return fmt.Errorf("open environment: %w", err)
	}
	defer env.Close()
	return fn(env)
}
