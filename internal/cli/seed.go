package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"notesapi/internal/auth"
	"notesapi/internal/db"
	"notesapi/internal/repository"
	"notesapi/internal/service"
)

var demoNotes = []service.CreateNoteInput{
	{Title: "Welcome", Content: "Notes can carry any number of tags.", Tags: []string{"getting-started"}},
	{Title: "Groceries", Content: "milk, eggs, coffee", Tags: []string{"home", "shopping"}},
	{Title: "Standup", Content: "ship the tag filter", Tags: []string{"work"}},
}

func newSeedCommand(open Opener) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo user with a few tagged notes",
		Long:  "Creates the demo user and its notes. Running it again is a no-op once the user exists.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				ctx := cmd.Context()
				if err := db.Migrate(env.DB, false); err != nil {
					return err
				}

				store := repository.NewStore(env.DB)
				if _, err := store.Users().FindByEmail(ctx, email); err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "demo user %s already exists\n", email)
					return nil
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("look up demo user: %w", err)
				}

				jwtService := auth.NewJWTService(env.Config.JWTSecret, env.Config.AccessTokenTTL)
				authService := service.NewAuthService(store.Users(), jwtService, auth.NewRedisDenylist(env.Cache))
				user, err := authService.Register(ctx, email, password)
				if err != nil {
					return fmt.Errorf("register demo user: %w", err)
				}

				notes := service.NewNoteService(store)
				for _, in := range demoNotes {
					if _, err := notes.CreateNote(ctx, user.ID, in); err != nil {
						return fmt.Errorf("create note %q: %w", in.Title, err)
					}
				}

				env.Log.Info().Uint("user_id", user.ID).Int("notes", len(demoNotes)).Msg("demo data seeded")
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %s with %d notes\n", email, len(demoNotes))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "demo@example.com", "Email of the demo user")
	cmd.Flags().StringVar(&password, "password", "demo-password", "Password of the demo user")
	return cmd
}
