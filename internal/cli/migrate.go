package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"notesapi/internal/db"
)

func newMigrateCommand(open Opener) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				if err := db.Migrate(env.DB, reset); err != nil {
					return err
				}
				if reset {
					env.Log.Warn().Msg("all tables dropped and recreated")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Drop every table before migrating (destroys data)")
	return cmd
}
