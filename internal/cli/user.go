package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"notesapi/internal/repository"
	"notesapi/internal/service"
)

func newUserCommand(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <email>",
		Short: "Delete a user with all of its notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				users := service.NewUserService(repository.NewStore(env.DB), env.Cache)
				if err := users.DeleteUserByEmail(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("delete %s: %w", args[0], err)
				}
				env.Log.Info().Str("email", args[0]).Msg("user deleted")
				fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", args[0])
				return nil
			})
		},
	})
	return cmd
}
