package auth

import (
	"nathanbeddoewebdev/homegrid/internal/app"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage API tokens for services",
		Long: `Manage API tokens for services.

Tokens are kept in the system keychain and sent as a bearer token when a
service's stats are fetched.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(LogoutCommand())
	cmd.AddCommand(StatusCommand())

	app.AddHomeFlag(cmd)

	return cmd
}
