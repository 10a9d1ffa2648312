package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "logout <service-id>",
		Short:        "Remove the stored API token of a service",
		Args:         cobra.ExactArgs(1),
		RunE:         runLogout,
		SilenceUsage: true,
	}

	return cmd
}

func runLogout(cmd *cobra.Command, args []string) error {
	id := auth.NormalizeServiceID(args[0])
	err := auth.DefaultStore().DeleteToken(id)
	switch {
	case errors.Is(err, auth.ErrTokenNotFound):
		fmt.Fprintf(cmd.OutOrStdout(), "No token stored for service %s\n", id)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed token for service %s\n", id)
	return nil
}
