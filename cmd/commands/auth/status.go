package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which services of a home have tokens",
		Long: `Show which services of a home have a stored API token.

Example:
  homegrid auth status --home cabin`,
		Args:         cobra.NoArgs,
		RunE:         runStatus,
		SilenceUsage: true,
	}

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	env, err := app.Open()
	if err != nil {
		return err
	}
	defer env.Close()

	home, err := app.ResolveHome(cmd, env.Config)
	if err != nil {
		return err
	}
	services, err := env.HomeServices(home)
	if err != nil {
		return err
	}

	if len(services) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No services in home %s.\n", home)
		return nil
	}

	store := auth.DefaultStore()
	for _, svc := range services {
		_, err := store.GetToken(svc.ID)
		switch {
		case err == nil:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: token stored\n", svc.ID)
		case errors.Is(err, auth.ErrTokenNotFound):
			fmt.Fprintf(cmd.OutOrStdout(), "%s: no token\n", svc.ID)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", svc.ID, err)
		}
	}
	return nil
}
