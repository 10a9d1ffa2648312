package auth

import (
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/homegrid/internal/services/auth"
	"nathanbeddoewebdev/homegrid/internal/util"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <service-id>",
		Short: "Store an API token for a service",
		Long: `Store an API token for a service using the local keychain.

Example:
  homegrid auth login pve
  homegrid auth login pihole --token "$PIHOLE_TOKEN"`,
		Args:         cobra.ExactArgs(1),
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "API token (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	serviceID := strings.TrimSpace(args[0])
	if err := util.ValidateName("service id", serviceID); err != nil {
		return err
	}

	token, err := cmd.Flags().GetString("token")
	if err != nil {
		return err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("token is required: pass --token when not running in a terminal")
		}
		fmt.Fprint(cmd.OutOrStdout(), "Enter API token: ")
		bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		token = strings.TrimSpace(string(bytes))
	}

	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := auth.DefaultStore().SetToken(serviceID, token); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved token for service %s\n", auth.NormalizeServiceID(serviceID))
	return nil
}
