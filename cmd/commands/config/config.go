package config

import (
	"nathanbeddoewebdev/homegrid/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage homegrid configuration",
		Long: "View and modify persistent homegrid settings.\n\n" +
			"Configuration is stored at ~/.config/homegrid/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
