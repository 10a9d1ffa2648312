package cmd

import (
	"fmt"
	"os"

	"nathanbeddoewebdev/homegrid/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/homegrid/cmd/commands/config"
	"nathanbeddoewebdev/homegrid/cmd/commands/home"
	"nathanbeddoewebdev/homegrid/cmd/commands/service"
	"nathanbeddoewebdev/homegrid/cmd/commands/stats"
	"nathanbeddoewebdev/homegrid/cmd/commands/widget"
	"nathanbeddoewebdev/homegrid/internal/layout"
	"nathanbeddoewebdev/homegrid/internal/logger"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var verbose bool

	var cmd = &cobra.Command{
		Use:   "homegrid",
		Short: "A terminal dashboard for the services running in your home",
		Long: `homegrid arranges widgets for your self-hosted services (hypervisors,
media servers, torrent clients, DNS filters) into a two-column grid and
keeps their stats fresh.

Quick start:
  homegrid service import services.yaml   # Register services
  homegrid auth login pve                 # Store an API token
  homegrid home show                      # Open the dashboard
  homegrid widget size <id> wide          # Resize a widget`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(verbose)
			if err := layout.CheckDefaults(); err != nil {
				return fmt.Errorf("inconsistent widget defaults: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(home.NewCommand())
	cmd.AddCommand(service.NewCommand())
	cmd.AddCommand(stats.NewCommand())
	cmd.AddCommand(widget.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
