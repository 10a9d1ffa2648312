package home

import (
	"nathanbeddoewebdev/homegrid/internal/app"

	"github.com/spf13/cobra"
)

// NewCommand returns the "home" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "home",
		Short: "Show and arrange a home's dashboard",
		Long: `Show, generate, and transfer the widget layout of a home.

A home's layout is generated from its services the first time it is shown.
Use --home to pick a home other than the configured default.`,
	}

	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(GenerateCommand())
	cmd.AddCommand(RowsCommand())
	cmd.AddCommand(ExportCommand())
	cmd.AddCommand(ImportCommand())

	app.AddHomeFlag(cmd)

	return cmd
}
