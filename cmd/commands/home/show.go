package home

import (
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/services/auth"
	"nathanbeddoewebdev/homegrid/internal/tui"

	"github.com/spf13/cobra"
)

// ShowCommand returns the "home show" command.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the dashboard grid",
		Long: `Show the home's widgets packed into rows.

In a terminal this opens the interactive grid, where tiles can be moved,
resized, and removed. Otherwise the row grouping is printed as text.

Examples:
  homegrid home show
  homegrid home show --home cabin --plain`,
		Args:         cobra.NoArgs,
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("plain", false, "Print rows as text even in a terminal")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	l, generated := env.Layouts.EnsureLayout(home, services)
	plain, _ := cmd.Flags().GetBool("plain")

	if app.Interactive() && !plain {
		return tui.RunGridView(tui.GridViewOptions{
			Store:     env.Layouts,
			Home:      home,
			Services:  services,
			Refresher: env.Refresher(auth.DefaultStore()),
		})
	}

	if generated {
		fmt.Fprintf(cmd.ErrOrStderr(), "Generated a layout with %d widgets.\n", len(l.Widgets))
	}
	printRows(cmd, home, l, services)
	return nil
}
