package home

import (
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/servicedir"
	"nathanbeddoewebdev/homegrid/internal/tui"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/spf13/cobra"
)

// RowsCommand returns the "home rows" command.
func RowsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Print the row grouping of the stored layout",
		Long: `Print how the stored layout packs into rows without generating one.

Widgets whose service no longer exists are left out.

Example:
  homegrid home rows --home cabin`,
		Args:         cobra.NoArgs,
		RunE:         runRows,
		SilenceUsage: true,
	}

	return cmd
}

func runRows(cmd *cobra.Command, args []string) error {
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

	printRows(cmd, home, env.Layouts.Layout(home), services)
	return nil
}

func printRows(cmd *cobra.Command, home string, l domain.Layout, services []domain.Service) {
	text := tui.RenderRowsText(l, servicedir.Index(services))
	if text == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Home %s has no widgets.\n", home)
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
}
