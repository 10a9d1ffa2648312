package widget

import (
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/app"

	"github.com/spf13/cobra"
)

// RemoveCommand returns the "widget remove" command.
func RemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "remove <widget-id>",
		Aliases:      []string{"rm"},
		Short:        "Remove a widget",
		Args:         cobra.ExactArgs(1),
		RunE:         runRemove,
		SilenceUsage: true,
	}

	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
	env, err := app.Open()
	if err != nil {
		return err
	}
	defer env.Close()

	home, err := app.ResolveHome(cmd, env.Config)
	if err != nil {
		return err
	}

	// Orphaned widgets can be removed too, so no service lookup here.
	w, err := findWidget(env.Layouts.Layout(home), args[0])
	if err != nil {
		return err
	}
	env.Layouts.RemoveWidget(home, w.ID)

	fmt.Fprintf(cmd.OutOrStdout(), "Removed widget %s.\n", shortID(w.ID))
	return nil
}
