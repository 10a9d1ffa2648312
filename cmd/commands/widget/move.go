package widget

import (
	"fmt"
	"strconv"

	"nathanbeddoewebdev/homegrid/internal/app"

	"github.com/spf13/cobra"
)

// MoveCommand returns the "widget move" command.
func MoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <widget-id> <position>",
		Short: "Move a widget to a position in the layout",
		Long: `Move a widget so it ends up at the given 1-based position, as shown in
the POS column of 'homegrid widget list'. Positions past the end move the
widget to the end.

Example:
  homegrid widget move 3f2a 1`,
		Args:         cobra.ExactArgs(2),
		RunE:         runMove,
		SilenceUsage: true,
	}

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[1])
	if err != nil || pos < 1 {
		return fmt.Errorf("position must be a positive integer, got %q", args[1])
	}

	env, err := app.Open()
	if err != nil {
		return err
	}
	defer env.Close()

	home, err := app.ResolveHome(cmd, env.Config)
	if err != nil {
		return err
	}

	w, err := findWidget(env.Layouts.Layout(home), args[0])
	if err != nil {
		return err
	}
	env.Layouts.MoveWidget(home, w.ID, pos-1)

	l := env.Layouts.Layout(home)
	fmt.Fprintf(cmd.OutOrStdout(), "Widget %s is now at position %d.\n", shortID(w.ID), l.IndexOf(w.ID)+1)
	return nil
}
