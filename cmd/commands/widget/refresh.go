package widget

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// RefreshCommand returns the "widget refresh" command.
func RefreshCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh <widget-id> [seconds]",
		Short: "Set or clear a widget's refresh interval",
		Long: `Poll a widget's service every given number of seconds instead of the
home-wide refresh-interval. Without seconds the override is cleared.

Examples:
  homegrid widget refresh 3f2a 10
  homegrid widget refresh 3f2a`,
		Args:         cobra.RangeArgs(1, 2),
		RunE:         runRefresh,
		SilenceUsage: true,
	}

	return cmd
}

func runRefresh(cmd *cobra.Command, args []string) error {
	var seconds *int
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("refresh interval must be a positive number of seconds, got %q", args[1])
		}
		seconds = &n
	}

	t, err := openTarget(cmd, args[0])
	if err != nil {
		return err
	}
	defer t.env.Close()

	w := t.widget
	w.RefreshIntervalOverride = seconds
	t.env.Layouts.UpdateWidget(t.home, w)

	if seconds == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Widget %s uses the home refresh interval.\n", shortID(w.ID))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Widget %s refreshes every %ds.\n", shortID(w.ID), *seconds)
	return nil
}
