package widget

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// TitleCommand returns the "widget title" command.
func TitleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "title <widget-id> [title]",
		Short: "Set or clear a widget's title",
		Long: `Replace the service name in a widget's header. Without a title the
override is cleared.

Examples:
  homegrid widget title 3f2a "Rack"
  homegrid widget title 3f2a`,
		Args:         cobra.RangeArgs(1, 2),
		RunE:         runTitle,
		SilenceUsage: true,
	}

	return cmd
}

func runTitle(cmd *cobra.Command, args []string) error {
	t, err := openTarget(cmd, args[0])
	if err != nil {
		return err
	}
	defer t.env.Close()

	w := t.widget
	title := ""
	if len(args) == 2 {
		title = strings.TrimSpace(args[1])
	}
	if title == "" {
		w.TitleOverride = nil
	} else {
		w.TitleOverride = &title
	}
	t.env.Layouts.UpdateWidget(t.home, w)

	if w.TitleOverride == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Widget %s uses the service name %q.\n", shortID(w.ID), t.service.Name)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Widget %s is titled %q.\n", shortID(w.ID), title)
	return nil
}
