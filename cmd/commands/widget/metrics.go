package widget

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/layout"
	"nathanbeddoewebdev/homegrid/internal/tui"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/spf13/cobra"
)

// MetricsCommand returns the "widget metrics" command.
func MetricsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics <widget-id> [metric...]",
		Short: "Choose which metrics a widget shows",
		Long: `Replace a widget's metric selection. In a terminal, omitting the metrics
opens a picker. The widget grows when the selection no longer fits.

Use --available to list the metrics of the widget's service kind.

Examples:
  homegrid widget metrics 3f2a totalQueries blockedPercent
  homegrid widget metrics 3f2a --available`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runMetrics,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("available", false, "List selectable metrics and exit")

	return cmd
}

func runMetrics(cmd *cobra.Command, args []string) error {
	t, err := openTarget(cmd, args[0])
	if err != nil {
		return err
	}
	defer t.env.Close()

	if available, _ := cmd.Flags().GetBool("available"); available {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(domain.CatalogKeys(t.service.Kind), "\n"))
		return nil
	}

	var sel domain.MetricSelection
	switch {
	case len(args) > 1:
		var keys []string
		for _, a := range args[1:] {
			keys = append(keys, strings.Split(a, ",")...)
		}
		if sel, err = selectionFlag(t.service.Kind, keys); err != nil {
			return err
		}
	case app.Interactive():
		if sel, err = tui.MetricsForm(t.widget, t.service.Kind); err != nil {
			return err
		}
	default:
		return fmt.Errorf("metrics are required when not running in a terminal")
	}

	updated, resized, err := layout.ApplyMetrics(t.widget, t.service.Kind, sel)
	if err != nil {
		return err
	}
	t.env.Layouts.UpdateWidget(t.home, updated)

	fmt.Fprintf(cmd.OutOrStdout(), "Widget %s shows %d metrics.\n", shortID(updated.ID), sel.Len())
	if resized {
		fmt.Fprintf(cmd.OutOrStdout(), "Resized from %s to %s to fit.\n", t.widget.Size, updated.Size)
	}
	return nil
}
