package widget

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/servicedir"
	"nathanbeddoewebdev/homegrid/internal/tui"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/spf13/cobra"
)

// ListCommand returns the "widget list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List the widgets of a home in layout order",
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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
	index := servicedir.Index(services)

	l := env.Layouts.Layout(home)
	if len(l.Widgets) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No widgets in home %s.\n", home)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "POS\tID\tTITLE\tSIZE\tMETRICS\tREFRESH")
	fmt.Fprintln(w, "---\t--\t-----\t----\t-------\t-------")

	for i, widget := range l.Widgets {
		title := widget.ServiceID + " (missing)"
		if svc, ok := index[widget.ServiceID]; ok {
			title = tui.Title(widget, svc)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			shortID(widget.ID),
			title,
			widget.Size,
			metricsCell(widget.Metrics),
			refreshCell(widget),
		)
	}

	return w.Flush()
}

func metricsCell(sel domain.MetricSelection) string {
	if domain.SelectionLen(sel) == 0 {
		return "-"
	}
	return strings.Join(sel.Keys(), ",")
}

func refreshCell(w domain.Widget) string {
	if w.RefreshIntervalOverride == nil {
		return "default"
	}
	return fmt.Sprintf("%ds", *w.RefreshIntervalOverride)
}
