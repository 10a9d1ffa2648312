package stats

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/layout"
	"nathanbeddoewebdev/homegrid/internal/servicedir"
	"nathanbeddoewebdev/homegrid/internal/services/auth"
	"nathanbeddoewebdev/homegrid/internal/stats"
	"nathanbeddoewebdev/homegrid/internal/tui"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/spf13/cobra"
)

// RefreshCommand returns the "stats refresh" command.
func RefreshCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch stats for the services that are due",
		Long: `Run one refresh pass over the home's widgets. Only services whose
cached stats are older than their refresh interval are fetched unless
--all is given.

Examples:
  homegrid stats refresh
  homegrid stats refresh --all --timeout 5s`,
		Args:         cobra.NoArgs,
		RunE:         runRefresh,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("all", false, "Fetch every service regardless of interval")
	cmd.Flags().Duration("timeout", 30*time.Second, "Give up on the pass after this long")

	return cmd
}

func runRefresh(cmd *cobra.Command, args []string) error {
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
	widgets := layout.FilterOrphans(env.Layouts.Layout(home).Widgets, index)

	r := env.Refresher(auth.DefaultStore())
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	due := r.Due(widgets, index, time.Now())
	if all, _ := cmd.Flags().GetBool("all"); all {
		due = shownServices(widgets, index)
	}
	if len(due) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "All stats are fresh.")
		return nil
	}

	var results []stats.Result
	if app.Interactive() {
		results, err = tui.RefreshWithSpinner(ctx, r, due)
	} else {
		results, err = r.Refresh(ctx, due)
	}
	printResults(cmd, results)

	if err != nil {
		return fmt.Errorf("refresh interrupted: %w", err)
	}
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d services failed to refresh", failed, len(results))
	}
	return nil
}

// shownServices returns each service shown by widgets once, in widget order.
func shownServices(widgets []domain.Widget, index map[string]domain.Service) []domain.Service {
	seen := make(map[string]bool, len(widgets))
	var out []domain.Service
	for _, w := range widgets {
		if seen[w.ServiceID] {
			continue
		}
		seen[w.ServiceID] = true
		out = append(out, index[w.ServiceID])
	}
	return out
}

func printResults(cmd *cobra.Command, results []stats.Result) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tSTATUS\tMETRICS")
	fmt.Fprintln(w, "-------\t------\t-------")
	for _, res := range results {
		switch {
		case errors.Is(res.Err, stats.ErrNoURL):
			fmt.Fprintf(w, "%s\tno url\t-\n", res.ServiceID)
		case res.Err != nil:
			fmt.Fprintf(w, "%s\tfailed: %v\t-\n", res.ServiceID, res.Err)
		default:
			fmt.Fprintf(w, "%s\tok\t%d\n", res.ServiceID, len(res.Payload.Metrics))
		}
	}
	w.Flush()
}
