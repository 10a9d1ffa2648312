package stats

import (
	"context"
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

// ShowCommand returns the "stats show" command.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the cached values of every widget",
		Long: `Print each widget's selected metrics from the stats cache. Metrics
without a cached value are shown as "-".

With --fetch, services with no usable cached stats are fetched first, and
stale stats are printed while they are refreshed in the background.

Examples:
  homegrid stats show
  homegrid stats show --fetch`,
		Args:         cobra.NoArgs,
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("fetch", false, "Fetch stats that are missing or expired")
	cmd.Flags().Duration("timeout", 30*time.Second, "Give up on fetching after this long")

	return cmd
}

type shownPayload struct {
	payload   *stats.Payload
	fetchedAt time.Time
	err       error
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
	index := servicedir.Index(services)
	widgets := layout.FilterOrphans(env.Layouts.Layout(home).Widgets, index)
	if len(widgets) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Home %s has no widgets.\n", home)
		return nil
	}

	var shown map[string]shownPayload
	if fetch, _ := cmd.Flags().GetBool("fetch"); fetch {
		r := env.Refresher(auth.DefaultStore())
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		results, err := r.Latest(ctx, shownServices(widgets, index))
		// Let stale entries finish revalidating before the process exits.
		defer r.Cache.Wait()
		if err != nil {
			return fmt.Errorf("fetch interrupted: %w", err)
		}
		shown = fromResults(results)
	} else {
		shown = fromCache(stats.NewDefaultCache(), widgets)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for i, widget := range widgets {
		if i > 0 {
			fmt.Fprintln(w)
		}
		sp := shown[widget.ServiceID]
		fmt.Fprintf(w, "%s\t(%s)\n", tui.Title(widget, index[widget.ServiceID]), describeAge(sp))
		for _, r := range stats.Readings(widget.Metrics, sp.payload) {
			fmt.Fprintf(w, "  %s\t%s\n", r.Label, r.Value)
		}
	}
	return w.Flush()
}

func fromCache(cache *stats.Cache, widgets []domain.Widget) map[string]shownPayload {
	out := make(map[string]shownPayload, len(widgets))
	for _, w := range widgets {
		if entry, ok := cache.Peek(w.ServiceID); ok {
			p := entry.Data
			out[w.ServiceID] = shownPayload{payload: &p, fetchedAt: entry.FetchedAt}
		}
	}
	return out
}

func fromResults(results []stats.Result) map[string]shownPayload {
	out := make(map[string]shownPayload, len(results))
	for _, res := range results {
		if res.Err != nil {
			out[res.ServiceID] = shownPayload{err: res.Err}
			continue
		}
		p := res.Payload
		out[res.ServiceID] = shownPayload{payload: &p, fetchedAt: p.FetchedAt}
	}
	return out
}

func describeAge(sp shownPayload) string {
	switch {
	case sp.err != nil:
		return fmt.Sprintf("fetch failed: %v", sp.err)
	case sp.payload == nil || sp.fetchedAt.IsZero():
		return "never fetched"
	default:
		return "fetched " + time.Since(sp.fetchedAt).Truncate(time.Second).String() + " ago"
	}
}
