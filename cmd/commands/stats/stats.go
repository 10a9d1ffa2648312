package stats

import (
	"nathanbeddoewebdev/homegrid/internal/app"

	"github.com/spf13/cobra"
)

// NewCommand returns the "stats" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Fetch and show service stats",
		Long: `Fetch the stats behind a home's widgets and show the cached values.

Each service is polled at the shortest refresh interval of the widgets
showing it, falling back to the configured refresh-interval.`,
	}

	cmd.AddCommand(RefreshCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(ClearCommand())

	app.AddHomeFlag(cmd)

	return cmd
}
