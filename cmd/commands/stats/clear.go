package stats

import (
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/stats"

	"github.com/spf13/cobra"
)

// ClearCommand returns the "stats clear" command.
func ClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached stats payload",
		Long: `Delete the stats cache of all homes. The next refresh fetches every
service again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stats.NewDefaultCache().Clear(); err != nil {
				return fmt.Errorf("failed to clear stats cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared cached stats.")
			return nil
		},
		SilenceUsage: true,
	}
}
