package service

import (
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/app"

	"github.com/spf13/cobra"
)

// DeleteCommand returns the "service delete" command.
func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <service-id>",
		Short: "Delete a service and its widgets",
		Long: `Delete a service from the directory and remove every widget that shows
it from its home's layout.

Example:
  homegrid service delete plex`,
		Args:         cobra.ExactArgs(1),
		RunE:         runDelete,
		SilenceUsage: true,
	}

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	env, err := app.Open()
	if err != nil {
		return err
	}
	defer env.Close()

	rec, err := env.Services.Get(args[0])
	if err != nil {
		return err
	}
	if err := env.Services.Delete(rec.ID); err != nil {
		return err
	}
	removed := env.Layouts.PruneService(rec.Home, rec.ID)

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted service %s (%d widgets removed).\n", rec.ID, removed)
	return nil
}
