package widget

import (
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/layout"
	"nathanbeddoewebdev/homegrid/internal/servicedir"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/spf13/cobra"
)

// AddCommand returns the "widget add" command.
func AddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <service-id>",
		Short: "Add a widget for a service",
		Long: `Append a widget for a service of the home.

Without --size the kind's preferred size is used. Without --metrics the
defaults for the size are shown. A selection too large for the size grows
the widget.

Examples:
  homegrid widget add pve
  homegrid widget add dns --size wide --metrics totalQueries,blockedPercent`,
		Args:         cobra.ExactArgs(1),
		RunE:         runAdd,
		SilenceUsage: true,
	}

	cmd.Flags().String("size", string(domain.SizeAuto), "Widget size")
	cmd.Flags().StringSlice("metrics", nil, "Comma separated metric keys")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
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
	svc, ok := servicedir.Index(services)[args[0]]
	if !ok {
		return fmt.Errorf("service %s is not in home %s: %w", args[0], home, servicedir.ErrNotFound)
	}

	sizeFlag, _ := cmd.Flags().GetString("size")
	size, err := domain.ParseSize(sizeFlag)
	if err != nil {
		return err
	}

	var sel domain.MetricSelection
	if cmd.Flags().Changed("metrics") {
		keys, _ := cmd.Flags().GetStringSlice("metrics")
		if sel, err = selectionFlag(svc.Kind, keys); err != nil {
			return err
		}
	}

	w, err := layout.NewWidget(svc, size, sel)
	if err != nil {
		return err
	}
	env.Layouts.AddWidget(home, w)

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s widget %s for %s.\n", w.Size, shortID(w.ID), svc.Name)
	return nil
}
