package widget

import (
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/layout"
	"nathanbeddoewebdev/homegrid/internal/tui"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/spf13/cobra"
)

// SizeCommand returns the "widget size" command.
func SizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size <widget-id> [size]",
		Short: "Change a widget's size",
		Long: `Change a widget's size. In a terminal, omitting the size opens a picker.

A size too small for the widget's metrics is corrected to the smallest size
that holds them. "auto" picks the kind's preferred size.

Sizes: small, medium, wide, large, tall, extraWide, auto

Examples:
  homegrid widget size 3f2a wide
  homegrid widget size 3f2a`,
		Args:         cobra.RangeArgs(1, 2),
		RunE:         runSize,
		SilenceUsage: true,
	}

	return cmd
}

func runSize(cmd *cobra.Command, args []string) error {
	t, err := openTarget(cmd, args[0])
	if err != nil {
		return err
	}
	defer t.env.Close()

	var size domain.WidgetSize
	switch {
	case len(args) == 2:
		if size, err = domain.ParseSize(args[1]); err != nil {
			return err
		}
	case app.Interactive():
		if size, err = tui.SizeForm(t.widget, t.service.Kind); err != nil {
			return err
		}
	default:
		return fmt.Errorf("size is required when not running in a terminal")
	}

	updated, corrected := layout.ApplySize(t.widget, t.service.Kind, size)
	t.env.Layouts.UpdateWidget(t.home, updated)

	if corrected && size != domain.SizeAuto {
		fmt.Fprintf(cmd.OutOrStdout(), "%s cannot hold %d metrics; widget %s is %s.\n",
			size, domain.SelectionLen(updated.Metrics), shortID(updated.ID), updated.Size)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Widget %s is %s.\n", shortID(updated.ID), updated.Size)
	return nil
}
