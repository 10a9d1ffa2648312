package home

import (
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/app"

	"github.com/spf13/cobra"
)

// GenerateCommand returns the "home generate" command.
func GenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a default layout from the home's services",
		Long: `Generate one widget per service with the kind's preferred size and
default metrics.

An existing layout is kept unless --force is given, in which case it is
replaced and all customisation is lost.

Examples:
  homegrid home generate
  homegrid home generate --force`,
		Args:         cobra.NoArgs,
		RunE:         runGenerate,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("force", false, "Replace an existing layout")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
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
	if len(services) == 0 {
		return fmt.Errorf("home %s has no services; add one with 'homegrid service add'", home)
	}

	force, _ := cmd.Flags().GetBool("force")
	if existing := env.Layouts.Layout(home); len(existing.Widgets) > 0 && !force {
		return fmt.Errorf("home %s already has %d widgets; use --force to replace them", home, len(existing.Widgets))
	}

	l := env.Layouts.Regenerate(home, services)
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d widgets for home %s.\n", len(l.Widgets), home)
	printRows(cmd, home, l, services)
	return nil
}
