package home

import (
	"fmt"
	"io"
	"os"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/layoutstore"

	"github.com/spf13/cobra"
)

// ImportCommand returns the "home import" command.
func ImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the layout with an exported JSON file",
		Long: `Replace the home's layout with one written by 'homegrid home export'.

The layout is stored under the selected home whatever home it was exported
from. Widgets that cannot be decoded are skipped and reported. Use "-" to
read from stdin.

Example:
  homegrid home import cabin.json --home lake-house`,
		Args:         cobra.ExactArgs(1),
		RunE:         runImport,
		SilenceUsage: true,
	}

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	l, dropped, err := layoutstore.DecodeLayout(data)
	if err != nil {
		return err
	}

	env, err := app.Open()
	if err != nil {
		return err
	}
	defer env.Close()

	home, err := app.ResolveHome(cmd, env.Config)
	if err != nil {
		return err
	}

	for _, d := range dropped {
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipped widget %s: %v\n", d.ID, d.Reason)
	}

	l.Home = home
	env.Layouts.SetLayout(l)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d widgets into home %s.\n", len(l.Widgets), home)
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
