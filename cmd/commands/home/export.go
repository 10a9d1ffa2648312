package home

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/layoutstore"

	"github.com/spf13/cobra"
)

// ExportCommand returns the "home export" command.
func ExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored layout as JSON",
		Long: `Write the home's layout in its stored JSON form.

Examples:
  homegrid home export > cabin.json
  homegrid home export --output cabin.json`,
		Args:         cobra.NoArgs,
		RunE:         runExport,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	env, err := app.Open()
	if err != nil {
		return err
	}
	defer env.Close()

	home, err := app.ResolveHome(cmd, env.Config)
	if err != nil {
		return err
	}

	blob, err := layoutstore.EncodeLayout(env.Layouts.Layout(home))
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, blob, "", "  "); err != nil {
		return fmt.Errorf("failed to format layout: %w", err)
	}
	out.WriteByte('\n')

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		_, err := cmd.OutOrStdout().Write(out.Bytes())
		return err
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported home %s to %s\n", home, path)
	return nil
}
