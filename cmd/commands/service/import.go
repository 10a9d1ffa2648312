package service

import (
	"fmt"
	"io"
	"os"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/servicedir"

	"github.com/spf13/cobra"
)

// ImportCommand returns the "service import" command.
func ImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add services from a YAML file",
		Long: `Add the services listed in a YAML file, grouped by home:

  homes:
    cabin:
      - id: pve
        name: Proxmox
        kind: hypervisor
        url: http://10.0.0.2:8080/stats

Services that already exist are skipped. Use "-" to read from stdin.

Example:
  homegrid service import services.yaml`,
		Args:         cobra.ExactArgs(1),
		RunE:         runImport,
		SilenceUsage: true,
	}

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	records, err := servicedir.ParseFile(r)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No services in file.")
		return nil
	}

	env, err := app.Open()
	if err != nil {
		return err
	}
	defer env.Close()

	added, skipped := 0, 0
	for i := range records {
		rec := &records[i]
		if _, err := env.Services.Get(rec.ID); err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %s: already exists\n", rec.ID)
			skipped++
			continue
		}
		if err := env.Services.Add(rec); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %s: %v\n", rec.ID, err)
			skipped++
			continue
		}
		attachWidget(env, rec.Service())
		added++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d services (%d skipped).\n", added, skipped)
	return nil
}
