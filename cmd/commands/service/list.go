package service

import (
	"fmt"
	"text/tabwriter"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/servicedir"

	"github.com/spf13/cobra"
)

// ListCommand returns the "service list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services",
		Long: `List the services of a home, or of every home with --all.

Examples:
  homegrid service list
  homegrid service list --all`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("all", false, "List services of every home")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := app.Open()
	if err != nil {
		return err
	}
	defer env.Close()

	all, _ := cmd.Flags().GetBool("all")

	var records []servicedir.Record
	if all {
		records, err = env.Services.List()
	} else {
		var home string
		if home, err = app.ResolveHome(cmd, env.Config); err != nil {
			return err
		}
		records, err = env.Services.ListByHome(home)
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No services found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tHOME\tURL")
	fmt.Fprintln(w, "--\t----\t----\t----\t---")
	for _, r := range records {
		url := r.URL
		if url == "" {
			url = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Kind, r.Home, url)
	}
	return w.Flush()
}
