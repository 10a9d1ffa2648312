package service

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/servicedir"
	"nathanbeddoewebdev/homegrid/internal/tui"
	"nathanbeddoewebdev/homegrid/internal/util"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/spf13/cobra"
)

// AddCommand returns the "service add" command.
func AddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a service to a home",
		Long: `Add a service to a home. In a terminal, missing fields are asked for.

If the home already has a layout, a widget with the kind's defaults is
appended for the new service.

Examples:
  homegrid service add --id pve --name Proxmox --kind hypervisor --url http://10.0.0.2:8080/stats
  homegrid service add`,
		Args:         cobra.NoArgs,
		RunE:         runAdd,
		SilenceUsage: true,
	}

	cmd.Flags().String("id", "", "Service id")
	cmd.Flags().String("name", "", "Display name (defaults to the id)")
	cmd.Flags().String("kind", "", "Service kind")
	cmd.Flags().String("url", "", "Stats endpoint URL")
	cmd.Flags().Bool("no-widget", false, "Do not add a widget to the layout")

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

	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	kind, _ := cmd.Flags().GetString("kind")
	url, _ := cmd.Flags().GetString("url")

	svc := domain.Service{
		ID:   strings.TrimSpace(id),
		Name: strings.TrimSpace(name),
		Kind: domain.ServiceKind(util.NormalizeKey(kind)),
		Home: home,
		URL:  strings.TrimSpace(url),
	}

	if (svc.ID == "" || !svc.Kind.Valid()) && app.Interactive() {
		svc, err = tui.ServiceForm(svc, func(s string) error { return util.ValidateName("service id", s) })
		if err != nil {
			return err
		}
		svc.Home = home
	}
	svc.Name = util.DefaultString(svc.Name, svc.ID)

	rec := &servicedir.Record{ID: svc.ID, Name: svc.Name, Kind: svc.Kind, Home: svc.Home, URL: svc.URL}
	if err := env.Services.Add(rec); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s to home %s.\n", rec.Kind.DisplayName(), rec.ID, home)

	if noWidget, _ := cmd.Flags().GetBool("no-widget"); !noWidget {
		if w, ok := attachWidget(env, rec.Service()); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s widget for %s.\n", w.Size, rec.Name)
		}
	}
	return nil
}
