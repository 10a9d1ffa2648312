package service

import (
	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/layout"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/spf13/cobra"
)

// NewCommand returns the "service" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage the services of a home",
		Long: `Add, list, delete, and import the services widgets display.

Service kinds: hypervisor, media-server, torrent-client, dns-filter`,
	}

	cmd.AddCommand(AddCommand())
	cmd.AddCommand(ListCommand())
	cmd.AddCommand(DeleteCommand())
	cmd.AddCommand(ImportCommand())

	app.AddHomeFlag(cmd)

	return cmd
}

// attachWidget appends a default widget for svc when the home already has a
// layout. An empty home is generated on first show instead.
func attachWidget(env *app.Env, svc domain.Service) (domain.Widget, bool) {
	if len(env.Layouts.Layout(svc.Home).Widgets) == 0 {
		return domain.Widget{}, false
	}
	w, err := layout.NewWidget(svc, domain.SizeAuto, nil)
	if err != nil {
		return domain.Widget{}, false
	}
	env.Layouts.AddWidget(svc.Home, w)
	return w, true
}
