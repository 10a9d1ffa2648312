package widget

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/servicedir"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/spf13/cobra"
)

// NewCommand returns the "widget" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Edit the widgets of a home",
		Long: `List, add, remove, reorder, and customise widgets.

Widgets are referenced by id, by a unique id prefix, or by position as
#N, as shown by 'homegrid widget list'.`,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(AddCommand())
	cmd.AddCommand(RemoveCommand())
	cmd.AddCommand(MoveCommand())
	cmd.AddCommand(SizeCommand())
	cmd.AddCommand(MetricsCommand())
	cmd.AddCommand(TitleCommand())
	cmd.AddCommand(RefreshCommand())

	app.AddHomeFlag(cmd)

	return cmd
}

// shortIDLen is how much of a widget id list prints.
const shortIDLen = 8

var (
	errWidgetNotFound  = errors.New("widget not found")
	errAmbiguousWidget = errors.New("widget id prefix is ambiguous")
)

// target is a resolved widget reference.
type target struct {
	env     *app.Env
	home    string
	widget  domain.Widget
	service domain.Service
}

// openTarget opens the stores and finds the widget ref names in the
// resolved home. The caller closes t.env.
func openTarget(cmd *cobra.Command, ref string) (*target, error) {
	env, err := app.Open()
	if err != nil {
		return nil, err
	}
	home, err := app.ResolveHome(cmd, env.Config)
	if err != nil {
		env.Close()
		return nil, err
	}

	w, err := findWidget(env.Layouts.Layout(home), ref)
	if err != nil {
		env.Close()
		return nil, err
	}

	services, err := env.HomeServices(home)
	if err != nil {
		env.Close()
		return nil, err
	}
	svc, ok := servicedir.Index(services)[w.ServiceID]
	if !ok {
		env.Close()
		return nil, fmt.Errorf("widget %s shows service %s, which no longer exists", shortID(w.ID), w.ServiceID)
	}

	return &target{env: env, home: home, widget: w, service: svc}, nil
}

func findWidget(l domain.Layout, ref string) (domain.Widget, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Widget{}, fmt.Errorf("%w: empty id", errWidgetNotFound)
	}
	if pos, ok := strings.CutPrefix(ref, "#"); ok {
		n, err := strconv.Atoi(pos)
		if err != nil || n < 1 || n > len(l.Widgets) {
			return domain.Widget{}, fmt.Errorf("%w: no position %s in home %s", errWidgetNotFound, ref, l.Home)
		}
		return l.Widgets[n-1], nil
	}
	for _, w := range l.Widgets {
		if w.ID == ref {
			return w, nil
		}
	}
	var match *domain.Widget
	for i, w := range l.Widgets {
		if !strings.HasPrefix(w.ID, ref) {
			continue
		}
		if match != nil {
			return domain.Widget{}, fmt.Errorf("%w: %q", errAmbiguousWidget, ref)
		}
		match = &l.Widgets[i]
	}
	if match == nil {
		return domain.Widget{}, fmt.Errorf("%w: %q in home %s", errWidgetNotFound, ref, l.Home)
	}
	return *match, nil
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// selectionFlag parses a comma separated metric list for kind.
func selectionFlag(kind domain.ServiceKind, keys []string) (domain.MetricSelection, error) {
	cleaned := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	sel, err := domain.SelectionFromKeys(kind, cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w (valid: %s)", err, strings.Join(domain.CatalogKeys(kind), ", "))
	}
	return sel, nil
}
