package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"nathanbeddoewebdev/homegrid/internal/layout"
	"nathanbeddoewebdev/homegrid/internal/stats"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when a user cancels an interactive flow.
var ErrAborted = errors.New("aborted by user")

func accessible() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible()).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// SizeForm asks for a new size for w. Every concrete size is offered; sizes
// that cannot hold the current selection even with the tolerant capacities
// are labelled, and choosing one is rejected by the form.
func SizeForm(w domain.Widget, kind domain.ServiceKind) (domain.WidgetSize, error) {
	choice := w.Size
	count := domain.SelectionLen(w.Metrics)

	field := huh.NewSelect[domain.WidgetSize]().
		Title("Widget size").
		Description(fmt.Sprintf("%d metrics selected", count)).
		Options(sizeOptions(kind, count)...).
		Value(&choice).
		Height(len(domain.ConcreteSizes) + 2).
		Validate(func(s domain.WidgetSize) error {
			if !layout.Fits(s, count, kind, true) {
				return fmt.Errorf("%s holds at most %d metrics", s, layout.Capacity(kind, s, true))
			}
			return nil
		})

	if err := runForm(huh.NewGroup(field)); err != nil {
		return "", err
	}
	return choice, nil
}

func sizeOptions(kind domain.ServiceKind, count int) []huh.Option[domain.WidgetSize] {
	options := make([]huh.Option[domain.WidgetSize], 0, len(domain.ConcreteSizes))
	for _, s := range domain.ConcreteSizes {
		options = append(options, huh.NewOption(sizeLabel(kind, s, count), s))
	}
	return options
}

func sizeLabel(kind domain.ServiceKind, s domain.WidgetSize, count int) string {
	fp := s.Footprint()
	capacity := layout.Capacity(kind, s, true)
	capText := fmt.Sprintf("up to %d", capacity)
	if capacity == layout.Unbounded {
		capText = "unlimited"
	}
	label := fmt.Sprintf("%-10s %dx%d  %s", s, fp.Columns, fp.Rows, capText)
	if !layout.Fits(s, count, kind, true) {
		label += "  (too small)"
	}
	return label
}

// MetricsForm asks which metrics w shows, in catalog order. The caller
// applies the result with layout.ApplyMetrics, which grows the widget when
// the selection no longer fits.
func MetricsForm(w domain.Widget, kind domain.ServiceKind) (domain.MetricSelection, error) {
	selected := []string{}
	if w.Metrics != nil {
		selected = w.Metrics.Keys()
	}

	field := huh.NewMultiSelect[string]().
		Title(fmt.Sprintf("%s metrics", kind.DisplayName())).
		Options(metricOptions(kind, selected)...).
		Value(&selected).
		Height(selectHeight(len(domain.CatalogKeys(kind))+2, 14))

	if err := runForm(huh.NewGroup(field)); err != nil {
		return nil, err
	}
	return domain.SelectionFromKeys(kind, orderByCatalog(kind, selected))
}

func metricOptions(kind domain.ServiceKind, selected []string) []huh.Option[string] {
	keys := domain.CatalogKeys(kind)
	on := make(map[string]bool, len(selected))
	for _, k := range selected {
		on[k] = true
	}
	options := make([]huh.Option[string], 0, len(keys))
	for _, k := range keys {
		options = append(options, huh.NewOption(stats.Label(k), k).Selected(on[k]))
	}
	return options
}

// orderByCatalog sorts keys into catalog order, dropping unknown keys.
func orderByCatalog(kind domain.ServiceKind, keys []string) []string {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var out []string
	for _, k := range domain.CatalogKeys(kind) {
		if want[k] {
			out = append(out, k)
		}
	}
	return out
}

// ServiceForm collects a new service's fields interactively. Values already
// set on prefill are used as defaults.
func ServiceForm(prefill domain.Service, validateID func(string) error) (domain.Service, error) {
	svc := prefill
	kind := string(prefill.Kind)

	kindOpts := make([]huh.Option[string], 0, len(domain.Kinds))
	for _, k := range domain.Kinds {
		kindOpts = append(kindOpts, huh.NewOption(k.DisplayName(), string(k)))
	}

	err := runForm(
		huh.NewGroup(
			huh.NewInput().Title("Service id").Value(&svc.ID).Validate(validateID),
			huh.NewInput().Title("Display name").Value(&svc.Name).Validate(huh.ValidateNotEmpty()),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Kind").Options(kindOpts...).Value(&kind),
			huh.NewInput().Title("Stats URL").Placeholder("http://10.0.0.2:8080/stats").Value(&svc.URL),
		),
	)
	if err != nil {
		return domain.Service{}, err
	}
	svc.Kind = domain.ServiceKind(kind)
	return svc, nil
}

// RefreshWithSpinner runs one stats refresh pass behind a spinner.
func RefreshWithSpinner(ctx context.Context, r *stats.Refresher, services []domain.Service) ([]stats.Result, error) {
	var results []stats.Result
	err := spinner.New().
		Title(fmt.Sprintf("Refreshing %d services...", len(services))).
		Accessible(accessible()).
		Output(os.Stderr).
		ActionWithErr(func(context.Context) error {
			var err error
			results, err = r.Refresh(ctx, services)
			return err
		}).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return results, ErrAborted
		}
		return results, err
	}
	return results, nil
}

func selectHeight(optionCount, max int) int {
	if optionCount < max {
		return optionCount
	}
	return max
}
