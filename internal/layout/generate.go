package layout

import "nathanbeddoewebdev/homegrid/internal/widget/domain"

// Generator builds a complete default layout for a home.
type Generator struct {
	// NewID returns widget identifiers. Defaults to domain.NewWidgetID.
	NewID func() string
}

// GenerateLayout runs the default Generator.
func GenerateLayout(home string, services []domain.Service) domain.Layout {
	return Generator{}.Generate(home, services)
}

// Generate returns one widget per service, in the order given. Each widget
// gets the kind's preferred size and the curated defaults for that size.
// Services whose kind is outside the closed set are skipped.
func (g Generator) Generate(home string, services []domain.Service) domain.Layout {
	newID := g.NewID
	if newID == nil {
		newID = domain.NewWidgetID
	}

	l := domain.Layout{Home: home, Widgets: make([]domain.Widget, 0, len(services))}
	for _, svc := range services {
		if !svc.Kind.Valid() {
			continue
		}
		size := DetermineOptimalSize(svc.Kind)
		l.Widgets = append(l.Widgets, domain.Widget{
			ID:        newID(),
			ServiceID: svc.ID,
			Size:      size,
			Metrics:   DefaultMetrics(svc.Kind, size),
		})
	}
	return l
}

// NewWidget builds a widget for a manual "add widget" action. SizeAuto is
// resolved to the kind's preferred size; a nil selection takes the defaults
// for the resolved size, and an oversized selection grows the widget.
func NewWidget(svc domain.Service, size domain.WidgetSize, metrics domain.MetricSelection) (domain.Widget, error) {
	if !svc.Kind.Valid() {
		return domain.Widget{}, domain.ErrUnknownKind
	}
	if size == domain.SizeAuto || size == "" {
		size = DetermineOptimalSize(svc.Kind)
	}
	w := domain.Widget{
		ID:        domain.NewWidgetID(),
		ServiceID: svc.ID,
		Size:      size,
		Metrics:   DefaultMetrics(svc.Kind, size),
	}
	if metrics == nil {
		return w, nil
	}
	w, _, err := ApplyMetrics(w, svc.Kind, metrics)
	return w, err
}
