package domain

import "github.com/google/uuid"

// Widget is one tile on a home grid, bound to a single configured service.
type Widget struct {
	// ID is a generated unique identifier.
	ID string

	// ServiceID references a service owned by the service directory.
	ServiceID string

	// Size is the widget's size class. Stored widgets never hold SizeAuto.
	Size WidgetSize

	// Row and Column are decorative position hints. Placement is always
	// recomputed from widget order.
	Row    int
	Column int

	// TitleOverride replaces the service name in the widget header when set.
	TitleOverride *string

	// Metrics is the ordered metric selection. Its kind must match the
	// referenced service's kind.
	Metrics MetricSelection

	// RefreshIntervalOverride is a positive number of seconds that overrides
	// the home-wide refresh interval when set.
	RefreshIntervalOverride *int
}

// NewWidgetID returns a fresh widget identifier.
func NewWidgetID() string {
	return uuid.NewString()
}

// Kind returns the tag of the widget's metric selection, or "" if the
// widget has no selection.
func (w Widget) Kind() ServiceKind {
	if w.Metrics == nil {
		return ""
	}
	return w.Metrics.Kind()
}

// Clone returns a deep copy of w.
func (w Widget) Clone() Widget {
	c := w
	if w.TitleOverride != nil {
		t := *w.TitleOverride
		c.TitleOverride = &t
	}
	if w.RefreshIntervalOverride != nil {
		r := *w.RefreshIntervalOverride
		c.RefreshIntervalOverride = &r
	}
	if w.Metrics != nil {
		c.Metrics = CloneSelection(w.Metrics)
	}
	return c
}

// Layout is the ordered widget collection of one home. Widget order is the
// sole source of truth for grid placement.
type Layout struct {
	Home    string
	Widgets []Widget
}

// Clone returns a deep copy of l.
func (l Layout) Clone() Layout {
	c := Layout{Home: l.Home}
	if l.Widgets != nil {
		c.Widgets = make([]Widget, len(l.Widgets))
		for i, w := range l.Widgets {
			c.Widgets[i] = w.Clone()
		}
	}
	return c
}

// IndexOf returns the position of the widget with the given id, or -1.
func (l Layout) IndexOf(id string) int {
	for i, w := range l.Widgets {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// Service is a configured integration as seen by the layout engine.
type Service struct {
	ID   string
	Name string
	Kind ServiceKind
	Home string
	URL  string
}
