package layout

import (
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/widget/domain"
)

// ApplyMetrics replaces the widget's selection and re-validates it against
// the strict capacity. If the current size no longer fits, the size is
// corrected to the minimum size for the new selection. The returned bool
// reports whether the size changed.
func ApplyMetrics(w domain.Widget, kind domain.ServiceKind, metrics domain.MetricSelection) (domain.Widget, bool, error) {
	if metrics == nil || metrics.Kind() != kind {
		return w, false, fmt.Errorf("layout: widget %s: %w", w.ID, domain.ErrKindMismatch)
	}

	w.Metrics = domain.CloneSelection(metrics)
	if ValidateWidgetSize(w.Size, w.Metrics, kind, false) && w.Size != domain.SizeAuto {
		return w, false, nil
	}
	w, changed := resize(w, kind)
	return w, changed, nil
}

// ApplySize sets an interactively chosen size. The choice is checked with
// the tolerant capacity so a borderline pick survives while metrics are
// still being edited; a size that does not fit is corrected the same way as
// ApplyMetrics. SizeAuto resolves to the kind's preferred size first. The
// returned bool reports whether the stored size differs from the request.
func ApplySize(w domain.Widget, kind domain.ServiceKind, size domain.WidgetSize) (domain.Widget, bool) {
	requested := size
	if size == domain.SizeAuto {
		size = DetermineOptimalSize(kind)
	}
	w.Size = size
	if ValidateWidgetSize(size, w.Metrics, kind, true) {
		return w, size != requested
	}
	w, _ = resize(w, kind)
	return w, w.Size != requested
}

func resize(w domain.Widget, kind domain.ServiceKind) (domain.Widget, bool) {
	next := MinimumSizeForContent(w.Metrics, kind, false)
	changed := next != w.Size
	w.Size = next
	return w, changed
}
