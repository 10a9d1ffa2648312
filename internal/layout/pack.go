package layout

import "nathanbeddoewebdev/homegrid/internal/widget/domain"

// Row is one display row of the 2-column grid.
type Row []domain.Widget

// PackRows groups widgets into display rows without reordering them.
// Multi-column widgets always sit alone on their row; single-column widgets
// pair up, and a single-column widget followed by a multi-column one is
// flushed as a row of its own.
func PackRows(widgets []domain.Widget) []Row {
	var rows []Row
	var pending Row

	flush := func() {
		if len(pending) > 0 {
			rows = append(rows, pending)
			pending = nil
		}
	}

	for _, w := range widgets {
		if w.Size.ColumnSpan() > 1 {
			flush()
			rows = append(rows, Row{w})
			continue
		}
		pending = append(pending, w)
		if len(pending) == domain.GridColumns {
			flush()
		}
	}
	flush()

	return rows
}

// FilterOrphans drops widgets whose service is not in services. The render
// layer uses it so a widget for a deleted service is never drawn.
func FilterOrphans(widgets []domain.Widget, services map[string]domain.Service) []domain.Widget {
	out := make([]domain.Widget, 0, len(widgets))
	for _, w := range widgets {
		if _, ok := services[w.ServiceID]; ok {
			out = append(out, w)
		}
	}
	return out
}
