package tui

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/homegrid/internal/layout"
	"nathanbeddoewebdev/homegrid/internal/stats"
	"nathanbeddoewebdev/homegrid/internal/tui/styles"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	// cellLines is the content height of one grid row unit.
	cellLines = 3
	tileGap   = 1
	minWidth  = 24
)

// GridOptions controls RenderGrid.
type GridOptions struct {
	Width int

	// Selected is the id of the tile under the cursor.
	Selected string

	// Grabbed marks the selected tile as being dragged.
	Grabbed bool
}

// RenderGrid draws the packed rows of l. Widgets whose service is missing
// from services are not drawn. payloads may be nil.
func RenderGrid(l domain.Layout, services map[string]domain.Service, payloads map[string]*stats.Payload, opts GridOptions) string {
	widgets := layout.FilterOrphans(l.Widgets, services)
	if len(widgets) == 0 {
		return styles.MutedText.Render("No widgets. Add a service, then run `homegrid home generate`.")
	}

	width := max(opts.Width, minWidth)
	colWidth := (width - tileGap) / domain.GridColumns

	rows := layout.PackRows(widgets)
	rendered := make([]string, 0, len(rows))
	for _, row := range rows {
		rowUnits := 1
		for _, w := range row {
			rowUnits = max(rowUnits, w.Size.Footprint().Rows)
		}
		height := rowUnits*cellLines + (rowUnits - 1)

		tiles := make([]string, 0, len(row)*2)
		for i, w := range row {
			if i > 0 {
				tiles = append(tiles, strings.Repeat(" ", tileGap))
			}
			tileWidth := colWidth
			if w.Size.ColumnSpan() > 1 {
				tileWidth = colWidth*domain.GridColumns + tileGap
			}
			t := tile{
				widget:  w,
				service: services[w.ServiceID],
				payload: payloads[w.ServiceID],
			}
			tiles = append(tiles, t.render(tileWidth, height, w.ID == opts.Selected, opts.Grabbed))
		}
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

type tile struct {
	widget  domain.Widget
	service domain.Service
	payload *stats.Payload
}

// Title returns the header text of a widget: its override or the service name.
func Title(w domain.Widget, svc domain.Service) string {
	if w.TitleOverride != nil && *w.TitleOverride != "" {
		return *w.TitleOverride
	}
	if svc.Name != "" {
		return svc.Name
	}
	return w.ServiceID
}

func (t tile) render(width, height int, selected, grabbed bool) string {
	style := styles.Tile
	switch {
	case selected && grabbed:
		style = styles.TileGrabbed
	case selected:
		style = styles.TileSelected
	}

	// Border and horizontal padding.
	inner := max(width-4, 4)
	lines := make([]string, 0, height)

	badge := styles.SizeBadge(string(t.widget.Size))
	titleWidth := max(inner-lipgloss.Width(badge)-1, 1)
	title := ansi.Truncate(Title(t.widget, t.service), titleWidth, "…")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.KindColor(t.service.Kind))
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(badge), 1)
	lines = append(lines, titleStyle.Render(title)+strings.Repeat(" ", gap)+badge)

	readings := stats.Readings(t.widget.Metrics, t.payload)
	room := height - 1
	shown := readings
	if len(readings) > room {
		shown = readings[:max(room-1, 0)]
	}
	for _, r := range shown {
		lines = append(lines, readingLine(r, inner))
	}
	if hidden := len(readings) - len(shown); hidden > 0 {
		lines = append(lines, styles.MutedText.Render(fmt.Sprintf("+%d more", hidden)))
	}

	return style.
		Width(width - 2).
		Height(height).
		Render(strings.Join(lines, "\n"))
}

func readingLine(r stats.Reading, width int) string {
	value := styles.Value.Render(r.Value)
	if r.Missing {
		value = styles.MutedText.Render(r.Value)
	}
	labelWidth := max(width-lipgloss.Width(value)-1, 1)
	label := ansi.Truncate(r.Label, labelWidth, "…")
	gap := max(width-lipgloss.Width(label)-lipgloss.Width(value), 1)
	return styles.Label.Render(label) + strings.Repeat(" ", gap) + value
}

// RenderRowsText prints the row grouping of l without styling, one row per
// line, for non-interactive output.
func RenderRowsText(l domain.Layout, services map[string]domain.Service) string {
	var b strings.Builder
	for i, row := range layout.PackRows(layout.FilterOrphans(l.Widgets, services)) {
		names := make([]string, len(row))
		for j, w := range row {
			names[j] = fmt.Sprintf("%s (%s)", Title(w, services[w.ServiceID]), w.Size)
		}
		fmt.Fprintf(&b, "row %d: %s\n", i+1, strings.Join(names, " | "))
	}
	return b.String()
}
