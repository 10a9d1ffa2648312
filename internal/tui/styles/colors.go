// Package styles provides the color palette and style definitions for the
// homegrid TUI. All visual constants live here so the grid, forms, and
// viewers share one look.
package styles

import (
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Core text
	White   = lipgloss.Color("#E2E2E2")
	Gray    = lipgloss.Color("#888888")
	Muted   = lipgloss.Color("#555555")
	DimGray = lipgloss.Color("#444444")

	// Accent
	Blue     = lipgloss.Color("#5FAFFF")
	DarkBlue = lipgloss.Color("#1A2F40")

	// Status
	Green  = lipgloss.Color("#5FD787")
	Yellow = lipgloss.Color("#FFD787")
	Red    = lipgloss.Color("#FF8787")

	// Per-kind tile accents
	Orange = lipgloss.Color("#FFAF5F")
	Purple = lipgloss.Color("#AF87FF")
	Teal   = lipgloss.Color("#5FD7D7")
)

// KindColor returns the accent used for tiles of kind.
func KindColor(kind domain.ServiceKind) lipgloss.Color {
	switch kind {
	case domain.KindHypervisor:
		return Orange
	case domain.KindMediaServer:
		return Purple
	case domain.KindTorrentClient:
		return Green
	case domain.KindDNSFilter:
		return Teal
	}
	return Gray
}
