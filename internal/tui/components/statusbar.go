package components

import (
	"nathanbeddoewebdev/homegrid/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Status is the one-line message shown above the footer.
type Status struct {
	Message string
	IsError bool
}

// Info returns a non-error status.
func Info(msg string) Status { return Status{Message: msg} }

// Error returns an error status built from err.
func Error(err error) Status { return Status{Message: err.Error(), IsError: true} }

// View renders s across width. An empty status renders nothing.
func (s Status) View(width int) string {
	if s.Message == "" {
		return ""
	}

	style := styles.MutedText
	if s.IsError {
		style = styles.ErrorText
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(style.Render(s.Message))
}
