package styles

import "github.com/charmbracelet/lipgloss"

// --- Typography ---

var (
	// Title is the main header text style.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	// Subtitle is used for secondary headings.
	Subtitle = lipgloss.NewStyle().
			Foreground(Gray)

	// Label is used for metric names inside tiles.
	Label = lipgloss.NewStyle().
		Foreground(Gray)

	// Value is used for metric values inside tiles.
	Value = lipgloss.NewStyle().
		Foreground(White).
		Bold(true)

	// MutedText is for help text, hints, and placeholder values.
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// AccentText is for highlighted interactive elements.
	AccentText = lipgloss.NewStyle().
			Foreground(Blue)

	// ErrorText is for error messages.
	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// SuccessText is for success messages.
	SuccessText = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	// WarningText is for warning messages.
	WarningText = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)
)

// --- Tiles ---

var (
	// Border is the default tile border.
	Border = lipgloss.RoundedBorder()

	// Tile is an unfocused grid tile.
	Tile = lipgloss.NewStyle().
		Border(Border).
		BorderForeground(DimGray).
		Padding(0, 1)

	// TileSelected is the tile under the cursor.
	TileSelected = lipgloss.NewStyle().
			Border(Border).
			BorderForeground(Blue).
			Padding(0, 1)

	// TileGrabbed is the tile being dragged to a new position.
	TileGrabbed = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Yellow).
			Padding(0, 1)

	// Card is a rounded-border panel for viewer content.
	Card = lipgloss.NewStyle().
		Border(Border).
		BorderForeground(DimGray).
		Padding(1, 2)
)

// SizeBadge renders a widget size class as a small muted tag.
func SizeBadge(size string) string {
	return MutedText.Render("[" + size + "]")
}

// --- Key binding hint styles ---

var (
	// KeyStyle is used for key labels in the footer (e.g. "q").
	KeyStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true)

	// KeyDescStyle is used for key descriptions in the footer (e.g. "quit").
	KeyDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// KeySepStyle is used for separators between key bindings.
	KeySepStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// FormatKeyBinding formats a single key binding for the footer.
func FormatKeyBinding(key, desc string) string {
	return KeyStyle.Render(key) + " " + KeyDescStyle.Render(desc)
}

// --- Table styles ---

var (
	// TableHeader is the style for plain-text list headers.
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Gray)

	// TableSelectedRow is the style for the highlighted list row.
	TableSelectedRow = lipgloss.NewStyle().
				Foreground(White).
				Background(DarkBlue).
				Bold(true)
)
