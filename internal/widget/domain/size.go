package domain

import (
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/util"
)

// WidgetSize is the size class of a widget on the 2-column grid.
type WidgetSize string

const (
	// SizeAuto is a placeholder resolved to a concrete size before a
	// widget is stored.
	SizeAuto      WidgetSize = "auto"
	SizeSmall     WidgetSize = "small"
	SizeMedium    WidgetSize = "medium"
	SizeWide      WidgetSize = "wide"
	SizeLarge     WidgetSize = "large"
	SizeTall      WidgetSize = "tall"
	SizeExtraWide WidgetSize = "extraWide"
)

// GridColumns is the fixed width of the home grid.
const GridColumns = 2

// ConcreteSizes lists the concrete sizes in ascending capacity order.
// The minimum-size scan walks this slice front to back.
var ConcreteSizes = []WidgetSize{
	SizeSmall,
	SizeMedium,
	SizeWide,
	SizeLarge,
	SizeTall,
	SizeExtraWide,
}

// Footprint is the number of grid cells a size occupies.
type Footprint struct {
	Columns int
	Rows    int
}

// Footprint returns the (columns, rows) span of s. SizeAuto and unknown
// sizes report a 1x1 footprint.
func (s WidgetSize) Footprint() Footprint {
	switch s {
	case SizeMedium:
		return Footprint{Columns: 1, Rows: 2}
	case SizeWide:
		return Footprint{Columns: 2, Rows: 1}
	case SizeLarge:
		return Footprint{Columns: 2, Rows: 2}
	case SizeTall:
		return Footprint{Columns: 1, Rows: 3}
	case SizeExtraWide:
		return Footprint{Columns: 2, Rows: 3}
	}
	return Footprint{Columns: 1, Rows: 1}
}

// ColumnSpan is a shorthand for s.Footprint().Columns.
func (s WidgetSize) ColumnSpan() int { return s.Footprint().Columns }

// Valid reports whether s is auto or one of the concrete sizes.
func (s WidgetSize) Valid() bool {
	if s == SizeAuto {
		return true
	}
	for _, c := range ConcreteSizes {
		if s == c {
			return true
		}
	}
	return false
}

// ParseSize matches s case-insensitively against the known sizes.
func ParseSize(s string) (WidgetSize, error) {
	normalized := util.NormalizeKey(s)
	if normalized == string(SizeAuto) {
		return SizeAuto, nil
	}
	for _, c := range ConcreteSizes {
		if util.NormalizeKey(string(c)) == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSize, s)
}
