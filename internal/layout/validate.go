package layout

import "nathanbeddoewebdev/homegrid/internal/widget/domain"

// ValidateWidgetSize reports whether metrics fit a widget of the given size
// and kind. SizeAuto always fits.
func ValidateWidgetSize(size domain.WidgetSize, metrics domain.MetricSelection, kind domain.ServiceKind, tolerant bool) bool {
	return Fits(size, domain.SelectionLen(metrics), kind, tolerant)
}

// Fits is ValidateWidgetSize for a bare metric count.
func Fits(size domain.WidgetSize, count int, kind domain.ServiceKind, tolerant bool) bool {
	if size == domain.SizeAuto {
		return true
	}
	return count <= Capacity(kind, size, tolerant)
}

// MinimumSizeForContent returns the smallest concrete size whose capacity
// holds metrics. strict selects the non-tolerant capacities. When nothing
// is large enough it saturates at SizeExtraWide.
func MinimumSizeForContent(metrics domain.MetricSelection, kind domain.ServiceKind, strict bool) domain.WidgetSize {
	return MinimumSizeForCount(domain.SelectionLen(metrics), kind, strict)
}

// MinimumSizeForCount is MinimumSizeForContent for a bare metric count.
func MinimumSizeForCount(count int, kind domain.ServiceKind, strict bool) domain.WidgetSize {
	for _, size := range domain.ConcreteSizes {
		if Capacity(kind, size, !strict) >= count {
			return size
		}
	}
	return domain.SizeExtraWide
}
