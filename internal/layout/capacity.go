// Package layout implements the home layout engine: the size/capacity
// model, the fit validator, the auto-layout generator, and the row packer.
//
// Everything in this package is a pure function of its inputs. Mutation and
// persistence live in the layoutstore package.
package layout

import (
	"math"

	"nathanbeddoewebdev/homegrid/internal/widget/domain"
)

// Unbounded is the capacity of sizes that scroll rather than clip.
const Unbounded = math.MaxInt32

// limit is the number of metrics a (kind, size) pair can show legibly.
// tolerant is one step looser and is used while the user is choosing a
// size so a borderline selection is not rejected mid-edit.
type limit struct {
	strict   int
	tolerant int
}

var (
	hypervisorLimits = map[domain.WidgetSize]limit{
		domain.SizeSmall:     {strict: 2, tolerant: 3},
		domain.SizeMedium:    {strict: 4, tolerant: 5},
		domain.SizeWide:      {strict: 4, tolerant: 5},
		domain.SizeLarge:     {strict: 6, tolerant: 7},
		domain.SizeTall:      {strict: 6, tolerant: 7},
		domain.SizeExtraWide: {strict: Unbounded, tolerant: Unbounded},
	}

	mediaLimits = map[domain.WidgetSize]limit{
		domain.SizeSmall:     {strict: 1, tolerant: 2},
		domain.SizeMedium:    {strict: 3, tolerant: 4},
		domain.SizeWide:      {strict: 3, tolerant: 4},
		domain.SizeLarge:     {strict: 5, tolerant: 6},
		domain.SizeTall:      {strict: 5, tolerant: 6},
		domain.SizeExtraWide: {strict: Unbounded, tolerant: Unbounded},
	}

	torrentLimits = map[domain.WidgetSize]limit{
		domain.SizeSmall:     {strict: 2, tolerant: 3},
		domain.SizeMedium:    {strict: 4, tolerant: 5},
		domain.SizeWide:      {strict: 4, tolerant: 5},
		domain.SizeLarge:     {strict: 6, tolerant: 7},
		domain.SizeTall:      {strict: 6, tolerant: 7},
		domain.SizeExtraWide: {strict: Unbounded, tolerant: Unbounded},
	}

	dnsLimits = map[domain.WidgetSize]limit{
		domain.SizeSmall:     {strict: 2, tolerant: 3},
		domain.SizeMedium:    {strict: 3, tolerant: 4},
		domain.SizeWide:      {strict: 3, tolerant: 4},
		domain.SizeLarge:     {strict: 5, tolerant: 6},
		domain.SizeTall:      {strict: 5, tolerant: 6},
		domain.SizeExtraWide: {strict: Unbounded, tolerant: Unbounded},
	}
)

func limitsFor(kind domain.ServiceKind) map[domain.WidgetSize]limit {
	switch kind {
	case domain.KindHypervisor:
		return hypervisorLimits
	case domain.KindMediaServer:
		return mediaLimits
	case domain.KindTorrentClient:
		return torrentLimits
	case domain.KindDNSFilter:
		return dnsLimits
	}
	return nil
}

// Capacity returns how many metrics a widget of the given kind and size can
// show. SizeAuto is Unbounded since it is resolved before storage. Unknown
// kinds and sizes have zero capacity.
func Capacity(kind domain.ServiceKind, size domain.WidgetSize, tolerant bool) int {
	if size == domain.SizeAuto {
		return Unbounded
	}
	l, ok := limitsFor(kind)[size]
	if !ok {
		return 0
	}
	if tolerant {
		return l.tolerant
	}
	return l.strict
}
