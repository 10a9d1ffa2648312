package domain

import "fmt"

// MetricSelection is the ordered set of metrics a widget displays. It is a
// closed sum type: the only implementations are the per-kind selection
// slices below, and consumers switch over them exhaustively.
type MetricSelection interface {
	// Kind is the tag of the selection.
	Kind() ServiceKind

	// Len is the number of selected metrics.
	Len() int

	// Keys returns the selected metric keys in display order.
	Keys() []string

	metricSelection()
}

// HypervisorSelection selects hypervisor metrics.
type HypervisorSelection []HypervisorMetric

// MediaSelection selects media server metrics.
type MediaSelection []MediaMetric

// TorrentSelection selects torrent client metrics.
type TorrentSelection []TorrentMetric

// DNSSelection selects DNS filter metrics.
type DNSSelection []DNSMetric

func (s HypervisorSelection) Kind() ServiceKind { return KindHypervisor }
func (s MediaSelection) Kind() ServiceKind      { return KindMediaServer }
func (s TorrentSelection) Kind() ServiceKind    { return KindTorrentClient }
func (s DNSSelection) Kind() ServiceKind        { return KindDNSFilter }

func (s HypervisorSelection) Len() int { return len(s) }
func (s MediaSelection) Len() int      { return len(s) }
func (s TorrentSelection) Len() int    { return len(s) }
func (s DNSSelection) Len() int        { return len(s) }

func (s HypervisorSelection) Keys() []string { return keysOf(s) }
func (s MediaSelection) Keys() []string      { return keysOf(s) }
func (s TorrentSelection) Keys() []string    { return keysOf(s) }
func (s DNSSelection) Keys() []string        { return keysOf(s) }

func (HypervisorSelection) metricSelection() {}
func (MediaSelection) metricSelection()      {}
func (TorrentSelection) metricSelection()    {}
func (DNSSelection) metricSelection()        {}

// EmptySelection returns a zero-length selection tagged with kind.
func EmptySelection(kind ServiceKind) (MetricSelection, error) {
	return SelectionFromKeys(kind, nil)
}

// SelectionFromKeys builds a selection for kind from metric keys. Keys must
// all belong to the kind's catalog; repeated keys keep their first position.
func SelectionFromKeys(kind ServiceKind, keys []string) (MetricSelection, error) {
	switch kind {
	case KindHypervisor:
		m, err := parseMetrics(HypervisorCatalog, keys)
		return HypervisorSelection(m), err
	case KindMediaServer:
		m, err := parseMetrics(MediaCatalog, keys)
		return MediaSelection(m), err
	case KindTorrentClient:
		m, err := parseMetrics(TorrentCatalog, keys)
		return TorrentSelection(m), err
	case KindDNSFilter:
		m, err := parseMetrics(DNSCatalog, keys)
		return DNSSelection(m), err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// CloneSelection returns a copy of sel that shares no backing array with it.
func CloneSelection(sel MetricSelection) MetricSelection {
	switch s := sel.(type) {
	case HypervisorSelection:
		return append(HypervisorSelection(nil), s...)
	case MediaSelection:
		return append(MediaSelection(nil), s...)
	case TorrentSelection:
		return append(TorrentSelection(nil), s...)
	case DNSSelection:
		return append(DNSSelection(nil), s...)
	}
	return nil
}

// SelectionLen is sel.Len() that tolerates a nil selection.
func SelectionLen(sel MetricSelection) int {
	if sel == nil {
		return 0
	}
	return sel.Len()
}

func parseMetrics[M ~string](catalog []M, keys []string) ([]M, error) {
	out := make([]M, 0, len(keys))
	seen := make(map[M]bool, len(keys))
	for _, k := range keys {
		m, ok := lookupMetric(catalog, k)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, k)
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out, nil
}

func lookupMetric[M ~string](catalog []M, key string) (M, bool) {
	for _, m := range catalog {
		if string(m) == key {
			return m, true
		}
	}
	var zero M
	return zero, false
}
