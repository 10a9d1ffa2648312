// Package stats fetches live metric values from configured services and
// caches them for the grid renderer. The layout engine never depends on
// this package; it only supplies the widgets whose services are polled.
package stats

import (
	"fmt"
	"strings"
	"time"

	"nathanbeddoewebdev/homegrid/internal/widget/domain"
)

// Payload is one snapshot of a service's metrics.
type Payload struct {
	ServiceID string             `json:"service_id"`
	Metrics   map[string]float64 `json:"metrics"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Reading is one metric value prepared for display.
type Reading struct {
	Key   string
	Label string
	Value string
	// Missing is set when the payload carried no value for Key.
	Missing bool
}

// Readings returns sel's metrics in selection order with values taken from
// p. A nil payload yields placeholder readings.
func Readings(sel domain.MetricSelection, p *Payload) []Reading {
	if sel == nil {
		return nil
	}
	out := make([]Reading, 0, sel.Len())
	for _, key := range sel.Keys() {
		r := Reading{Key: key, Label: Label(key), Value: "-", Missing: true}
		if p != nil {
			if v, ok := p.Metrics[key]; ok {
				r.Value = formatValue(sel, key, v)
				r.Missing = false
			}
		}
		out = append(out, r)
	}
	return out
}

// formatValue picks a unit for key by switching over the selection kind.
func formatValue(sel domain.MetricSelection, key string, v float64) string {
	switch sel.(type) {
	case domain.HypervisorSelection:
		switch domain.HypervisorMetric(key) {
		case domain.HypervisorCPUPercent, domain.HypervisorMemoryPercent:
			return formatPercent(v)
		case domain.HypervisorMemoryUsedBytes:
			return formatBytes(v)
		case domain.HypervisorNetUpBps, domain.HypervisorNetDownBps:
			return formatBytes(v) + "/s"
		}
	case domain.MediaSelection:
		if domain.MediaMetric(key) == domain.MediaBandwidthBps {
			return formatBytes(v) + "/s"
		}
	case domain.TorrentSelection:
		switch domain.TorrentMetric(key) {
		case domain.TorrentDownloadSpeedBps, domain.TorrentUploadSpeedBps:
			return formatBytes(v) + "/s"
		case domain.TorrentShareRatio:
			return fmt.Sprintf("%.2f", v)
		}
	case domain.DNSSelection:
		if domain.DNSMetric(key) == domain.DNSBlockedPercent {
			return formatPercent(v)
		}
	}
	return formatCount(v)
}

// Label turns a camelCase metric key into a short title-cased label.
func Label(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case i == 0:
			b.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	label := b.String()
	label = strings.TrimSuffix(label, " Bps")
	label = strings.TrimSuffix(label, " Bytes")
	if trimmed, ok := strings.CutSuffix(label, " Percent"); ok {
		label = trimmed + " %"
	}
	label = strings.Replace(label, "V Ms", "VMs", 1)
	return strings.Replace(label, "Cpu", "CPU", 1)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func formatCount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func formatBytes(v float64) string {
	const unit = 1024.0
	if v < unit {
		return fmt.Sprintf("%.0f B", v)
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB"}
	v /= unit
	i := 0
	for v >= unit && i < len(suffixes)-1 {
		v /= unit
		i++
	}
	return fmt.Sprintf("%.1f %s", v, suffixes[i])
}
