package stats

import (
	"testing"

	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/google/go-cmp/cmp"
)

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"cpuPercent":       "CPU %",
		"memoryUsedBytes":  "Memory Used",
		"totalVMs":         "Total VMs",
		"downloadSpeedBps": "Download Speed",
		"blockedPercent":   "Blocked %",
		"activeStreams":    "Active Streams",
	}
	for key, want := range tests {
		if got := Label(key); got != want {
			t.Errorf("Label(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestReadings(t *testing.T) {
	sel := domain.HypervisorSelection{
		domain.HypervisorCPUPercent,
		domain.HypervisorMemoryUsedBytes,
		domain.HypervisorRunningCount,
		domain.HypervisorNetDownBps,
	}
	p := &Payload{Metrics: map[string]float64{
		"cpuPercent":      12.345,
		"memoryUsedBytes": 3 * 1024 * 1024 * 1024,
		"runningCount":    7,
	}}

	got := Readings(sel, p)
	want := []Reading{
		{Key: "cpuPercent", Label: "CPU %", Value: "12.3%"},
		{Key: "memoryUsedBytes", Label: "Memory Used", Value: "3.0 GiB"},
		{Key: "runningCount", Label: "Running Count", Value: "7"},
		{Key: "netDownBps", Label: "Net Down", Value: "-", Missing: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Readings (-want +got):\n%s", diff)
	}
}

func TestReadings_NoPayload(t *testing.T) {
	got := Readings(domain.DNSSelection{domain.DNSBlockedPercent}, nil)
	if len(got) != 1 || !got[0].Missing {
		t.Errorf("expected one missing reading, got %+v", got)
	}
	if Readings(nil, nil) != nil {
		t.Error("expected nil readings for nil selection")
	}
}

func TestFormatValue_PerKind(t *testing.T) {
	tests := []struct {
		sel  domain.MetricSelection
		key  string
		v    float64
		want string
	}{
		{domain.TorrentSelection{}, "shareRatio", 1.5, "1.50"},
		{domain.TorrentSelection{}, "uploadSpeedBps", 512, "512 B/s"},
		{domain.MediaSelection{}, "bandwidthBps", 2048, "2.0 KiB/s"},
		{domain.DNSSelection{}, "blockedPercent", 9.99, "10.0%"},
		{domain.DNSSelection{}, "totalQueries", 1200, "1200"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.sel, tt.key, tt.v); got != tt.want {
			t.Errorf("formatValue(%T, %s, %v) = %q, want %q", tt.sel, tt.key, tt.v, got, tt.want)
		}
	}
}
