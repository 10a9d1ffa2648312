package layoutstore

import (
	"errors"
	"testing"

	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeLayout_Malformed(t *testing.T) {
	if _, _, err := DecodeLayout([]byte("{not json")); err == nil {
		t.Error("expected error for malformed document")
	}
}

func TestDecodeLayout_DropReasons(t *testing.T) {
	blob := `{"version":1,"home":"h","widgets":[
		{"service_id":"x","size":"small","metrics":{"kind":"dns-filter","items":[]}},
		{"id":"no-metrics","service_id":"x","size":"small"},
		{"id":"kind","service_id":"x","size":"small","metrics":{"kind":"toaster","items":[]}},
		{"id":"metric","service_id":"x","size":"small","metrics":{"kind":"hypervisor","items":["totalQueries"]}},
		{"id":"size","service_id":"x","size":"gigantic","metrics":{"kind":"hypervisor","items":["cpuPercent"]}}
	]}`

	l, dropped, err := DecodeLayout([]byte(blob))
	if err != nil {
		t.Fatalf("DecodeLayout failed: %v", err)
	}
	if len(l.Widgets) != 0 {
		t.Errorf("expected every widget dropped, got %d", len(l.Widgets))
	}
	if len(dropped) != 5 {
		t.Fatalf("expected 5 dropped widgets, got %d", len(dropped))
	}

	sentinels := map[string]error{
		"kind":   domain.ErrUnknownKind,
		"metric": domain.ErrUnknownMetric,
		"size":   domain.ErrUnknownSize,
	}
	for _, d := range dropped {
		want, ok := sentinels[d.ID]
		if !ok {
			continue
		}
		if !errors.Is(d.Reason, want) {
			t.Errorf("widget %s: reason %v, want %v", d.ID, d.Reason, want)
		}
	}
}

func TestDecodeLayout_ResolvesAutoSize(t *testing.T) {
	blob := `{"version":1,"home":"h","widgets":[
		{"id":"w","service_id":"pve","size":"auto","metrics":{"kind":"hypervisor","items":["cpuPercent"]}}
	]}`

	l, dropped, err := DecodeLayout([]byte(blob))
	if err != nil || len(dropped) != 0 {
		t.Fatalf("DecodeLayout: err=%v dropped=%v", err, dropped)
	}
	if got := l.Widgets[0].Size; got != domain.SizeLarge {
		t.Errorf("Size = %q, want %q", got, domain.SizeLarge)
	}
}

func TestDecodeLayout_ClearsNonPositiveRefresh(t *testing.T) {
	blob := `{"version":1,"home":"h","widgets":[
		{"id":"zero","service_id":"pve","size":"large","metrics":{"kind":"hypervisor","items":[]},"refresh_interval_override":0},
		{"id":"ok","service_id":"pve","size":"large","metrics":{"kind":"hypervisor","items":[]},"refresh_interval_override":30}
	]}`

	l, _, err := DecodeLayout([]byte(blob))
	if err != nil {
		t.Fatalf("DecodeLayout failed: %v", err)
	}
	if l.Widgets[0].RefreshIntervalOverride != nil {
		t.Errorf("expected zero override cleared, got %d", *l.Widgets[0].RefreshIntervalOverride)
	}
	if r := l.Widgets[1].RefreshIntervalOverride; r == nil || *r != 30 {
		t.Errorf("expected override 30, got %v", r)
	}
}

func TestEncodeLayout_KeepsSelectionOrder(t *testing.T) {
	in := domain.Layout{Home: "h", Widgets: []domain.Widget{{
		ID: "w", ServiceID: "dns", Size: domain.SizeMedium,
		Metrics: domain.DNSSelection{domain.DNSBlockedPercent, domain.DNSTotalQueries, domain.DNSActiveClients},
	}}}

	data, err := EncodeLayout(in)
	if err != nil {
		t.Fatalf("EncodeLayout failed: %v", err)
	}
	out, dropped, err := DecodeLayout(data)
	if err != nil || len(dropped) != 0 {
		t.Fatalf("DecodeLayout: err=%v dropped=%v", err, dropped)
	}

	want := []string{"blockedPercent", "totalQueries", "activeClients"}
	if diff := cmp.Diff(want, out.Widgets[0].Metrics.Keys()); diff != "" {
		t.Errorf("selection order (-want +got):\n%s", diff)
	}
	if out.Widgets[0].Kind() != domain.KindDNSFilter {
		t.Errorf("Kind = %q, want %q", out.Widgets[0].Kind(), domain.KindDNSFilter)
	}
}
