package layoutstore

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"nathanbeddoewebdev/homegrid/internal/layout"
	"nathanbeddoewebdev/homegrid/internal/logger"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/google/go-cmp/cmp"
)

func newTestStore(t *testing.T) (*Store, *MemoryBlobs) {
	t.Helper()
	blobs := NewMemoryBlobs()
	return New(blobs, logger.Discard()), blobs
}

func ids(l domain.Layout) []string {
	out := make([]string, len(l.Widgets))
	for i, w := range l.Widgets {
		out[i] = w.ID
	}
	return out
}

func rowIDs(rows []layout.Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		for _, w := range r {
			out[i] = append(out[i], w.ID)
		}
	}
	return out
}

func smallWidget(id string) domain.Widget {
	return domain.Widget{
		ID:        id,
		ServiceID: "svc-" + id,
		Size:      domain.SizeSmall,
		Metrics:   domain.DNSSelection{domain.DNSTotalQueries},
	}
}

func scenarioServices() []domain.Service {
	return []domain.Service{
		{ID: "pve", Name: "Proxmox", Kind: domain.KindHypervisor, Home: "home"},
		{ID: "qbt", Name: "qBittorrent", Kind: domain.KindTorrentClient, Home: "home"},
		{ID: "dns", Name: "AdGuard", Kind: domain.KindDNSFilter, Home: "home"},
	}
}

func TestLayout_EmptyHome(t *testing.T) {
	s, blobs := newTestStore(t)

	l := s.Layout("nowhere")
	if l.Home != "nowhere" {
		t.Errorf("Home = %q, want %q", l.Home, "nowhere")
	}
	if len(l.Widgets) != 0 {
		t.Errorf("expected no widgets, got %d", len(l.Widgets))
	}
	if blobs.Puts() != 0 {
		t.Errorf("reading an empty home should not persist, got %d puts", blobs.Puts())
	}
}

func TestScenario_GenerateMoveRepack(t *testing.T) {
	s, _ := newTestStore(t)

	l, generated := s.EnsureLayout("home", scenarioServices())
	if !generated {
		t.Fatal("expected EnsureLayout to generate on an empty home")
	}
	if len(l.Widgets) != 3 {
		t.Fatalf("expected 3 widgets, got %d", len(l.Widgets))
	}

	byService := make(map[string]domain.Widget)
	for _, w := range l.Widgets {
		byService[w.ServiceID] = w
		if !layout.ValidateWidgetSize(w.Size, w.Metrics, w.Kind(), false) {
			t.Errorf("widget for %s does not fit strictly: %s with %d metrics", w.ServiceID, w.Size, w.Metrics.Len())
		}
	}

	got := rowIDs(layout.PackRows(l.Widgets))
	want := [][]string{
		{byService["pve"].ID},
		{byService["qbt"].ID, byService["dns"].ID},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows before move (-want +got):\n%s", diff)
	}

	s.MoveWidget("home", byService["dns"].ID, 0)
	l = s.Layout("home")

	wantOrder := []string{byService["dns"].ID, byService["pve"].ID, byService["qbt"].ID}
	if diff := cmp.Diff(wantOrder, ids(l)); diff != "" {
		t.Errorf("order after move (-want +got):\n%s", diff)
	}

	got = rowIDs(layout.PackRows(l.Widgets))
	want = [][]string{
		{byService["dns"].ID},
		{byService["pve"].ID},
		{byService["qbt"].ID},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows after move (-want +got):\n%s", diff)
	}
}

func TestEnsureLayout_KeepsExisting(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddWidget("home", smallWidget("a"))

	l, generated := s.EnsureLayout("home", scenarioServices())
	if generated {
		t.Error("expected an existing layout to be kept")
	}
	if diff := cmp.Diff([]string{"a"}, ids(l)); diff != "" {
		t.Errorf("widgets (-want +got):\n%s", diff)
	}
}

func TestEnsureLayout_NoServices(t *testing.T) {
	s, blobs := newTestStore(t)

	l, generated := s.EnsureLayout("home", nil)
	if generated || len(l.Widgets) != 0 {
		t.Errorf("expected nothing generated, got generated=%v widgets=%d", generated, len(l.Widgets))
	}
	if blobs.Puts() != 0 {
		t.Errorf("expected no writes, got %d", blobs.Puts())
	}
}

func TestMoveWidget(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		toIndex int
		want    []string
	}{
		{name: "to front", id: "c", toIndex: 0, want: []string{"c", "a", "b", "d"}},
		{name: "to back", id: "a", toIndex: 3, want: []string{"b", "c", "d", "a"}},
		{name: "middle", id: "a", toIndex: 2, want: []string{"b", "c", "a", "d"}},
		{name: "clamped high", id: "b", toIndex: 99, want: []string{"a", "c", "d", "b"}},
		{name: "clamped low", id: "d", toIndex: -5, want: []string{"d", "a", "b", "c"}},
		{name: "same index", id: "b", toIndex: 1, want: []string{"a", "b", "c", "d"}},
		{name: "unknown id", id: "zz", toIndex: 0, want: []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			for _, id := range []string{"a", "b", "c", "d"} {
				s.AddWidget("home", smallWidget(id))
			}

			s.MoveWidget("home", tt.id, tt.toIndex)

			if diff := cmp.Diff(tt.want, ids(s.Layout("home"))); diff != "" {
				t.Errorf("order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMoveWidget_Idempotent(t *testing.T) {
	s, blobs := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		s.AddWidget("home", smallWidget(id))
	}

	s.MoveWidget("home", "c", 0)
	first := ids(s.Layout("home"))
	puts := blobs.Puts()

	s.MoveWidget("home", "c", 0)
	second := ids(s.Layout("home"))

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second move changed order (-first +second):\n%s", diff)
	}
	if blobs.Puts() != puts {
		t.Errorf("no-op move persisted: %d puts, want %d", blobs.Puts(), puts)
	}
}

func TestDropIndex(t *testing.T) {
	tests := []struct {
		source, target, want int
	}{
		{source: 0, target: 2, want: 1},
		{source: 1, target: 3, want: 2},
		{source: 3, target: 0, want: 0},
		{source: 2, target: 1, want: 1},
		{source: 2, target: 2, want: 2},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_onto_%d", tt.source, tt.target), func(t *testing.T) {
			if got := DropIndex(tt.source, tt.target); got != tt.want {
				t.Errorf("DropIndex(%d, %d) = %d, want %d", tt.source, tt.target, got, tt.want)
			}
		})
	}
}

func TestDropIndex_LandsBeforeTarget(t *testing.T) {
	s, _ := newTestStore(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		s.AddWidget("home", smallWidget(id))
	}

	// Drag "a" onto "c": "a" should end up directly before "c".
	s.MoveWidget("home", "a", DropIndex(0, 2))

	if diff := cmp.Diff([]string{"b", "a", "c", "d"}, ids(s.Layout("home"))); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestUpdateWidget(t *testing.T) {
	s, blobs := newTestStore(t)
	s.AddWidget("home", smallWidget("a"))

	w := smallWidget("a")
	title := "Ad blocker"
	w.TitleOverride = &title
	s.UpdateWidget("home", w)

	got, ok := s.Widget("home", "a")
	if !ok {
		t.Fatal("widget a missing after update")
	}
	if got.TitleOverride == nil || *got.TitleOverride != title {
		t.Errorf("TitleOverride = %v, want %q", got.TitleOverride, title)
	}

	puts := blobs.Puts()
	s.UpdateWidget("home", smallWidget("missing"))
	if blobs.Puts() != puts {
		t.Error("update of a missing widget should be a no-op")
	}
	if n := len(s.Layout("home").Widgets); n != 1 {
		t.Errorf("expected 1 widget, got %d", n)
	}
}

func TestRemoveWidget(t *testing.T) {
	s, _ := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		s.AddWidget("home", smallWidget(id))
	}

	s.RemoveWidget("home", "b")
	s.RemoveWidget("home", "missing")
	s.RemoveWidget("elsewhere", "a")

	if diff := cmp.Diff([]string{"a", "c"}, ids(s.Layout("home"))); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestPruneService(t *testing.T) {
	s, _ := newTestStore(t)
	a := smallWidget("a")
	b := smallWidget("b")
	b.ServiceID = a.ServiceID
	s.AddWidget("home", a)
	s.AddWidget("home", smallWidget("c"))
	s.AddWidget("home", b)

	if n := s.PruneService("home", a.ServiceID); n != 2 {
		t.Errorf("PruneService removed %d, want 2", n)
	}
	if diff := cmp.Diff([]string{"c"}, ids(s.Layout("home"))); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if n := s.PruneService("home", "nope"); n != 0 {
		t.Errorf("PruneService removed %d, want 0", n)
	}
}

func TestLayout_SnapshotIsolation(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddWidget("home", smallWidget("a"))

	snap := s.Layout("home")
	snap.Widgets[0].Size = domain.SizeExtraWide
	snap.Widgets = append(snap.Widgets, smallWidget("b"))

	got := s.Layout("home")
	if len(got.Widgets) != 1 || got.Widgets[0].Size != domain.SizeSmall {
		t.Errorf("mutating a snapshot leaked into the store: %+v", got.Widgets)
	}
}

func TestRoundTrip_FiveWidgets(t *testing.T) {
	blobs := NewMemoryBlobs()
	s := New(blobs, logger.Discard())

	title := "Main node"
	refresh := 15
	widgets := []domain.Widget{
		{
			ID: "w1", ServiceID: "pve", Size: domain.SizeLarge,
			TitleOverride: &title,
			Metrics: domain.HypervisorSelection{
				domain.HypervisorCPUPercent, domain.HypervisorMemoryPercent,
			},
		},
		{
			ID: "w2", ServiceID: "plex", Size: domain.SizeWide,
			Metrics: domain.MediaSelection{domain.MediaActiveStreams},
		},
		{
			ID: "w3", ServiceID: "qbt", Size: domain.SizeSmall,
			RefreshIntervalOverride: &refresh,
			Metrics:                 domain.TorrentSelection{domain.TorrentDownloadSpeedBps, domain.TorrentUploadSpeedBps},
		},
		{
			ID: "w4", ServiceID: "dns", Size: domain.SizeTall, Row: 3, Column: 1,
			Metrics: domain.DNSSelection{domain.DNSTotalQueries, domain.DNSBlockedQueries},
		},
		{
			ID: "w5", ServiceID: "pve2", Size: domain.SizeExtraWide,
			Metrics: domain.HypervisorSelection{domain.HypervisorRunningCount},
		},
	}
	for _, w := range widgets {
		s.AddWidget("home", w)
	}

	reloaded := New(blobs, logger.Discard())
	got := reloaded.Layout("home")

	want := domain.Layout{Home: "home", Widgets: widgets}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reloaded layout mismatch (-want +got):\n%s", diff)
	}
}

func TestPersistFailure_KeepsMemory(t *testing.T) {
	blobs := NewMemoryBlobs()
	blobs.FailPuts = true
	var buf bytes.Buffer
	s := New(blobs, logger.New(&buf, false))

	s.AddWidget("home", smallWidget("a"))
	s.AddWidget("home", smallWidget("b"))

	if diff := cmp.Diff([]string{"a", "b"}, ids(s.Layout("home"))); diff != "" {
		t.Errorf("in-memory order (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "failed to persist layout") {
		t.Errorf("expected persistence failure to be logged, got %q", buf.String())
	}
	if _, ok, _ := blobs.Get("home"); ok {
		t.Error("expected nothing persisted")
	}
}

func TestLoad_ReadFailure(t *testing.T) {
	blobs := NewMemoryBlobs()
	blobs.FailGets = true
	var buf bytes.Buffer
	s := New(blobs, logger.New(&buf, false))

	if n := len(s.Layout("home").Widgets); n != 0 {
		t.Errorf("expected empty layout, got %d widgets", n)
	}
	if !strings.Contains(buf.String(), "failed to read persisted layout") {
		t.Errorf("expected read failure to be logged, got %q", buf.String())
	}
}

func TestLoad_ReadFailureKeepsStoredLayout(t *testing.T) {
	blobs := NewMemoryBlobs()
	seed := New(blobs, logger.Discard())
	for _, id := range []string{"a", "b", "c"} {
		seed.AddWidget("home", smallWidget(id))
	}

	s := New(blobs, logger.Discard())
	blobs.FailGets = true
	if n := len(s.Layout("home").Widgets); n != 0 {
		t.Fatalf("expected empty layout while unreadable, got %d widgets", n)
	}
	s.AddWidget("home", smallWidget("lost"))
	if l, generated := s.EnsureLayout("home", scenarioServices()); generated || len(l.Widgets) != 0 {
		t.Fatalf("EnsureLayout while unreadable: generated=%v widgets=%d", generated, len(l.Widgets))
	}
	blobs.FailGets = false

	s.AddWidget("home", smallWidget("d"))

	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, ids(s.Layout("home"))); diff != "" {
		t.Errorf("in-memory layout (-want +got):\n%s", diff)
	}
	stored := New(blobs, logger.Discard()).Layout("home")
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, ids(stored)); diff != "" {
		t.Errorf("persisted layout (-want +got):\n%s", diff)
	}
}

func TestSetLayout_ProceedsWhenUnreadable(t *testing.T) {
	blobs := NewMemoryBlobs()
	New(blobs, logger.Discard()).AddWidget("home", smallWidget("old"))

	s := New(blobs, logger.Discard())
	blobs.FailGets = true
	s.SetLayout(domain.Layout{Home: "home", Widgets: []domain.Widget{smallWidget("new")}})
	blobs.FailGets = false

	if diff := cmp.Diff([]string{"new"}, ids(New(blobs, logger.Discard()).Layout("home"))); diff != "" {
		t.Errorf("persisted layout (-want +got):\n%s", diff)
	}
}

func TestEnsureLayout_LogsGeneratedCount(t *testing.T) {
	var buf bytes.Buffer
	s := New(NewMemoryBlobs(), logger.New(&buf, false))
	services := append(scenarioServices(), domain.Service{ID: "oven", Kind: "toaster", Home: "home"})

	l, generated := s.EnsureLayout("home", services)
	if !generated || len(l.Widgets) != 3 {
		t.Fatalf("generated=%v widgets=%d, want true 3", generated, len(l.Widgets))
	}
	if !strings.Contains(buf.String(), "widgets=3") {
		t.Errorf("expected generated widget count in log, got %q", buf.String())
	}
}

func TestAddWidget_RejectsMissingSelection(t *testing.T) {
	var buf bytes.Buffer
	blobs := NewMemoryBlobs()
	s := New(blobs, logger.New(&buf, false))

	s.AddWidget("home", smallWidget("a"))
	s.AddWidget("home", domain.Widget{ID: "bare", ServiceID: "dns", Size: domain.SizeSmall})
	updated := smallWidget("a")
	updated.Metrics = nil
	s.UpdateWidget("home", updated)
	s.SetLayout(domain.Layout{Home: "other", Widgets: []domain.Widget{
		smallWidget("x"),
		{ID: "bare", ServiceID: "dns", Size: domain.SizeSmall},
	}})

	reloaded := New(blobs, logger.Discard())
	if diff := cmp.Diff(smallWidget("a"), reloaded.Layout("home").Widgets[0]); diff != "" {
		t.Errorf("home widget (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, ids(reloaded.Layout("home"))); diff != "" {
		t.Errorf("home widgets (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x"}, ids(reloaded.Layout("other"))); diff != "" {
		t.Errorf("other widgets (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "ignoring widget without metric selection") {
		t.Errorf("expected rejection to be logged, got %q", buf.String())
	}
}

func TestLoad_DropsCorruptWidgets(t *testing.T) {
	blobs := NewMemoryBlobs()
	blob := `{"version":1,"home":"home","widgets":[
		{"id":"good","service_id":"dns","size":"small","metrics":{"kind":"dns-filter","items":["totalQueries"]}},
		{"id":"bad-kind","service_id":"x","size":"small","metrics":{"kind":"toaster","items":["a"]}},
		{"id":"bad-metric","service_id":"dns","size":"small","metrics":{"kind":"dns-filter","items":["bogus"]}}
	]}`
	if err := blobs.Put("home", []byte(blob)); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	s := New(blobs, logger.New(&buf, false))

	if diff := cmp.Diff([]string{"good"}, ids(s.Layout("home"))); diff != "" {
		t.Errorf("surviving widgets (-want +got):\n%s", diff)
	}
	logs := buf.String()
	for _, id := range []string{"bad-kind", "bad-metric"} {
		if !strings.Contains(logs, id) {
			t.Errorf("expected dropped widget %s to be logged, got %q", id, logs)
		}
	}
}

func TestConcurrentMutations(t *testing.T) {
	s, _ := newTestStore(t)

	const perHome = 20
	homes := []string{"a", "b", "c"}

	var wg sync.WaitGroup
	for _, home := range homes {
		for i := range perHome {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id := fmt.Sprintf("%s-%d", home, i)
				s.AddWidget(home, smallWidget(id))
				s.MoveWidget(home, id, 0)
				_ = s.Layout(home)
			}()
		}
	}
	wg.Wait()

	for _, home := range homes {
		if n := len(s.Layout(home).Widgets); n != perHome {
			t.Errorf("home %s: %d widgets, want %d", home, n, perHome)
		}
	}
}

func TestRegenerate(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddWidget("home", smallWidget("stale"))

	l := s.Regenerate("home", scenarioServices())
	if len(l.Widgets) != 3 {
		t.Fatalf("expected 3 widgets, got %d", len(l.Widgets))
	}
	if l.IndexOf("stale") >= 0 {
		t.Error("expected regenerate to replace the old layout")
	}
}
