package tui

import (
	"strings"
	"testing"

	"nathanbeddoewebdev/homegrid/internal/layoutstore"
	"nathanbeddoewebdev/homegrid/internal/logger"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func dnsWidget(id string, size domain.WidgetSize, n int) domain.Widget {
	return domain.Widget{
		ID:        id,
		ServiceID: "dns",
		Size:      size,
		Metrics:   domain.DNSSelection(append([]domain.DNSMetric(nil), domain.DNSCatalog[:n]...)),
	}
}

func newTestGrid(t *testing.T, widgets ...domain.Widget) (gridModel, *layoutstore.Store) {
	t.Helper()
	store := layoutstore.New(layoutstore.NewMemoryBlobs(), logger.Discard())
	store.SetLayout(domain.Layout{Home: "cabin", Widgets: widgets})

	m := newGridModel(GridViewOptions{
		Store:    store,
		Home:     "cabin",
		Services: []domain.Service{{ID: "dns", Name: "AdGuard", Kind: domain.KindDNSFilter}},
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return updated.(gridModel), store
}

func press(t *testing.T, m gridModel, keys ...tea.KeyMsg) gridModel {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(gridModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func layoutIDs(l domain.Layout) []string {
	out := make([]string, len(l.Widgets))
	for i, w := range l.Widgets {
		out[i] = w.ID
	}
	return out
}

func TestGridModel_GrabAndDrop(t *testing.T) {
	m, store := newTestGrid(t,
		dnsWidget("a", domain.SizeSmall, 1),
		dnsWidget("b", domain.SizeSmall, 1),
		dnsWidget("c", domain.SizeSmall, 1),
	)

	// Grab a, walk to c, drop: a lands just before c.
	m = press(t, m, space, runes("j"), runes("j"), space)

	want := []string{"b", "a", "c"}
	if diff := cmp.Diff(want, layoutIDs(store.Layout("cabin"))); diff != "" {
		t.Errorf("order after drop (-want +got):\n%s", diff)
	}
	if m.grabbed {
		t.Error("expected drop to release the grab")
	}
	if got := m.selectedID(); got != "a" {
		t.Errorf("cursor should follow the moved widget, got %q", got)
	}
}

func TestGridModel_DropBackwards(t *testing.T) {
	m, store := newTestGrid(t,
		dnsWidget("a", domain.SizeSmall, 1),
		dnsWidget("b", domain.SizeSmall, 1),
		dnsWidget("c", domain.SizeSmall, 1),
	)

	m = press(t, m, runes("j"), runes("j"), space, runes("k"), runes("k"), space)

	want := []string{"c", "a", "b"}
	if diff := cmp.Diff(want, layoutIDs(store.Layout("cabin"))); diff != "" {
		t.Errorf("order after drop (-want +got):\n%s", diff)
	}
}

func TestGridModel_CancelGrab(t *testing.T) {
	m, store := newTestGrid(t,
		dnsWidget("a", domain.SizeSmall, 1),
		dnsWidget("b", domain.SizeSmall, 1),
	)

	m = press(t, m, space, runes("j"), tea.KeyMsg{Type: tea.KeyEsc})

	if m.grabbed {
		t.Error("expected esc to cancel the grab")
	}
	want := []string{"a", "b"}
	if diff := cmp.Diff(want, layoutIDs(store.Layout("cabin"))); diff != "" {
		t.Errorf("order changed after cancel (-want +got):\n%s", diff)
	}
}

func TestGridModel_DropOnSelf(t *testing.T) {
	m, store := newTestGrid(t,
		dnsWidget("a", domain.SizeSmall, 1),
		dnsWidget("b", domain.SizeSmall, 1),
	)

	m = press(t, m, space, space)

	if !strings.Contains(m.status.Message, "not moved") {
		t.Errorf("status = %q", m.status.Message)
	}
	if diff := cmp.Diff([]string{"a", "b"}, layoutIDs(store.Layout("cabin"))); diff != "" {
		t.Errorf("order changed (-want +got):\n%s", diff)
	}
}

func TestGridModel_StepSize(t *testing.T) {
	t.Run("grow", func(t *testing.T) {
		m, store := newTestGrid(t, dnsWidget("a", domain.SizeSmall, 1))
		press(t, m, runes("+"))

		w, _ := store.Widget("cabin", "a")
		if w.Size != domain.SizeMedium {
			t.Errorf("size = %s, want medium", w.Size)
		}
	})

	t.Run("shrink below content is corrected", func(t *testing.T) {
		m, store := newTestGrid(t, dnsWidget("a", domain.SizeMedium, 4))
		m = press(t, m, runes("-"))

		w, _ := store.Widget("cabin", "a")
		if w.Size != domain.SizeMedium {
			t.Errorf("size = %s, want medium kept", w.Size)
		}
		if !strings.Contains(m.status.Message, "kept medium") {
			t.Errorf("status = %q", m.status.Message)
		}
	})

	t.Run("smallest size stays put", func(t *testing.T) {
		m, store := newTestGrid(t, dnsWidget("a", domain.SizeSmall, 1))
		press(t, m, runes("-"))

		w, _ := store.Widget("cabin", "a")
		if w.Size != domain.SizeSmall {
			t.Errorf("size = %s, want small", w.Size)
		}
	})
}

func TestGridModel_Remove(t *testing.T) {
	m, store := newTestGrid(t,
		dnsWidget("a", domain.SizeSmall, 1),
		dnsWidget("b", domain.SizeSmall, 1),
	)

	m = press(t, m, runes("j"), runes("x"))

	if diff := cmp.Diff([]string{"a"}, layoutIDs(store.Layout("cabin"))); diff != "" {
		t.Errorf("layout after remove (-want +got):\n%s", diff)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor)
	}
}

func TestGridModel_GrabDisablesEditing(t *testing.T) {
	m, store := newTestGrid(t,
		dnsWidget("a", domain.SizeSmall, 1),
		dnsWidget("b", domain.SizeSmall, 1),
	)

	// Remove is disabled while dragging.
	press(t, m, space, runes("x"))

	if got := len(store.Layout("cabin").Widgets); got != 2 {
		t.Errorf("expected 2 widgets while grabbed, got %d", got)
	}
}

func TestGridModel_ViewSkipsOrphans(t *testing.T) {
	orphan := dnsWidget("gone", domain.SizeSmall, 1)
	orphan.ServiceID = "deleted"
	m, _ := newTestGrid(t, orphan, dnsWidget("a", domain.SizeSmall, 1))

	if got := m.selectedID(); got != "a" {
		t.Errorf("selectedID = %q, want first visible widget", got)
	}
	if view := m.View(); !strings.Contains(view, "1 widgets") {
		t.Errorf("header should count visible widgets:\n%s", view)
	}
}
