// Package layoutstore owns the widget layout of every home and mediates all
// widget mutations, persisting each change to a key-value blob store.
//
// Mutations apply to memory first and are then persisted as a side effect.
// A failed write is logged and never surfaced or rolled back: the in-memory
// layout stays authoritative until the process exits.
package layoutstore

import (
	"log/slog"
	"sync"

	"nathanbeddoewebdev/homegrid/internal/layout"
	"nathanbeddoewebdev/homegrid/internal/logger"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"
)

// Store holds one layout per home name.
type Store struct {
	blobs Blobs
	log   *slog.Logger

	mu    sync.Mutex
	homes map[string]*homeState
}

// homeState serializes mutations of one home. Reads take the read lock and
// return a deep copy, so callers never see a half-applied change.
type homeState struct {
	mu     sync.RWMutex
	loaded bool
	layout domain.Layout
}

// New returns a Store persisting into blobs. A nil logger uses slog.Default.
func New(blobs Blobs, log *slog.Logger) *Store {
	return &Store{
		blobs: blobs,
		log:   logger.OrDefault(log),
		homes: make(map[string]*homeState),
	}
}

func (s *Store) state(home string) *homeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.homes[home]
	if !ok {
		st = &homeState{layout: domain.Layout{Home: home}}
		s.homes[home] = st
	}
	return st
}

// load reads the persisted layout on first access and reports whether the
// in-memory layout reflects the blob store. A failed read leaves the home
// unloaded so the next access retries it. Caller holds st.mu for writing.
func (s *Store) load(home string, st *homeState) bool {
	if st.loaded {
		return true
	}
	if s.blobs == nil {
		st.loaded = true
		return true
	}
	data, ok, err := s.blobs.Get(home)
	if err != nil {
		s.log.Warn("failed to read persisted layout", "home", home, "err", err)
		return false
	}
	st.loaded = true
	if !ok {
		return true
	}

	l, dropped, err := DecodeLayout(data)
	if err != nil {
		s.log.Warn("discarding corrupt layout", "home", home, "err", err)
		return true
	}
	for _, d := range dropped {
		s.log.Warn("dropping undecodable widget", "home", home, "widget", d.ID, "reason", d.Reason)
	}
	l.Home = home
	st.layout = l
	return true
}

// persist writes the current layout. Caller holds st.mu for writing.
func (s *Store) persist(st *homeState) {
	if s.blobs == nil {
		return
	}
	home := st.layout.Home
	data, err := EncodeLayout(st.layout)
	if err != nil {
		s.log.Warn("failed to encode layout", "home", home, "err", err)
		return
	}
	if err := s.blobs.Put(home, data); err != nil {
		s.log.Warn("failed to persist layout", "home", home, "err", err)
		return
	}
	s.log.Debug("layout persisted", "home", home, "widgets", len(st.layout.Widgets))
}

// mutate runs fn under the home's write lock and persists when fn reports
// a change. When the stored layout cannot be read, fn is not run: applying
// it to an empty layout and persisting would overwrite the saved one.
func (s *Store) mutate(home string, fn func(l *domain.Layout) bool) {
	st := s.state(home)
	st.mu.Lock()
	defer st.mu.Unlock()

	if !s.load(home, st) {
		s.log.Warn("skipping layout change, stored layout unreadable", "home", home)
		return
	}
	if fn(&st.layout) {
		s.persist(st)
	}
}

// Layout returns a snapshot of home's layout. A home that was never written,
// or whose stored layout could not be read, yields an empty layout; nothing
// is persisted until the first mutation.
func (s *Store) Layout(home string) domain.Layout {
	st := s.state(home)

	st.mu.RLock()
	if st.loaded {
		defer st.mu.RUnlock()
		return st.layout.Clone()
	}
	st.mu.RUnlock()

	st.mu.Lock()
	defer st.mu.Unlock()
	s.load(home, st)
	return st.layout.Clone()
}

// Widget returns a copy of one widget of home.
func (s *Store) Widget(home, id string) (domain.Widget, bool) {
	l := s.Layout(home)
	if i := l.IndexOf(id); i >= 0 {
		return l.Widgets[i], true
	}
	return domain.Widget{}, false
}

// SetLayout replaces the stored layout for l.Home wholesale. It does not
// depend on the previous layout, so it proceeds even when that could not be
// read.
func (s *Store) SetLayout(l domain.Layout) {
	next := l.Clone()
	kept := next.Widgets[:0]
	for _, w := range next.Widgets {
		if s.rejectUnselected(l.Home, w) {
			continue
		}
		kept = append(kept, w)
	}
	next.Widgets = kept
	st := s.state(l.Home)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.loaded = true
	st.layout = next
	s.persist(st)
}

// rejectUnselected reports whether w has no metric selection and logs it.
// Such a widget has no kind tag and could not be decoded again once saved.
func (s *Store) rejectUnselected(home string, w domain.Widget) bool {
	if w.Metrics != nil {
		return false
	}
	s.log.Warn("ignoring widget without metric selection", "home", home, "widget", w.ID)
	return true
}

// AddWidget appends w to home's widget sequence. Widgets without a metric
// selection are ignored.
func (s *Store) AddWidget(home string, w domain.Widget) {
	if s.rejectUnselected(home, w) {
		return
	}
	w = w.Clone()
	s.mutate(home, func(l *domain.Layout) bool {
		l.Widgets = append(l.Widgets, w)
		return true
	})
}

// UpdateWidget replaces the widget with w's id. Unknown ids and widgets
// without a metric selection are ignored.
func (s *Store) UpdateWidget(home string, w domain.Widget) {
	if s.rejectUnselected(home, w) {
		return
	}
	w = w.Clone()
	s.mutate(home, func(l *domain.Layout) bool {
		i := l.IndexOf(w.ID)
		if i < 0 {
			return false
		}
		l.Widgets[i] = w
		return true
	})
}

// RemoveWidget deletes the widget with id from home. Unknown ids are ignored.
func (s *Store) RemoveWidget(home, id string) {
	s.mutate(home, func(l *domain.Layout) bool {
		i := l.IndexOf(id)
		if i < 0 {
			return false
		}
		l.Widgets = append(l.Widgets[:i], l.Widgets[i+1:]...)
		return true
	})
}

// MoveWidget removes the widget with id and reinserts it at toIndex,
// clamped to the bounds of the sequence.
func (s *Store) MoveWidget(home, id string, toIndex int) {
	s.mutate(home, func(l *domain.Layout) bool {
		from := l.IndexOf(id)
		if from < 0 {
			return false
		}
		moved, ok := moveWidget(l.Widgets, from, toIndex)
		if !ok {
			return false
		}
		l.Widgets = moved
		return true
	})
}

// moveWidget returns widgets with the element at from reinserted at to.
// ok is false when the sequence is unchanged.
func moveWidget(widgets []domain.Widget, from, to int) ([]domain.Widget, bool) {
	w := widgets[from]
	rest := make([]domain.Widget, 0, len(widgets))
	rest = append(rest, widgets[:from]...)
	rest = append(rest, widgets[from+1:]...)

	to = max(0, min(to, len(rest)))
	if to == from {
		return widgets, false
	}

	out := make([]domain.Widget, 0, len(widgets))
	out = append(out, rest[:to]...)
	out = append(out, w)
	out = append(out, rest[to:]...)
	return out, true
}

// DropIndex translates a "drop onto the widget at target" gesture into the
// index MoveWidget expects. Removing the source shifts every later element
// down by one, so a forward drop lands at target-1.
func DropIndex(source, target int) int {
	if source < target {
		return target - 1
	}
	return target
}

// PruneService removes every widget of home bound to serviceID and returns
// how many were removed.
func (s *Store) PruneService(home, serviceID string) int {
	removed := 0
	s.mutate(home, func(l *domain.Layout) bool {
		kept := l.Widgets[:0]
		for _, w := range l.Widgets {
			if w.ServiceID == serviceID {
				removed++
				continue
			}
			kept = append(kept, w)
		}
		l.Widgets = kept
		return removed > 0
	})
	return removed
}

// EnsureLayout returns home's layout, generating and storing one from
// services when the home has no widgets yet. generated reports whether the
// generator ran.
func (s *Store) EnsureLayout(home string, services []domain.Service) (l domain.Layout, generated bool) {
	s.mutate(home, func(cur *domain.Layout) bool {
		if len(cur.Widgets) > 0 || len(services) == 0 {
			return false
		}
		*cur = layout.GenerateLayout(home, services)
		generated = true
		s.log.Info("generated default layout", "home", home, "widgets", len(cur.Widgets))
		return true
	})
	return s.Layout(home), generated
}

// Regenerate replaces home's layout with a freshly generated one.
func (s *Store) Regenerate(home string, services []domain.Service) domain.Layout {
	l := layout.GenerateLayout(home, services)
	s.SetLayout(l)
	return s.Layout(home)
}

// Homes lists homes that have a persisted layout.
func (s *Store) Homes() ([]string, error) {
	if s.blobs == nil {
		return nil, nil
	}
	return s.blobs.Homes()
}
