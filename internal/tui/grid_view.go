package tui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"nathanbeddoewebdev/homegrid/internal/layout"
	"nathanbeddoewebdev/homegrid/internal/layoutstore"
	"nathanbeddoewebdev/homegrid/internal/servicedir"
	"nathanbeddoewebdev/homegrid/internal/stats"
	"nathanbeddoewebdev/homegrid/internal/tui/components"
	"nathanbeddoewebdev/homegrid/internal/tui/styles"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const autoRefreshTick = 5 * time.Second

// --- Messages ---

type statsRefreshedMsg struct {
	results []stats.Result
	err     error
}

type gridTickMsg struct{}

// GridViewOptions configures RunGridView.
type GridViewOptions struct {
	Store     *layoutstore.Store
	Home      string
	Services  []domain.Service
	Refresher *stats.Refresher
}

// --- Grid model ---

type gridModel struct {
	store     *layoutstore.Store
	home      string
	services  map[string]domain.Service
	refresher *stats.Refresher

	layout   domain.Layout
	payloads map[string]*stats.Payload

	// cursor indexes the visible (non-orphan) widgets.
	cursor   int
	grabbed  bool
	grabFrom string

	keys     gridKeyMap
	viewport viewport.Model
	spinner  spinner.Model

	refreshing bool
	status     components.Status

	width  int
	height int
}

// RunGridView opens the interactive home grid.
func RunGridView(opts GridViewOptions) error {
	m := newGridModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newGridModel(opts GridViewOptions) gridModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	m := gridModel{
		store:     opts.Store,
		home:      opts.Home,
		services:  servicedir.Index(opts.Services),
		refresher: opts.Refresher,
		payloads:  make(map[string]*stats.Payload),
		keys:      defaultGridKeys(),
		viewport:  newGridViewport(),
		spinner:   s,
	}
	m.reload()
	m.loadCachedPayloads()
	return m
}

func newGridViewport() viewport.Model {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		HalfPageUp:   key.NewBinding(key.WithDisabled()),
		HalfPageDown: key.NewBinding(key.WithDisabled()),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
		Left:         key.NewBinding(key.WithDisabled()),
		Right:        key.NewBinding(key.WithDisabled()),
	}
	return vp
}

func (m *gridModel) reload() {
	m.layout = m.store.Layout(m.home)
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// chrome renders the header, status bar, and footer around the grid.
func (m gridModel) chrome() (header, statusBar, footer string) {
	right := fmt.Sprintf("%d widgets", len(m.visible()))
	if m.refreshing {
		right = m.spinner.View() + " refreshing"
	}
	header = components.Header(m.width, m.home, right)
	statusBar = m.status.View(m.width)
	footer = components.Footer(m.width, m.keys.help())
	return header, statusBar, footer
}

// syncViewport re-renders the grid into the viewport.
func (m *gridModel) syncViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	header, statusBar, footer := m.chrome()
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(statusBar), 1)

	grid := RenderGrid(m.layout, m.services, m.payloads, GridOptions{
		Width:    m.width - 2,
		Selected: m.selectedID(),
		Grabbed:  m.grabbed,
	})
	m.viewport.SetContent(lipgloss.NewStyle().Padding(0, 1).Render(grid))
}

func (m *gridModel) loadCachedPayloads() {
	if m.refresher == nil {
		return
	}
	for id := range m.services {
		if entry, ok := m.refresher.Cache.Peek(id); ok {
			p := entry.Data
			m.payloads[id] = &p
		}
	}
}

func (m gridModel) visible() []domain.Widget {
	return layout.FilterOrphans(m.layout.Widgets, m.services)
}

func (m gridModel) selectedID() string {
	v := m.visible()
	if m.cursor < 0 || m.cursor >= len(v) {
		return ""
	}
	return v[m.cursor].ID
}

func (m gridModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(autoRefreshTick, func(time.Time) tea.Msg { return gridTickMsg{} })
}

func (m gridModel) refreshCmd() tea.Cmd {
	if m.refresher == nil {
		return nil
	}
	widgets := m.visible()
	services := m.services
	r := m.refresher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		results, err := r.RefreshDue(ctx, widgets, services, time.Now())
		return statsRefreshedMsg{results: results, err: err}
	}
}

func (m gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)
		m.syncViewport()
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case statsRefreshedMsg:
		m.refreshing = false
		failed := 0
		for _, res := range msg.results {
			if res.Err != nil {
				failed++
				continue
			}
			p := res.Payload
			m.payloads[res.ServiceID] = &p
		}
		switch {
		case msg.err != nil:
			m.status = components.Error(msg.err)
		case failed > 0:
			m.status = components.Status{Message: fmt.Sprintf("%d of %d services failed to refresh", failed, len(msg.results)), IsError: true}
		case len(msg.results) > 0:
			m.status = components.Info(fmt.Sprintf("Refreshed %d services.", len(msg.results)))
		}

	case gridTickMsg:
		cmds = append(cmds, tickCmd())
		if !m.refreshing && m.refresher != nil {
			m.refreshing = true
			cmds = append(cmds, m.refreshCmd(), m.spinner.Tick)
		}

	case spinner.TickMsg:
		if m.refreshing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.syncViewport()
	return m, tea.Batch(cmds...)
}

func (m gridModel) handleKey(msg tea.KeyMsg) (gridModel, tea.Cmd) {
	n := len(m.visible())

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.grabbed = false
		m.grabFrom = ""
		m.keys.grabbing(false)
		m.status = components.Info("Move cancelled.")

	case key.Matches(msg, m.keys.Prev):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Next):
		if m.cursor < n-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Grab):
		if n == 0 {
			break
		}
		if !m.grabbed {
			m.grabbed = true
			m.grabFrom = m.selectedID()
			m.keys.grabbing(true)
			m.status = components.Info("Choose a tile to drop onto.")
			break
		}
		m.drop()

	case key.Matches(msg, m.keys.Grow):
		m.stepSize(1)

	case key.Matches(msg, m.keys.Shrink):
		m.stepSize(-1)

	case key.Matches(msg, m.keys.Remove):
		if id := m.selectedID(); id != "" {
			m.store.RemoveWidget(m.home, id)
			m.reload()
			m.status = components.Info("Widget removed.")
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.refresher != nil && !m.refreshing {
			m.refreshing = true
			// Forget fetch times so every service is due.
			for id := range m.services {
				_ = m.refresher.Cache.Invalidate(id)
			}
			return m, tea.Batch(m.refreshCmd(), m.spinner.Tick)
		}
	}

	return m, nil
}

// drop moves the grabbed widget onto the tile under the cursor.
func (m *gridModel) drop() {
	target := m.selectedID()
	source := m.layout.IndexOf(m.grabFrom)
	dest := m.layout.IndexOf(target)

	m.grabbed = false
	m.keys.grabbing(false)
	defer func() { m.grabFrom = "" }()

	if source < 0 || dest < 0 || source == dest {
		m.status = components.Info("Widget not moved.")
		return
	}

	m.store.MoveWidget(m.home, m.grabFrom, layoutstore.DropIndex(source, dest))
	m.reload()
	if i := slices.IndexFunc(m.visible(), func(w domain.Widget) bool { return w.ID == m.grabFrom }); i >= 0 {
		m.cursor = i
	}
	m.status = components.Info("Widget moved.")
}

// stepSize moves the selected widget one step through the concrete sizes.
// The store keeps the corrected size when the choice cannot hold the
// widget's metrics.
func (m *gridModel) stepSize(delta int) {
	id := m.selectedID()
	if id == "" {
		return
	}
	w := m.layout.Widgets[m.layout.IndexOf(id)]
	svc := m.services[w.ServiceID]

	i := slices.Index(domain.ConcreteSizes, w.Size) + delta
	if i < 0 || i >= len(domain.ConcreteSizes) {
		return
	}
	requested := domain.ConcreteSizes[i]

	updated, corrected := layout.ApplySize(w, svc.Kind, requested)
	m.store.UpdateWidget(m.home, updated)
	m.reload()

	if corrected {
		m.status = components.Info(fmt.Sprintf("%s cannot hold %d metrics; kept %s.", requested, updated.Metrics.Len(), updated.Size))
		return
	}
	m.status = components.Info(fmt.Sprintf("Size set to %s.", updated.Size))
}

func (m gridModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header, statusBar, footer := m.chrome()
	sections := []string{header, m.viewport.View()}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
