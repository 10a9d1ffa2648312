package tui

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/homegrid/internal/config"
	"nathanbeddoewebdev/homegrid/internal/tui/components"
	"nathanbeddoewebdev/homegrid/internal/tui/styles"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Config messages ---

type configSavedMsg struct{}

type configSaveErrorMsg struct {
	err error
}

type configKeyMap struct {
	Up, Down, Edit, Save, Cancel, Quit key.Binding
}

func defaultConfigKeys() configKeyMap {
	return configKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:   key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("e", "edit")),
		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// --- Config model ---

type configViewModel struct {
	cfg  *config.Config
	save func(*config.Config) error
	keys []config.KeySpec

	bindings configKeyMap
	cursor   int
	editing  bool
	editor   textinput.Model

	width  int
	height int

	status components.Status
}

// RunConfigView starts the interactive config viewer/editor TUI.
func RunConfigView() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	_, err = tea.NewProgram(newConfigViewModel(cfg, (*config.Config).Save), tea.WithAltScreen()).Run()
	return err
}

func newConfigViewModel(cfg *config.Config, save func(*config.Config) error) configViewModel {
	return configViewModel{
		cfg:      cfg,
		save:     save,
		keys:     config.Keys,
		bindings: defaultConfigKeys(),
	}
}

func (m configViewModel) Init() tea.Cmd {
	return nil
}

func (m configViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)

	case configSavedMsg:
		m.editing = false
		m.status = components.Info("Configuration saved")
		return m, nil

	case configSaveErrorMsg:
		m.status = components.Error(msg.err)
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m configViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.bindings.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.bindings.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.bindings.Down):
		if m.cursor < len(m.keys)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.bindings.Edit):
		spec := m.keys[m.cursor]
		ti := textinput.New()
		ti.SetValue(spec.Get(m.cfg))
		ti.Focus()
		ti.Width = 40
		ti.Placeholder = "enter value"
		m.editor = ti
		m.editing = true
		m.status = components.Status{}
		return m, textinput.Blink
	}
	return m, nil
}

func (m configViewModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.bindings.Cancel):
		m.editing = false
		return m, nil
	case key.Matches(msg, m.bindings.Save):
		spec := m.keys[m.cursor]
		if err := spec.Set(m.cfg, strings.TrimSpace(m.editor.Value())); err != nil {
			m.status = components.Error(err)
			return m, nil
		}
		return m, m.saveConfig()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m configViewModel) saveConfig() tea.Cmd {
	cfg, save := m.cfg, m.save
	return func() tea.Msg {
		if err := save(cfg); err != nil {
			return configSaveErrorMsg{err: err}
		}
		return configSavedMsg{}
	}
}

func (m configViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "config", "")

	bindings := []key.Binding{m.bindings.Up, m.bindings.Down, m.bindings.Edit, m.bindings.Quit}
	if m.editing {
		bindings = []key.Binding{m.bindings.Save, m.bindings.Cancel}
	}
	footer := components.Footer(m.width, bindings)
	statusBar := m.status.View(m.width)

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(statusBar), 1)

	sections := []string{header, m.renderContent(contentH)}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m configViewModel) renderContent(height int) string {
	const labelWidth = 20

	rows := make([]string, 0, len(m.keys)*2)
	for i, spec := range m.keys {
		selected := i == m.cursor

		value := spec.Get(m.cfg)
		if value == "" {
			value = "(not set)"
		}

		prefix := "  "
		nameStyle, valueStyle := styles.MutedText, styles.MutedText
		if selected {
			prefix = styles.AccentText.Render("> ")
			nameStyle, valueStyle = styles.Subtitle.Bold(true), styles.Value
		}

		row := prefix + nameStyle.Width(labelWidth).Render(spec.Name)
		if selected && m.editing {
			row += m.editor.View()
		} else {
			row += valueStyle.Render(value)
		}
		rows = append(rows, row)

		if selected && !m.editing {
			rows = append(rows, strings.Repeat(" ", 4)+styles.MutedText.Italic(true).Render(spec.Description))
		}
	}

	card := styles.Card.Width(64).Render(strings.Join(rows, "\n"))
	combined := lipgloss.JoinVertical(lipgloss.Center, styles.Title.Render("Configuration"), "", card)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, combined)
}
