package tui

import "github.com/charmbracelet/bubbles/key"

// gridKeyMap is the key bindings of the grid view.
type gridKeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Grab    key.Binding
	Cancel  key.Binding
	Grow    key.Binding
	Shrink  key.Binding
	Remove  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultGridKeys() gridKeyMap {
	return gridKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("up", "k", "left", "h"),
			key.WithHelp("↑/k", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "j", "right", "l"),
			key.WithHelp("↓/j", "next"),
		),
		Grab: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "move"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
			key.WithDisabled(),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "size"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-", "_"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// grabbing switches the bindings between browse and drag mode.
func (k *gridKeyMap) grabbing(on bool) {
	k.Cancel.SetEnabled(on)
	k.Grow.SetEnabled(!on)
	k.Shrink.SetEnabled(!on)
	k.Remove.SetEnabled(!on)
	k.Refresh.SetEnabled(!on)
	if on {
		k.Grab.SetHelp("space", "drop here")
	} else {
		k.Grab.SetHelp("space", "move")
	}
}

func (k gridKeyMap) help() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Grab, k.Cancel, k.Grow, k.Remove, k.Refresh, k.Quit}
}
