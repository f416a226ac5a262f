package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Left     key.Binding
	Right    key.Binding

	// Actions
	Enter       key.Binding
	FilterAll   key.Binding
	FilterDiffs key.Binding
	FilterMods  key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Swap        key.Binding
	Refresh     key.Binding
	CopyRight   key.Binding
	CopyLeft    key.Binding
	Yank        key.Binding
	Quit        key.Binding

	// Copy confirmation
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "half page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "half page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "ctrl+home", "g"),
			key.WithHelp("home", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "ctrl+end", "G"),
			key.WithHelp("end", "go to bottom"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left panel"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right panel"),
		),

		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "expand/diff"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "all files"),
		),
		FilterDiffs: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "different"),
		),
		FilterMods: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "diff only"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "collapse all"),
		),
		Swap: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "swap panels"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("f5", "r"),
			key.WithHelp("F5", "refresh"),
		),
		CopyRight: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "copy to right"),
		),
		CopyLeft: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "copy to left"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter", "copy"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("q", "esc", "n"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Navigation returns the bindings that only move the cursors.
func (k KeyMap) Navigation() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End, k.Left, k.Right,
	}
}

// ShortHelp returns key bindings for the toolbar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.FilterAll, k.FilterDiffs, k.FilterMods,
		k.ExpandAll, k.CollapseAll, k.Refresh, k.Swap, k.Quit,
	}
}
