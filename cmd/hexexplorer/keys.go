package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Views and layouts
	NextView   key.Binding
	PrevView   key.Binding
	NextLayout key.Binding
	MoreCols   key.Binding
	FewerCols  key.Binding
	Flip       key.Binding

	// Editing
	Edit   key.Binding
	Esc    key.Binding
	Save   key.Binding
	Reload key.Binding

	// Commands
	Copy     key.Binding
	Endian   key.Binding
	SaveMeta key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up one row"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down one row"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous byte"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next byte"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "start of region"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "end of region"),
		),

		// Views and layouts
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous view"),
		),
		NextLayout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "next layout"),
		),
		MoreCols: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more columns"),
		),
		FewerCols: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "fewer columns"),
		),
		Flip: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "flip row order"),
		),

		// Editing
		Edit: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "edit mode"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave edit mode"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save changes"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "discard changes"),
		),

		// Commands
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy offset"),
		),
		Endian: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "toggle endianness"),
		),
		SaveMeta: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "save layout metadata"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpSections groups bindings for the help overlay.
func (k KeyMap) helpSections() []helpSection {
	return []helpSection{
		{"Navigation", []key.Binding{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Home, k.End}},
		{"Views", []key.Binding{k.NextView, k.PrevView, k.NextLayout, k.MoreCols, k.FewerCols, k.Flip}},
		{"Editing", []key.Binding{k.Edit, k.Esc, k.Save, k.Reload}},
		{"Other", []key.Binding{k.Copy, k.Endian, k.SaveMeta, k.Help, k.Quit}},
	}
}

type helpSection struct {
	title    string
	bindings []key.Binding
}
