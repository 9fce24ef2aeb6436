package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the sheet editor.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Edit     key.Binding
	Clear    key.Binding
	Copy     key.Binding
	Paste    key.Binding
	Fill     key.Binding
	Resize   key.Binding
	Save     key.Binding
	SaveAs   key.Binding
	Open     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Accept   key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("enter", "edit cell"),
		),
		Clear: key.NewBinding(
			key.WithKeys("d", "backspace"),
			key.WithHelp("d", "clear cell"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy cell"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "paste cell"),
		),
		Fill: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fill from run above"),
		),
		Resize: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "fit column width"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		SaveAs: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "save as"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns the bindings shown in the collapsed help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Save, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.Edit, k.Clear, k.Copy, k.Paste, k.Fill, k.Resize},
		{k.Save, k.SaveAs, k.Open, k.Help, k.Quit},
	}
}
