package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Today   key.Binding
	GoTo    key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Status  key.Binding
	Search  key.Binding
	Refresh key.Binding
	Dismiss key.Binding
	Clear   key.Binding
	Back    key.Binding
	Confirm key.Binding
	Deny    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Add, k.Status, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Today, k.GoTo},
		{k.Add, k.Edit, k.Delete, k.Status, k.Search, k.Refresh},
		{k.Dismiss, k.Clear, k.Back, k.Help, k.Quit},
	}
}

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
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		GoTo: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to date"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new appointment"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "next status"),
		),
		Search: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "search owner"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss toast"),
		),
		Clear: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear toasts"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
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
