package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextPage  key.Binding
	GotoPage  key.Binding
	ReadCodes key.Binding
	Clear     key.Binding
	Dismiss   key.Binding
	Cancel    key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	NextPage: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next page"),
	),
	GotoPage: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "page"),
	),
	ReadCodes: key.NewBinding(
		key.WithKeys("g", "G"),
		key.WithHelp("g", "read codes"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c", "C"),
		key.WithHelp("c", "clear codes"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("enter", "esc", " "),
		key.WithHelp("enter", "dismiss"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.GotoPage, k.ReadCodes, k.Clear, k.Quit}
}
