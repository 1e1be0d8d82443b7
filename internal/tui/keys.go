package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Regenerate key.Binding
	Grow       key.Binding
	Shrink     key.Binding
	Alphabet   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Regenerate: key.NewBinding(
			key.WithKeys("r", " ", "enter"),
			key.WithHelp("r/space", "new id"),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "=", "up", "k"),
			key.WithHelp("+/↑", "longer"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-", "down", "j"),
			key.WithHelp("-/↓", "shorter"),
		),
		Alphabet: key.NewBinding(
			key.WithKeys("a", "tab"),
			key.WithHelp("a/tab", "next alphabet"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Regenerate, k.Grow, k.Shrink, k.Alphabet, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Regenerate, k.Alphabet},
		{k.Grow, k.Shrink},
		{k.Help, k.Quit},
	}
}
