package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the global binding table. It also feeds the help bar.
type keyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	NextFocus   key.Binding
	PrevFocus   key.Binding
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Back        key.Binding
	Add         key.Binding
	Remove      key.Binding
	ToggleLeft  key.Binding
	ToggleRight key.Binding
	Debug       key.Binding
	Help        key.Binding
}

var keys = keyMap{
	Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
	NextFocus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
	PrevFocus:   key.NewBinding(key.WithKeys("shift+tab")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to list")),
	Remove:      key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
	ToggleLeft:  key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "results")),
	ToggleRight: key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "panel")),
	Debug:       key.NewBinding(key.WithKeys("f12"), key.WithHelp("F12", "debug")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Select, k.Back, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Add, k.Remove, k.NextFocus},
		{k.ToggleLeft, k.ToggleRight, k.Debug, k.Quit},
	}
}
