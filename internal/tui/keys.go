package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Search      key.Binding
	NextStatus  key.Binding
	MarkRead    key.Binding
	MarkReplied key.Binding
	Refresh     key.Binding
	Clear       key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	NextStatus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "status filter")),
	MarkRead:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "mark read")),
	MarkReplied: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "mark replied")),
	Refresh:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "refresh")),
	Clear:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Search, k.NextStatus, k.MarkRead, k.MarkReplied, k.Refresh, k.Clear, k.Quit}
}
