package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit         key.Binding
	RowDown      key.Binding
	RowUp        key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	ScrollLeft   key.Binding
	ScrollRight  key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	JumpPage     key.Binding
	Reload       key.Binding
	Filter       key.Binding
	ResetFilters key.Binding
	TimeWindow   key.Binding
	Search       key.Binding
	Sort         key.Binding
	Select       key.Binding
	SelectAll    key.Binding
	SelectedOnly key.Binding
	CopyLinks    key.Binding
	SaveSession  key.Binding
	ExportToFile key.Binding
	OpenHelp     key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("u", "pgup"),
		key.WithHelp("u/pgup", "half screen up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("d", "pgdown"),
		key.WithHelp("d/pgdown", "half screen down"),
	),
	ScrollLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "scroll the grid left"),
	),
	ScrollRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "scroll the grid right"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "previous page"),
	),
	JumpPage: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "jump to page"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload page"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "edit filters"),
	),
	ResetFilters: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "reset filters to defaults"),
	),
	TimeWindow: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "calculated-on window"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search this page"),
	),
	Sort: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "cycle sort"),
	),
	Select: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle selection"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "select / clear all"),
	),
	SelectedOnly: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "toggle show only selected"),
	),
	CopyLinks: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy task links"),
	),
	SaveSession: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "save session"),
	),
	ExportToFile: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export page to csv"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.Quit,
		k.RowDown,
		k.RowUp,
		k.PageUp,
		k.PageDown,
		k.NextPage,
		k.PrevPage,
		k.JumpPage,
		k.Reload,
		k.Filter,
		k.ResetFilters,
		k.TimeWindow,
		k.Search,
		k.Sort,
		k.Select,
		k.SelectAll,
		k.SelectedOnly,
		k.CopyLinks,
		k.SaveSession,
		k.ExportToFile,
	}
}
