// Package dialogs holds the modal overlays: filter editor, save, export and help.
package dialogs

import tea "github.com/charmbracelet/bubbletea"

// Dialog is the common interface all dialogs implement, so the model can
// route messages to whichever one is open.
type Dialog interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Dialog, tea.Cmd)
	View() string

	Focus() tea.Cmd
	Blur()
	IsVisible() bool
	Show()
	Hide()
}
