package main

import (
	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/andareed/siftly-changepoints/config"
	"github.com/andareed/siftly-changepoints/dialogs"
	"github.com/andareed/siftly-changepoints/logging"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// chrome is the rows taken by the header, table border and footer.
const chrome = 7

type model struct {
	ctrl *changepoints.Controller
	cfg  *config.Config

	data dataState
	ui   uiState

	viewport            viewport.Model
	ready               bool
	cursor              int // index into data.filteredIndices
	lastVisibleRowCount int
	pageRowSize         int
	terminalWidth       int
	terminalHeight      int

	activeDialog dialogs.Dialog
	lastDir      string // where the last save/export went
}

func newModel(ctrl *changepoints.Controller, cfg *config.Config) *model {
	m := &model{
		ctrl: ctrl,
		cfg:  cfg,
		ui: uiState{
			mode:       modeView,
			timeWindow: newTimeWindowUI(),
		},
	}
	m.data.header = columnsFromGrid(ctrl.GridOptions())
	m.syncRows()
	return m
}

func (m *model) Init() tea.Cmd {
	logging.Infof("siftly-changepoints: loading %s page %d", m.ctrl.Project(), m.ctrl.Pagination().Page+1)
	return m.load(m.ctrl.Begin())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth, m.terminalHeight = msg.Width, msg.Height
		m.ready = true
		m.resizeViewport()
		m.refreshView("resize", false)
		return m, nil

	case tea.KeyMsg:
		if m.activeDialog != nil && m.activeDialog.IsVisible() {
			d, cmd := m.activeDialog.Update(msg)
			m.activeDialog = d
			return m, cmd
		}
		return m.updateKey(msg)

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case clearNoticeMsg:
		m.handleClearNotice(msg)
		return m, nil

	case dialogs.FilterAppliedMsg:
		m.closeDialog()
		return m, m.applyFilters(msg.Filters)

	case dialogs.SaveConfirmedMsg:
		m.closeDialog()
		return m, m.saveSession(msg.Path)

	case dialogs.ExportConfirmedMsg:
		m.closeDialog()
		return m, m.exportRows(msg.Path)

	case dialogs.FilterCanceledMsg, dialogs.SaveCanceledMsg, dialogs.ExportCanceledMsg, dialogs.HelpClosedMsg:
		m.closeDialog()
		return m, nil
	}

	// cursor blink and other dialog-internal messages
	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		d, cmd := m.activeDialog.Update(msg)
		m.activeDialog = d
		return m, cmd
	}
	return m, nil
}

func (m *model) closeDialog() {
	if m.activeDialog != nil {
		m.activeDialog.Hide()
	}
	m.activeDialog = nil
	m.refreshView("dialog-close", false)
}

func (m *model) openDialog(d dialogs.Dialog) tea.Cmd {
	m.activeDialog = d
	return d.Init()
}

// resizeViewport fits the viewport to the terminal, leaving room for the
// drawer when it is open.
func (m *model) resizeViewport() {
	if !m.ready {
		return
	}
	w := max(10, m.terminalWidth-6)
	h := m.terminalHeight - chrome
	if m.ui.timeWindow.open {
		h -= timeWindowDrawerHeight
	}
	h = max(3, h)

	if m.viewport.Width == 0 && m.viewport.Height == 0 {
		m.viewport = viewport.New(w, h)
		return
	}
	m.viewport.Width = w
	m.viewport.Height = h
}

// refreshView lays the columns out for the current width and re-renders.
func (m *model) refreshView(reason string, resetOffset bool) {
	if !m.ready {
		return
	}
	logging.Debugf("refreshView: %s", reason)
	m.data.header = layoutColumns(m.data.header, m.viewport.Width-m.gutterWidth())
	m.viewport.SetContent(m.renderViewport())
	if resetOffset {
		m.viewport.GotoTop()
	}
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ui.mode {
	case modeCommand:
		return m.handleCommandKey(msg)
	case modeTimeWindow:
		next, cmd := m.handleTimeWindowKey(msg)
		m.refreshView("time-window-key", false)
		return next, cmd
	default:
		return m.handleViewModeKey(msg)
	}
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.RowDown):
		m.moveCursor(1)
	case key.Matches(msg, Keys.RowUp):
		m.moveCursor(-1)
	case key.Matches(msg, Keys.PageDown):
		m.moveCursor(m.halfScreen())
	case key.Matches(msg, Keys.PageUp):
		m.moveCursor(-m.halfScreen())
	case msg.String() == "g":
		m.jumpToStart()
	case msg.String() == "G":
		m.jumpToEnd()
	case key.Matches(msg, Keys.ScrollLeft):
		m.viewport.ScrollLeft(4)
		return m, nil
	case key.Matches(msg, Keys.ScrollRight):
		m.viewport.ScrollRight(4)
		return m, nil

	case key.Matches(msg, Keys.NextPage):
		cmd = m.nextPage()
	case key.Matches(msg, Keys.PrevPage):
		cmd = m.prevPage()
	case key.Matches(msg, Keys.Reload):
		cmd = m.load(m.ctrl.Reload())
	case key.Matches(msg, Keys.JumpPage):
		m.enterCommandMode(CmdJump)
	case key.Matches(msg, Keys.Search):
		m.enterCommandMode(CmdSearch)

	case key.Matches(msg, Keys.Filter):
		cmd = m.openFilterDialog()
	case key.Matches(msg, Keys.ResetFilters):
		cmd = m.resetFilters()
	case key.Matches(msg, Keys.TimeWindow):
		cmd = m.openTimeWindowDrawer()
	case key.Matches(msg, Keys.Sort):
		if !m.ctrl.GridOptions().EnableSorting {
			return m, nil
		}
		m.cycleSort()
		cmd = m.notify("info", "Sort: %s", m.sortLabel())

	case key.Matches(msg, Keys.Select):
		cmd = m.toggleCurrentSelection()
	case key.Matches(msg, Keys.SelectAll):
		cmd = m.toggleSelectAll()
	case key.Matches(msg, Keys.SelectedOnly):
		cmd = m.toggleSelectedOnly()
	case key.Matches(msg, Keys.CopyLinks):
		cmd = m.copyLinks()

	case key.Matches(msg, Keys.SaveSession):
		cmd = m.openDialog(dialogs.NewSaveDialog(defaultSessionName(m.ctrl.Project()), m.lastDir))
	case key.Matches(msg, Keys.ExportToFile):
		p := m.ctrl.Pagination()
		cmd = m.openDialog(dialogs.NewExportDialog(defaultExportName(m.ctrl.Project(), p.Page+1), m.lastDir))
	case key.Matches(msg, Keys.OpenHelp):
		cmd = m.openDialog(dialogs.NewHelpDialog("siftly-changepoints keys", Keys.Legend()))
	}

	m.refreshView("key", false)
	return m, cmd
}
