package main

import (
	"context"
	"errors"

	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/andareed/siftly-changepoints/logging"
	tea "github.com/charmbracelet/bubbletea"
)

type pageLoadedMsg struct {
	result changepoints.PageResult
}

// startLoad runs the network part of a page load off the Update loop.
func startLoad(req *changepoints.PageRequest) tea.Cmd {
	return func() tea.Msg {
		return pageLoadedMsg{result: req.Do(context.Background())}
	}
}

// load marks the UI busy and kicks off req.
func (m *model) load(req *changepoints.PageRequest) tea.Cmd {
	m.ui.loading = true
	m.refreshView("load", false)
	return startLoad(req)
}

func (m *model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	err := m.ctrl.Apply(msg.result)
	if errors.Is(err, changepoints.ErrStaleResult) {
		return m, nil
	}
	m.ui.loading = false
	if err != nil {
		logging.Errorf("page load failed: %v", err)
		m.refreshView("load-failed", false)
		return m, m.notify("error", "Load failed: %v", err)
	}

	m.cursor = 0
	m.syncRows()
	m.refreshView("loaded", true)
	p := m.ctrl.Pagination()
	return m, m.notify("success", "Page %d/%d loaded (%d rows)", p.Page+1, p.TotalPages, len(m.data.rows))
}
