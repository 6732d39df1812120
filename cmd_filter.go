package main

import (
	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/andareed/siftly-changepoints/dialogs"
	"github.com/andareed/siftly-changepoints/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) openFilterDialog() tea.Cmd {
	if !m.ctrl.GridOptions().EnableFiltering {
		return nil
	}
	d := dialogs.NewFilterDialog(m.ctrl.Filters())
	m.activeDialog = d
	return d.Init()
}

// applyFilters replaces the server-side filters and reloads from page 1.
func (m *model) applyFilters(f changepoints.FilterState) tea.Cmd {
	logging.Infof("Setting filters to: %s", f.Summary())
	m.data.showOnlySelected = false
	return m.load(m.ctrl.UpdateFilters(f))
}

func (m *model) resetFilters() tea.Cmd {
	return tea.Batch(
		m.applyFilters(changepoints.DefaultFilters()),
		m.notify("info", "Filters reset to defaults"),
	)
}
