package main

import (
	"strings"

	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/andareed/siftly-changepoints/clipboard"
	"github.com/andareed/siftly-changepoints/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// linkField is the column whose link `y` copies.
const linkField = changepoints.FieldTask

func (m *model) toggleCurrentSelection() tea.Cmd {
	idx := m.currentRowIndex()
	if idx < 0 {
		return nil
	}
	selected := m.ctrl.ToggleSelection(idx)
	logging.Debugf("Cursor: %d row %d selected=%v", m.cursor, idx, selected)
	if m.data.showOnlySelected {
		m.applyView()
	} else {
		m.moveCursor(1)
	}
	return nil
}

// toggleSelectAll selects every row, or clears the selection when everything
// is already selected.
func (m *model) toggleSelectAll() tea.Cmd {
	if !m.ctrl.GridOptions().EnableSelectAll {
		return nil
	}
	if len(m.data.rows) > 0 && len(m.ctrl.Selection()) == len(m.data.rows) {
		m.ctrl.ClearSelection()
		m.applyView()
		return m.notify("info", "Selection cleared")
	}
	m.ctrl.SelectAll()
	m.applyView()
	return m.notify("info", "Selected %d rows", len(m.data.rows))
}

func (m *model) toggleSelectedOnly() tea.Cmd {
	m.data.showOnlySelected = !m.data.showOnlySelected
	m.applyView()
	if m.data.showOnlySelected && len(m.data.filteredIndices) == 0 {
		return m.notify("warn", "Nothing selected")
	}
	return nil
}

// linkTargets is the selected rows, or the cursor row when nothing is selected.
func (m *model) linkTargets() []int {
	sel := m.ctrl.Selection()
	if len(sel) > 0 {
		return sel
	}
	if idx := m.currentRowIndex(); idx >= 0 {
		return []int{idx}
	}
	return nil
}

func (m *model) copyLinks() tea.Cmd {
	targets := m.linkTargets()
	if len(targets) == 0 {
		return m.notify("warn", "No rows to copy")
	}
	links := make([]string, 0, len(targets))
	for _, i := range targets {
		r := m.data.rows[i]
		links = append(links, r.Link(linkField, m.cfg.UIBaseURL))
	}
	if err := clipboard.Copy(strings.Join(links, "\n")); err != nil {
		logging.Errorf("copy links: %v", err)
		return m.notify("error", "Copy failed: %v", err)
	}
	return m.notify("success", "Copied %d link(s)", len(links))
}
