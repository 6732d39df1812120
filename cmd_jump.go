package main

import (
	"github.com/andareed/siftly-changepoints/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) jumpToStart() {
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = 0
}

func (m *model) jumpToEnd() {
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = len(m.data.filteredIndices) - 1
}

// jumpToPage loads the 1-based page n.
func (m *model) jumpToPage(n int) tea.Cmd {
	logging.Debugf("jumpToPage %d", n)
	total := m.ctrl.Pagination().TotalPages
	if n <= 0 || (total > 0 && n > total) {
		return m.notify("warn", "Page %d out of bounds (1-%d)", n, total)
	}
	return m.load(m.ctrl.GoToPage(n - 1))
}

func (m *model) nextPage() tea.Cmd {
	p := m.ctrl.Pagination()
	if p.Page+1 >= p.TotalPages {
		return m.notify("info", "Already on the last page")
	}
	return m.load(m.ctrl.NextRequest())
}

func (m *model) prevPage() tea.Cmd {
	if m.ctrl.Pagination().Page <= 0 {
		return m.notify("info", "Already on the first page")
	}
	return m.load(m.ctrl.PrevRequest())
}

func (m *model) moveCursor(delta int) {
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.data.filteredIndices)-1)
}

func (m *model) halfScreen() int {
	return max(1, m.lastVisibleRowCount/2)
}
