package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/andareed/siftly-changepoints/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const resetSeq = termenv.CSI + "0m"

// gutterWidth covers the selection pill and the row number.
func (m *model) gutterWidth() int {
	return utf8.RuneCountInString(pillMarker) + len(fmt.Sprintf("%d", max(1, len(m.data.rows))))
}

func (m *model) headerView() string {
	var cells []string
	for _, col := range m.data.header {
		if !col.Visible || col.Width <= 0 {
			continue
		}
		cells = append(cells, cellStyle.Width(col.Width).Render(col.Name))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	return headerStyle.Render(strings.Repeat(" ", m.gutterWidth()) + headerRow)
}

// footerView renders the 2-line footer. width is the rendered table width.
func (m *model) footerView(width int) string {
	styles := defaultFooterStyles()
	p := m.ctrl.Pagination()

	st := FooterState{
		Project:      m.ctrl.Project(),
		FilterLabel:  m.ctrl.Filters().Summary(),
		SelectedOnly: m.data.showOnlySelected,
		Selected:     len(m.ctrl.Selection()),
		Page:         p.Page + 1,
		TotalPages:   p.TotalPages,
		Row:          m.cursor + 1,
		TotalRows:    len(m.data.filteredIndices),
		Sort:         m.sortLabel(),
		Legend:       "(? help · f filter · t window · n/p page · space select · y copy)",
	}
	if len(m.data.filteredIndices) == 0 {
		st.Row = 0
	}
	switch m.ui.mode {
	case modeCommand:
		st.Mode = m.ui.command.cmd
		st.ModeInput = m.activeCommandLine()
	case modeTimeWindow:
		st.ModeLabel = "WINDOW"
	}

	switch {
	case m.ui.noticeMsg != "":
		st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	case m.ui.loading:
		st.StatusMessage = "Loading page…"
	case m.ctrl.ConnectionError():
		st.StatusMessage = noticeText("Connection error", "error")
	default:
		st.StatusMessage = m.timeWindowStatusLabel()
	}

	if logging.IsDebugMode() {
		debug := fmt.Sprintf(" dbg term=%dx%d vp=%dx%d cur=%d vis=%d-%d page=%d ch=%d hf=%d abv=%d",
			m.terminalWidth, m.terminalHeight, m.viewport.Width, m.viewport.Height,
			m.cursor, m.ui.visibleStart, m.ui.visibleEnd, m.pageRowSize,
			m.ui.debugCursorHeight, m.ui.debugHeightFree, m.ui.debugDesiredAboveHeight,
		)
		st.Legend = st.Legend + " |" + debug
	}

	return renderFooter(width, st, styles)
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		return lipgloss.Place(
			m.terminalWidth, m.terminalHeight,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(lipgloss.Color("236")),
		)
	}

	bordered := tableStyle.Render(m.viewport.View())
	contentW := lipgloss.Width(bordered)

	parts := []string{m.headerView(), bordered}
	if m.ui.timeWindow.open {
		parts = append(parts, m.timeWindowDrawerView(contentW))
	}
	parts = append(parts, m.footerView(contentW))
	return appstyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// startsGroup reports whether the row at filteredIdx is the first of its
// version in display order.
func (m *model) startsGroup(filteredIdx int) bool {
	if filteredIdx == 0 {
		return true
	}
	prev := m.data.rows[m.data.filteredIndices[filteredIdx-1]]
	cur := m.data.rows[m.data.filteredIndices[filteredIdx]]
	return prev.Version != cur.Version
}

func (m *model) groupHeaderLine(filteredIdx int) string {
	r := m.data.rows[m.data.filteredIndices[filteredIdx]]
	label := "▾ " + r.Version
	if r.Revision != "" {
		label += "  " + r.Revision
	}
	if r.RevisionTime != "" {
		label += "  " + r.RevisionTime
	}
	return strings.Repeat(" ", m.gutterWidth()) + groupHeaderStyle.Render(label)
}

func (m *model) rowMarker(rowIdx int) string {
	if m.ctrl.IsSelected(rowIdx) {
		return selectedMarker.Render(pillMarker)
	}
	return defaultMarker
}

// renderRowAt renders one grid row plus its group header when it opens a
// version group. The returned height counts both.
func (m *model) renderRowAt(filteredIdx int) (string, int, bool) {
	if filteredIdx < 0 || filteredIdx >= len(m.data.filteredIndices) {
		return "", 0, false
	}

	current := filteredIdx == m.cursor
	rowBgStyle := rowStyle
	rowPrefix := bgSeq(lipgloss.Color("")) + fgSeq(lipgloss.Color(rowTextFGColor))
	if current {
		rowBgStyle = rowSelectedStyle
		rowPrefix = bgSeq(lipgloss.Color(rowSelectedBGColor)) + fgSeq(lipgloss.Color(rowSelectedTextFGColor))
	}

	rowIdx := m.data.filteredIndices[filteredIdx]
	row := m.data.rows[rowIdx]

	numberWidth := m.gutterWidth() - utf8.RuneCountInString(pillMarker)
	gutter := m.rowMarker(rowIdx) + rowBgStyle.Render(fmt.Sprintf("%*d", numberWidth, rowIdx+1))

	var highlight func(string) string
	if m.ui.searchQuery != "" {
		q := m.ui.searchQuery
		highlight = func(s string) string { return highlightMatches(s, q) }
	}
	content := renderCells(row, m.data.header, highlight)
	content = restoreRowStyleAfterReset(content, rowPrefix)

	lines := []string{gutter + rowPrefix + content + resetSeq}
	if m.startsGroup(filteredIdx) {
		lines = append([]string{m.groupHeaderLine(filteredIdx)}, lines...)
	}
	return strings.Join(lines, "\n"), len(lines), true
}

// restoreRowStyleAfterReset re-applies the row colours after every reset a
// styled cell emits, so the row background runs the full width.
func restoreRowStyleAfterReset(s string, rowPrefix string) string {
	if rowPrefix == "" || !strings.Contains(s, resetSeq) {
		return s
	}
	return strings.ReplaceAll(s, resetSeq, resetSeq+rowPrefix)
}

func fgSeq(c lipgloss.Color) string {
	return colorSeq(c, false)
}

func bgSeq(c lipgloss.Color) string {
	return colorSeq(c, true)
}

func colorSeq(c lipgloss.Color, bg bool) string {
	value := string(c)
	if value == "" {
		if bg {
			return termenv.CSI + "49m"
		}
		return termenv.CSI + "39m"
	}
	tc := lipgloss.ColorProfile().Color(value)
	if tc == nil {
		return ""
	}
	seq := tc.Sequence(bg)
	if seq == "" {
		return ""
	}
	return termenv.CSI + seq + "m"
}

func (m *model) emptyViewportText() string {
	switch {
	case m.ui.loading:
		return "Loading…"
	case len(m.data.rows) == 0:
		return "No change points match the current filters"
	default:
		return "Nothing selected (S to show all rows)"
	}
}

// renderViewport draws the visible rows. While the last load failed the grid
// is replaced by an error banner; the previous rows are kept for the retry.
func (m *model) renderViewport() string {
	logging.Debug("renderViewport called")
	if m.ctrl.ConnectionError() {
		m.pageRowSize = 0
		m.lastVisibleRowCount = 0
		return errorBannerStyle.Width(max(0, m.viewport.Width-2)).
			Render("Could not reach the performance analysis service. Press r to retry.")
	}

	if len(m.data.filteredIndices) == 0 {
		m.pageRowSize = 0
		m.lastVisibleRowCount = 0
		return m.emptyViewportText()
	}
	if m.cursor >= len(m.data.filteredIndices) || m.cursor < 0 {
		m.cursor = 0
	}

	renderedRows, startIdx, endIdx := m.computeVisibleRows(m.cursor, m.viewport.Height)
	m.ui.visibleStart = startIdx
	m.ui.visibleEnd = endIdx
	m.pageRowSize = len(renderedRows)
	m.lastVisibleRowCount = len(renderedRows)

	var b strings.Builder
	for _, r := range renderedRows {
		b.WriteString(r + "\n")
	}
	return b.String()
}

func (m *model) computeVisibleRows(cursor int, viewportHeight int) ([]string, int, int) {
	cursorRenderedRow, cursorHeight, ok := m.renderRowAt(cursor)
	if !ok {
		return nil, 0, 0
	}

	heightFree := viewportHeight - cursorHeight
	desiredAboveHeight := max(0, heightFree/2)
	m.ui.debugCursorHeight = cursorHeight
	m.ui.debugHeightFree = heightFree
	m.ui.debugDesiredAboveHeight = desiredAboveHeight
	upIndex := cursor - 1
	downIndex := cursor + 1

	var above []string
	var below []string

	aboveHeight := 0
	for heightFree > 0 && (upIndex >= 0 || downIndex < len(m.data.filteredIndices)) {
		if upIndex >= 0 && aboveHeight < desiredAboveHeight {
			rendered, height, ok := m.renderRowAt(upIndex)
			if ok && height <= heightFree {
				above = append(above, rendered)
				heightFree -= height
				aboveHeight += height
				upIndex--
				continue
			}
		}
		if downIndex < len(m.data.filteredIndices) {
			rendered, height, ok := m.renderRowAt(downIndex)
			if ok && height <= heightFree {
				below = append(below, rendered)
				heightFree -= height
				downIndex++
				continue
			}
		}
		if upIndex >= 0 {
			rendered, height, ok := m.renderRowAt(upIndex)
			if ok && height <= heightFree {
				above = append(above, rendered)
				heightFree -= height
				aboveHeight += height
				upIndex--
				continue
			}
		}
		break
	}

	renderedRows := make([]string, 0, len(above)+1+len(below))
	for i := len(above) - 1; i >= 0; i-- {
		renderedRows = append(renderedRows, above[i])
	}
	renderedRows = append(renderedRows, cursorRenderedRow)
	renderedRows = append(renderedRows, below...)

	return renderedRows, cursor - len(above), cursor + len(below)
}
