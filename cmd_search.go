package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// searchOnce moves the cursor to the next row containing query, wrapping
// around the page. The query stays highlighted until the next search.
func (m *model) searchOnce(query string) tea.Cmd {
	q := strings.ToLower(strings.TrimSpace(query))
	m.ui.searchQuery = q
	if q == "" || !m.checkViewPortHasData() {
		return nil
	}

	n := len(m.data.filteredIndices)
	for step := 1; step <= n; step++ {
		i := (m.cursor + step) % n
		row := m.data.rows[m.data.filteredIndices[i]]
		if strings.Contains(strings.ToLower(rowText(row, m.data.header)), q) {
			m.cursor = i
			return nil
		}
	}
	return m.notify("warn", "No match for %q on this page", query)
}

func highlightMatches(text string, query string) string {
	q := strings.TrimSpace(query)
	if q == "" || text == "" {
		return text
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(q)
	if len(lowerText) != len(text) {
		// case folding changed byte offsets; don't risk slicing mid-rune
		return text
	}
	var b strings.Builder
	start := 0
	for {
		idx := strings.Index(lowerText[start:], lowerQuery)
		if idx == -1 {
			b.WriteString(text[start:])
			break
		}
		idx += start
		b.WriteString(text[start:idx])
		b.WriteString(searchHighlight.Render(text[idx : idx+len(lowerQuery)]))
		start = idx + len(lowerQuery)
	}
	return b.String()
}
