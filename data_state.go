package main

import (
	"sort"
	"strings"

	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/andareed/siftly-changepoints/logging"
)

// sortState is the client-side ordering of the page. The server orders by
// version; rows are only reordered inside their version group.
type sortState struct {
	field string // "" means server order
	desc  bool
}

type dataState struct {
	header           []ColumnMeta
	rows             []changepoints.GridRow // current page, same indices as the controller
	filteredIndices  []int
	showOnlySelected bool
	sort             sortState
}

// syncRows pulls the committed page out of the controller and rebuilds the view.
func (m *model) syncRows() {
	m.data.rows = m.ctrl.Rows()
	m.applyView()
}

// applyView rebuilds filteredIndices from the selection filter and sort.
func (m *model) applyView() {
	m.data.filteredIndices = m.data.filteredIndices[:0]
	for i := range m.data.rows {
		if m.data.showOnlySelected && !m.ctrl.IsSelected(i) {
			continue
		}
		m.data.filteredIndices = append(m.data.filteredIndices, i)
	}
	sortIndices(m.data.rows, m.data.filteredIndices, m.data.sort)

	if len(m.data.filteredIndices) == 0 {
		m.cursor = 0
	} else if m.cursor >= len(m.data.filteredIndices) {
		m.cursor = len(m.data.filteredIndices) - 1
	}
	logging.Debugf("applyView: %d/%d rows, sort=%q desc=%v", len(m.data.filteredIndices), len(m.data.rows), m.data.sort.field, m.data.sort.desc)
}

func sortIndices(rows []changepoints.GridRow, idx []int, st sortState) {
	if st.field == "" {
		sort.Ints(idx)
		return
	}

	// rank versions by first appearance so groups keep server order
	groupRank := make(map[string]int)
	for i, r := range rows {
		if _, ok := groupRank[r.Version]; !ok {
			groupRank[r.Version] = i
		}
	}

	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := rows[idx[a]], rows[idx[b]]
		if st.field != changepoints.FieldVersion {
			ga, gb := groupRank[ra.Version], groupRank[rb.Version]
			if ga != gb {
				return ga < gb
			}
		}
		c := compareField(ra, rb, st.field)
		if st.desc {
			return c > 0
		}
		return c < 0
	})
}

func compareField(a, b changepoints.GridRow, field string) int {
	if field == changepoints.FieldPercentChange {
		va, vb := a.PercentChangeValue(), b.PercentChangeValue()
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		}
		return 0
	}
	return strings.Compare(a.Field(field), b.Field(field))
}

// sortFields lists the columns `o` cycles through.
func sortFields(grid changepoints.GridOptions) []string {
	if !grid.EnableSorting {
		return nil
	}
	var out []string
	for _, c := range grid.ColumnDefs {
		if c.Sortable() {
			out = append(out, c.Field)
		}
	}
	return out
}

// nextSort cycles: server order, then each sortable field ascending and descending.
func nextSort(cur sortState, fields []string) sortState {
	if len(fields) == 0 {
		return sortState{}
	}
	if cur.field == "" {
		return sortState{field: fields[0]}
	}
	if !cur.desc {
		return sortState{field: cur.field, desc: true}
	}
	for i, f := range fields {
		if f == cur.field && i+1 < len(fields) {
			return sortState{field: fields[i+1]}
		}
	}
	return sortState{}
}

func (m *model) cycleSort() {
	m.data.sort = nextSort(m.data.sort, sortFields(m.ctrl.GridOptions()))
	m.applyView()
}

func (m *model) sortLabel() string {
	if m.data.sort.field == "" {
		return "server"
	}
	name := m.data.sort.field
	if col, ok := m.ctrl.GridOptions().Column(m.data.sort.field); ok {
		name = col.Name
	}
	if m.data.sort.desc {
		return name + " ↓"
	}
	return name + " ↑"
}

// currentRowIndex maps the cursor to a row index, or -1.
func (m *model) currentRowIndex() int {
	if m.cursor < 0 || m.cursor >= len(m.data.filteredIndices) {
		return -1
	}
	return m.data.filteredIndices[m.cursor]
}

func (m *model) checkViewPortHasData() bool {
	return len(m.data.filteredIndices) > 0
}
