package main

import (
	"testing"

	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/stretchr/testify/assert"
)

func groupedRows() []changepoints.GridRow {
	return []changepoints.GridRow{
		{Version: "v1", PercentChange: "10.00", Test: "b"},
		{Version: "v1", PercentChange: "-30.00", Test: "a"},
		{Version: "v2", PercentChange: "5.00", Test: "c"},
		{Version: "v2", PercentChange: "-2.00", Test: "d"},
	}
}

func TestSortIndices(t *testing.T) {
	tests := []struct {
		name string
		st   sortState
		want []int
	}{
		{name: "server order", st: sortState{}, want: []int{0, 1, 2, 3}},
		{name: "percent asc stays in groups", st: sortState{field: changepoints.FieldPercentChange}, want: []int{1, 0, 3, 2}},
		{name: "percent desc stays in groups", st: sortState{field: changepoints.FieldPercentChange, desc: true}, want: []int{0, 1, 2, 3}},
		{name: "version desc reorders groups", st: sortState{field: changepoints.FieldVersion, desc: true}, want: []int{2, 3, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := []int{0, 1, 2, 3}
			sortIndices(groupedRows(), idx, tt.st)
			assert.Equal(t, tt.want, idx)
		})
	}
}

func TestNextSort(t *testing.T) {
	fields := []string{"a", "b"}
	var got []sortState
	st := sortState{}
	for range 5 {
		st = nextSort(st, fields)
		got = append(got, st)
	}
	assert.Equal(t, []sortState{
		{field: "a"},
		{field: "a", desc: true},
		{field: "b"},
		{field: "b", desc: true},
		{},
	}, got)

	assert.Equal(t, sortState{}, nextSort(sortState{field: "a"}, nil))
}

func TestSortFields(t *testing.T) {
	grid := changepoints.DefaultGridOptions(changepoints.HazardValues)

	fields := sortFields(grid)
	assert.Contains(t, fields, changepoints.FieldPercentChange)
	assert.Contains(t, fields, changepoints.FieldRevision)
	assert.NotContains(t, fields, changepoints.FieldTask)

	grid.EnableSorting = false
	assert.Empty(t, sortFields(grid))
}

func TestApplyView_SelectedOnly(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursor = 2
	m.ctrl.ToggleSelection(1)

	m.data.showOnlySelected = true
	m.applyView()
	assert.Equal(t, []int{1}, m.data.filteredIndices)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 1, m.currentRowIndex())

	m.ctrl.ClearSelection()
	m.applyView()
	assert.Empty(t, m.data.filteredIndices)
	assert.Equal(t, -1, m.currentRowIndex())
	assert.Contains(t, m.renderViewport(), "Nothing selected")
}

func TestSortLabel(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, "server", m.sortLabel())

	m.data.sort = sortState{field: changepoints.FieldPercentChange, desc: true}
	assert.Equal(t, "Percent Change ↓", m.sortLabel())
}
