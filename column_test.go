package main

import (
	"testing"

	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnsFromGrid(t *testing.T) {
	cols := columnsFromGrid(changepoints.DefaultGridOptions(changepoints.HazardValues))
	require.NotEmpty(t, cols)

	byField := map[string]ColumnMeta{}
	for _, c := range cols {
		byField[c.Field] = c
	}

	assert.False(t, byField[changepoints.FieldVersion].Visible, "version is rendered as a group header")
	assert.True(t, byField[changepoints.FieldTest].Visible)

	pc := byField[changepoints.FieldPercentChange]
	assert.Equal(t, changepoints.HazardColWidth, pc.MinWidth)
	assert.Zero(t, pc.Weight)
	assert.Equal(t, changepoints.CellPercentChange, pc.Template)
}

func TestLayoutColumns(t *testing.T) {
	cols := []ColumnMeta{
		{Name: "a", Visible: true, MinWidth: 10, Weight: 1},
		{Name: "b", Visible: true, MinWidth: 10, Weight: 3},
		{Name: "hidden", Visible: false, MinWidth: 10, Weight: 1},
		{Name: "fixed", Visible: true, MinWidth: 5},
	}

	out := layoutColumns(cols, 65)
	assert.Equal(t, 20, out[0].Width)
	assert.Equal(t, 40, out[1].Width)
	assert.Zero(t, out[2].Width)
	assert.Equal(t, 5, out[3].Width)
}

func TestLayoutColumns_TooNarrow(t *testing.T) {
	cols := []ColumnMeta{
		{Name: "a", Visible: true, MinWidth: 10, Weight: 1},
		{Name: "b", Visible: true, MinWidth: 10, Weight: 1},
	}

	out := layoutColumns(cols, 15)
	assert.Equal(t, 10, out[0].Width)
	assert.Equal(t, 10, out[1].Width)
}
