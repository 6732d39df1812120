package main

import "github.com/andareed/siftly-changepoints/changepoints"

type ColumnMeta struct {
	Name     string
	Field    string
	Template changepoints.CellTemplate
	Visible  bool
	MinWidth int
	Weight   float64
	Width    int
}

// columnsFromGrid turns the grid column definitions into layout metadata.
// The grouping column is rendered as a group header line, not as a cell.
func columnsFromGrid(grid changepoints.GridOptions) []ColumnMeta {
	cols := make([]ColumnMeta, 0, len(grid.ColumnDefs))
	for _, def := range grid.ColumnDefs {
		col := ColumnMeta{
			Name:     def.Name,
			Field:    def.Field,
			Template: def.CellTemplate,
			Visible:  def.Grouping == nil,
			MinWidth: defaultMinWidthForField(def.Field),
			Weight:   defaultWeightForField(def.Field),
		}
		if def.Width > 0 {
			// fixed width
			col.MinWidth = def.Width
			col.Weight = 0
		}
		cols = append(cols, col)
	}
	return cols
}

func defaultMinWidthForField(field string) int {
	switch field {
	case changepoints.FieldRevision, changepoints.FieldRevisionTime, changepoints.FieldCalculatedOn:
		return 22
	case changepoints.FieldTest:
		return 24
	case changepoints.FieldVariant, changepoints.FieldTask, changepoints.FieldMeasurement:
		return 16
	case changepoints.FieldTriageStatus:
		return 13
	case changepoints.FieldThreadLevel:
		return 8
	default:
		return 8
	}
}

func defaultWeightForField(field string) float64 {
	switch field {
	case changepoints.FieldTest:
		return 3.0
	case changepoints.FieldVariant, changepoints.FieldTask, changepoints.FieldMeasurement:
		return 2.0
	case changepoints.FieldThreadLevel, changepoints.FieldTriageStatus:
		return 0.5
	default:
		return 1.0
	}
}

func layoutColumns(cols []ColumnMeta, totalWidth int) []ColumnMeta {
	if totalWidth <= 0 {
		return cols
	}

	minSum := 0
	weightSum := 0.0
	for i := range cols {
		if !cols[i].Visible {
			continue
		}
		minSum += cols[i].MinWidth
		weightSum += cols[i].Weight
	}

	if minSum >= totalWidth {
		// Too tight: every column gets its minimum and the viewport scrolls sideways
		for i := range cols {
			if !cols[i].Visible {
				cols[i].Width = 0
				continue
			}
			cols[i].Width = cols[i].MinWidth
		}
		return cols
	}

	remaining := totalWidth - minSum
	for i := range cols {
		if !cols[i].Visible {
			cols[i].Width = 0
			continue
		}
		extra := 0
		if weightSum > 0 {
			extra = int(float64(remaining) * (cols[i].Weight / weightSum))
		}
		cols[i].Width = cols[i].MinWidth + extra
	}
	return cols
}
