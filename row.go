package main

import (
	"strings"

	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const cellEllipsis = "…"

// rowText is what search matches against: every visible field, tab separated.
func rowText(r changepoints.GridRow, cols []ColumnMeta) string {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.Visible {
			parts = append(parts, r.Field(c.Field))
		}
	}
	return strings.Join(parts, "\t")
}

// cellText renders the raw value for a column, before styling.
func cellText(r changepoints.GridRow, col ColumnMeta) string {
	if col.Template == changepoints.CellPercentChange {
		return r.PercentChange + "%  " + changepoints.HazardLevel(r.PercentChangeValue())
	}
	return r.Field(col.Field)
}

// renderCells lays out one grid row. highlight is applied to the truncated text
// so ANSI sequences never get cut in half.
func renderCells(r changepoints.GridRow, cols []ColumnMeta, highlight func(string) string) string {
	var rendered []string
	for _, col := range cols {
		if !col.Visible || col.Width <= 0 {
			continue
		}
		inner := col.Width - cellStyle.GetHorizontalPadding()
		if inner < 1 {
			inner = 1
		}
		text := truncate.StringWithTail(cellText(r, col), uint(inner), cellEllipsis)
		if highlight != nil {
			text = highlight(text)
		}

		style := cellStyle.Width(col.Width)
		switch col.Template {
		case changepoints.CellPercentChange:
			style = style.Foreground(hazardColor(r.PercentChangeValue()))
		case changepoints.CellLink:
			style = style.Inherit(linkStyle)
		}
		rendered = append(rendered, style.Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func hazardColor(percent float64) lipgloss.Color {
	switch changepoints.HazardLevel(percent) {
	case changepoints.HazardMajorRegression:
		return lipgloss.Color(majorRegressionFG)
	case changepoints.HazardModerateRegression, changepoints.HazardMinorRegression:
		return lipgloss.Color(regressionFG)
	case changepoints.HazardNoChange:
		return lipgloss.Color(rowTextFGColor)
	case changepoints.HazardMajorImprovement:
		return lipgloss.Color(majorImprovementFG)
	default:
		return lipgloss.Color(improvementFG)
	}
}
