package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type FooterState struct {
	Mode      Command
	ModeLabel string // overrides the command label, e.g. WINDOW
	ModeInput string

	Project string

	FilterLabel  string
	SelectedOnly bool
	Selected     int

	Page       int // 1-based
	TotalPages int
	Row        int
	TotalRows  int
	Sort       string

	StatusMessage string
	Legend        string
}

type FooterStyles struct {
	BarBG      lipgloss.Color
	StatusBG   lipgloss.Color
	ModePillBG lipgloss.Color
	ModePillFG lipgloss.Color
	ProjectFG  lipgloss.Color
	TextFG     lipgloss.Color
	DimFG      lipgloss.Color
	StatusFG   lipgloss.Color
	ErrorFG    lipgloss.Color
	LegendFG   lipgloss.Color
}

func defaultFooterStyles() FooterStyles {
	return FooterStyles{
		BarBG:      lipgloss.Color("#2b2b2b"),
		StatusBG:   lipgloss.Color("#000000"),
		ModePillBG: lipgloss.Color("#ff9f1c"),
		ModePillFG: lipgloss.Color("#000000"),
		ProjectFG:  lipgloss.Color("#e0e0e0"),
		TextFG:     lipgloss.Color("#cfcfcf"),
		DimFG:      lipgloss.Color("#a0a0a0"),
		StatusFG:   lipgloss.Color("#9a9a9a"),
		ErrorFG:    lipgloss.Color("#ff5f5f"),
		LegendFG:   lipgloss.Color("#b0b0b0"),
	}
}

func renderFooter(width int, st FooterState, styles FooterStyles) string {
	if width <= 0 {
		return ""
	}
	if st.FilterLabel == "" {
		st.FilterLabel = "defaults"
	}
	if st.Legend == "" {
		st.Legend = "(? help · f filter · n/p page)"
	}
	st.Row = max(st.Row, 0)
	st.TotalRows = max(st.TotalRows, 0)
	st.Page = max(st.Page, 1)
	st.TotalPages = max(st.TotalPages, 1)

	line1 := renderControlBar(width, st, styles)
	line2 := renderStatusBar(width, st, styles)
	return line1 + "\n" + line2
}

func footerRight(st FooterState) string {
	right := fmt.Sprintf(" Page %d/%d · Rows %d/%d", st.Page, st.TotalPages, st.Row, st.TotalRows)
	if st.Sort != "" {
		right += " · Sort " + st.Sort
	}
	return right + " "
}

func renderControlBar(width int, st FooterState, styles FooterStyles) string {
	gapW := 1
	filterValW := 24
	selW := 9
	statusFixedW := runewidth.StringWidth(fmt.Sprintf("[FILTER: %s] · [SELECTED: %s]", strings.Repeat("X", filterValW), strings.Repeat("X", selW)))

	rightPlain := truncatePlain(footerRight(st), width)
	rightW := runewidth.StringWidth(rightPlain)

	leftW := max(0, width-rightW)

	modeColW := clamp(leftW/4, 12, 36)
	statusColW := statusFixedW
	projectColW := leftW - modeColW - statusColW - 2*gapW
	if projectColW < 0 {
		deficit := -projectColW
		if statusColW > 10 {
			shrink := min(deficit, statusColW-10)
			statusColW -= shrink
			deficit -= shrink
		}
		if deficit > 0 && modeColW > 10 {
			shrink := min(deficit, modeColW-10)
			modeColW -= shrink
		}
		projectColW = leftW - modeColW - statusColW - 2*gapW
		if projectColW < 0 {
			modeColW = max(0, modeColW+projectColW)
			projectColW = 0
		}
	}

	modeText := footerModeLabel(st)
	innerModeW := max(0, modeColW-2)
	modePillW := modeColW
	if runewidth.StringWidth(modeText) <= innerModeW {
		modePillW = runewidth.StringWidth(modeText) + 2
	}
	if slack := modeColW - modePillW; slack > 0 {
		modeColW = modePillW
		projectColW += slack
	}

	modeSeg := renderModeSegment(modeColW, st, styles)
	projectSeg := renderProjectSegment(projectColW, st, styles)
	statusSeg := renderFilterSelectionSegment(statusColW, st, styles, filterValW, selW)

	left := modeSeg + strings.Repeat(" ", gapW) + projectSeg + strings.Repeat(" ", gapW) + statusSeg
	if used := modeColW + projectColW + statusColW + 2*gapW; used < leftW {
		left += strings.Repeat(" ", leftW-used)
	}

	return applyBar(left+rightPlain, styles.BarBG, styles.TextFG)
}

func renderStatusBar(width int, st FooterState, styles FooterStyles) string {
	legendPlain := truncatePlain(st.Legend, width)
	legendW := runewidth.StringWidth(legendPlain)

	leftW := max(0, width-legendW)

	msgPlain := truncatePlain(st.StatusMessage, leftW)
	msgPlain = padRightPlain(msgPlain, leftW)

	linePlain := applyFG(msgPlain, styles.StatusFG, styles.StatusFG) + applyFG(legendPlain, styles.LegendFG, styles.StatusFG)
	return applyBar(linePlain, styles.StatusBG, styles.StatusFG)
}

func renderModeSegment(colW int, st FooterState, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	content := truncatePlain(footerModeLabel(st), max(0, colW-2))
	pillPlain := truncatePlain(" "+content+" ", colW)
	pad := strings.Repeat(" ", colW-runewidth.StringWidth(pillPlain))

	pill := bgSeq(styles.ModePillBG) + fgSeq(styles.ModePillFG) + pillPlain
	pill += bgSeq(styles.BarBG) + fgSeq(styles.TextFG) + pad
	return pill
}

// renderProjectSegment shows the project and, while typing, the command buffer.
func renderProjectSegment(colW int, st FooterState, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	name := strings.TrimSpace(st.Project)
	if name == "" {
		name = "(no project)"
	}
	remaining := colW
	projectPlain := truncatePlain("▸ "+name, remaining)
	remaining -= runewidth.StringWidth(projectPlain)

	inputPlain := ""
	if input := strings.TrimSpace(st.ModeInput); input != "" && remaining > 0 {
		inputPlain = truncatePlain(" ▸ "+input, remaining)
		remaining -= runewidth.StringWidth(inputPlain)
	}
	remaining = max(remaining, 0)

	return applyFG(projectPlain, styles.ProjectFG, styles.TextFG) + inputPlain + strings.Repeat(" ", remaining)
}

func renderFilterSelectionSegment(colW int, st FooterState, styles FooterStyles, filterValW, selW int) string {
	if colW <= 0 {
		return ""
	}
	filterVal := truncatePlain(strings.TrimSpace(st.FilterLabel), filterValW)
	sel := fmt.Sprintf("%d", st.Selected)
	if st.SelectedOnly {
		sel += " only"
	}
	sel = truncatePlain(sel, selW)

	plain := fmt.Sprintf("[FILTER: %s] · [SELECTED: %s]", filterVal, sel)
	plain = padRightPlain(truncatePlain(plain, colW), colW)
	return applyFG(plain, styles.DimFG, styles.TextFG)
}

func footerModeLabel(st FooterState) string {
	if st.ModeLabel != "" {
		return st.ModeLabel
	}
	return commandLabel(st.Mode)
}

func commandLabel(cmd Command) string {
	switch cmd {
	case CmdJump:
		return "PAGE"
	case CmdSearch:
		return "SEARCH"
	default:
		return "NORMAL"
	}
}

func applyBar(s string, bg lipgloss.Color, baseFG lipgloss.Color) string {
	return bgSeq(bg) + fgSeq(baseFG) + s + resetSeq
}

func applyFG(s string, fg lipgloss.Color, resetFG lipgloss.Color) string {
	return fgSeq(fg) + s + fgSeq(resetFG)
}

func padRightPlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.FillRight(s, w)
}

// truncatePlain cuts s to w terminal cells. Wide runes count double.
func truncatePlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
