package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/andareed/siftly-changepoints/logging"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *model) openTimeWindowDrawer() tea.Cmd {
	tw := &m.ui.timeWindow
	tw.open = true
	tw.errorMsg = ""
	if tw.step <= 0 {
		tw.step = timeWindowStepDefault
	}

	if start, end, ok := changepoints.ParseCalculatedOnWindow(m.ctrl.Filters().CalculatedOnWindow); ok {
		tw.draftStart, tw.draftEnd = start, end
	} else {
		tw.draftStart, tw.draftEnd = defaultWindowBounds(m.data.rows)
	}

	m.updateTimeWindowInputsFromDraft()
	m.setTimeWindowFocus(timeWindowFocusStart)
	m.ui.mode = modeTimeWindow
	m.resizeViewport()
	m.refreshView("time-window-open", false)
	return nil
}

func (m *model) closeTimeWindowDrawer() {
	m.ui.timeWindow.open = false
	m.ui.timeWindow.errorMsg = ""
	m.ui.mode = modeView
	m.resizeViewport()
	m.refreshView("time-window-close", false)
}

func (m *model) handleTimeWindowKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tw := &m.ui.timeWindow
	onShift := tw.focus == timeWindowFocusShift

	switch {
	case msg.Type == tea.KeyEsc:
		m.closeTimeWindowDrawer()
		return m, nil
	case msg.Type == tea.KeyEnter:
		return m, m.applyTimeWindowFromInputs()
	case msg.String() == "r":
		return m, m.resetTimeWindow()
	case msg.Type == tea.KeyTab:
		m.setTimeWindowFocus((tw.focus + 1) % timeWindowFocusCount)
		return m, nil
	case msg.Type == tea.KeyShiftTab:
		m.setTimeWindowFocus((tw.focus + timeWindowFocusCount - 1) % timeWindowFocusCount)
		return m, nil
	case onShift && msg.Type == tea.KeyLeft:
		m.shiftTimeWindow(-m.timeWindowStep())
		return m, nil
	case onShift && msg.Type == tea.KeyRight:
		m.shiftTimeWindow(m.timeWindowStep())
		return m, nil
	case onShift && msg.Type == tea.KeyShiftLeft:
		m.expandTimeWindow(-m.timeWindowStep())
		return m, nil
	case onShift && msg.Type == tea.KeyShiftRight:
		m.expandTimeWindow(m.timeWindowStep())
		return m, nil
	case onShift && msg.String() == "-":
		m.adjustTimeWindowStep(false)
		return m, nil
	case onShift && (msg.String() == "+" || msg.String() == "="):
		m.adjustTimeWindowStep(true)
		return m, nil
	}

	var cmd tea.Cmd
	switch tw.focus {
	case timeWindowFocusStart:
		tw.startInput, cmd = tw.startInput.Update(msg)
	case timeWindowFocusEnd:
		tw.endInput, cmd = tw.endInput.Update(msg)
	}
	return m, cmd
}

func (m *model) setTimeWindowFocus(focus int) {
	tw := &m.ui.timeWindow
	tw.focus = focus
	switch focus {
	case timeWindowFocusStart:
		tw.startInput.Focus()
		tw.endInput.Blur()
	case timeWindowFocusEnd:
		tw.startInput.Blur()
		tw.endInput.Focus()
	default:
		tw.startInput.Blur()
		tw.endInput.Blur()
	}
}

func (m *model) updateTimeWindowInputsFromDraft() {
	tw := &m.ui.timeWindow
	if !tw.draftStart.IsZero() {
		tw.startInput.SetValue(tw.draftStart.Format(timeInputLayout))
	}
	if !tw.draftEnd.IsZero() {
		tw.endInput.SetValue(tw.draftEnd.Format(timeInputLayout))
	}
}

// parseTimeWindowInputs reads both inputs as UTC.
func (m *model) parseTimeWindowInputs() (time.Time, time.Time, error) {
	tw := &m.ui.timeWindow
	start, err := time.ParseInLocation(timeInputLayout, strings.TrimSpace(tw.startInput.Value()), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start time")
	}
	end, err := time.ParseInLocation(timeInputLayout, strings.TrimSpace(tw.endInput.Value()), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end time")
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, errors.New("start is after end")
	}
	return start, end, nil
}

func (m *model) syncDraftFromInputs() {
	tw := &m.ui.timeWindow
	if start, end, err := m.parseTimeWindowInputs(); err == nil {
		tw.draftStart, tw.draftEnd = start, end
	}
}

// resetTimeWindow drops the calculated_on filter if one is active, otherwise
// it just restores the default draft.
func (m *model) resetTimeWindow() tea.Cmd {
	tw := &m.ui.timeWindow
	tw.errorMsg = ""

	f := m.ctrl.Filters()
	if f.CalculatedOnWindow == "" {
		tw.draftStart, tw.draftEnd = defaultWindowBounds(m.data.rows)
		m.updateTimeWindowInputsFromDraft()
		return nil
	}
	f.CalculatedOnWindow = ""
	m.closeTimeWindowDrawer()
	return m.applyFilters(f)
}

func (m *model) applyTimeWindowFromInputs() tea.Cmd {
	tw := &m.ui.timeWindow
	tw.errorMsg = ""

	start, end, err := m.parseTimeWindowInputs()
	if err != nil {
		tw.errorMsg = err.Error()
		return nil
	}
	tw.draftStart, tw.draftEnd = start, end

	f := m.ctrl.Filters()
	f.CalculatedOnWindow = changepoints.FormatCalculatedOnWindow(start, end)
	logging.Infof("calculated_on window set to %s", f.CalculatedOnWindow)
	m.closeTimeWindowDrawer()
	return m.applyFilters(f)
}

func (m *model) ensureDraft() {
	tw := &m.ui.timeWindow
	m.syncDraftFromInputs()
	if tw.draftStart.IsZero() || tw.draftEnd.IsZero() {
		tw.draftStart, tw.draftEnd = defaultWindowBounds(m.data.rows)
	}
}

func (m *model) shiftTimeWindow(delta time.Duration) {
	tw := &m.ui.timeWindow
	tw.errorMsg = ""
	m.ensureDraft()
	tw.draftStart = tw.draftStart.Add(delta)
	tw.draftEnd = tw.draftEnd.Add(delta)
	m.updateTimeWindowInputsFromDraft()
}

// expandTimeWindow moves the start earlier for a negative delta and the end
// later for a positive one.
func (m *model) expandTimeWindow(delta time.Duration) {
	tw := &m.ui.timeWindow
	tw.errorMsg = ""
	m.ensureDraft()
	if delta < 0 {
		tw.draftStart = tw.draftStart.Add(delta)
	} else {
		tw.draftEnd = tw.draftEnd.Add(delta)
	}
	m.updateTimeWindowInputsFromDraft()
}

func (m *model) timeWindowStep() time.Duration {
	step := m.ui.timeWindow.step
	if step <= 0 {
		return timeWindowStepDefault
	}
	return clampDuration(step, timeWindowStepMin, timeWindowStepMax)
}

func (m *model) adjustTimeWindowStep(increase bool) {
	step := m.timeWindowStep()
	if increase {
		step *= 2
	} else {
		step /= 2
	}
	m.ui.timeWindow.step = clampDuration(step, timeWindowStepMin, timeWindowStepMax)
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

func formatStep(step time.Duration) string {
	day := 24 * time.Hour
	if step%day == 0 {
		return fmt.Sprintf("%dd", int(step/day))
	}
	if step%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(step/time.Hour))
	}
	return fmt.Sprintf("%dm", int(step/time.Minute))
}

func (m *model) timeWindowDrawerView(width int) string {
	tw := &m.ui.timeWindow
	innerWidth := max(0, width-2)
	lineStyle := lipgloss.NewStyle().Width(innerWidth)

	shiftLine := fmt.Sprintf("Shift: %s", m.timeWindowSpanLabel())
	if tw.focus == timeWindowFocusShift {
		shiftLine = "▸ " + shiftLine
	}
	helpLine := fmt.Sprintf("tab: next  enter: apply  r: clear  esc: cancel  ←/→: move %s  shift+←/→: expand  -/+: step",
		formatStep(m.timeWindowStep()),
	)
	errorLine := ""
	if tw.errorMsg != "" {
		errorLine = "Error: " + tw.errorMsg
	}

	lines := []string{
		lineStyle.Render("Calculated on from: " + tw.startInput.View()),
		lineStyle.Render("Calculated on to:   " + tw.endInput.View()),
		lineStyle.Render(shiftLine),
		lineStyle.Render(helpLine),
		lineStyle.Render(errorLine),
	}
	return timeWindowArea.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *model) timeWindowSpanLabel() string {
	tw := &m.ui.timeWindow
	if tw.draftStart.IsZero() || tw.draftEnd.IsZero() {
		return "n/a"
	}
	span := tw.draftEnd.Sub(tw.draftStart).Round(time.Minute)
	return fmt.Sprintf("%s → %s (%s)", tw.draftStart.Format(timeInputLayout), tw.draftEnd.Format(timeInputLayout), span)
}

func (m *model) timeWindowStatusLabel() string {
	start, end, ok := changepoints.ParseCalculatedOnWindow(m.ctrl.Filters().CalculatedOnWindow)
	if !ok {
		return "Window: off"
	}
	return fmt.Sprintf("Window: %s - %s", start.Format(timeInputLayout), end.Format(timeInputLayout))
}
