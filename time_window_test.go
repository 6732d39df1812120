package main

import (
	"testing"
	"time"

	"github.com/andareed/siftly-changepoints/changepoints"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestDefaultWindowBounds(t *testing.T) {
	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	stubNow(t, at)

	start, end := defaultWindowBounds(nil)
	assert.Equal(t, at.Add(-defaultWindowSpan), start)
	assert.Equal(t, at, end)

	rows := []changepoints.GridRow{
		{CalculatedOn: "2024-01-03T12:30:00.500000"},
		{CalculatedOn: "garbage"},
		{CalculatedOn: "2024-01-02T10:00:00.000000"},
	}
	start, end = defaultWindowBounds(rows)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 3, 12, 30, 1, 0, time.UTC), end)

	// a single timestamp anchors the end of a week-long window
	start, end = defaultWindowBounds(rows[:1])
	assert.Equal(t, time.Date(2024, 1, 3, 12, 30, 1, 0, time.UTC), end)
	assert.Equal(t, end.Add(-defaultWindowSpan), start)
}

func TestFormatStep(t *testing.T) {
	assert.Equal(t, "1h", formatStep(time.Hour))
	assert.Equal(t, "2d", formatStep(48*time.Hour))
	assert.Equal(t, "90m", formatStep(90*time.Minute))
}

func TestTimeWindowDrawer_OpensWithPageBounds(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(keyRunes("t"))
	require.True(t, m.ui.timeWindow.open)
	assert.Equal(t, modeTimeWindow, m.ui.mode)
	assert.Equal(t, "2024-01-02 10:00:00", m.ui.timeWindow.startInput.Value())
	assert.Equal(t, "2024-01-04 08:00:01", m.ui.timeWindow.endInput.Value())
	assert.Contains(t, m.View(), "Calculated on from:")
}

func TestTimeWindowDrawer_Apply(t *testing.T) {
	m, f := newTestModel(t)
	m.Update(keyRunes("t"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runLoad(t, m, cmd)

	assert.False(t, m.ui.timeWindow.open)
	assert.Equal(t, modeView, m.ui.mode)
	want := "2024-01-02T10:00:00.000,2024-01-04T08:00:01.000"
	assert.Equal(t, want, m.ctrl.Filters().CalculatedOnWindow)
	assert.Equal(t, want, f.lastParams().Get("calculated_on"))
	assert.Contains(t, m.timeWindowStatusLabel(), "2024-01-02 10:00:00")
}

func TestTimeWindowDrawer_InvalidInput(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(keyRunes("t"))
	m.ui.timeWindow.startInput.SetValue("2024-02-01 00:00:00")
	m.ui.timeWindow.endInput.SetValue("2024-01-01 00:00:00")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, m.ui.timeWindow.open)
	assert.Equal(t, "start is after end", m.ui.timeWindow.errorMsg)

	m.ui.timeWindow.startInput.SetValue("soon")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "invalid start time", m.ui.timeWindow.errorMsg)
}

func TestTimeWindowDrawer_ShiftAndStep(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(keyRunes("t"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, timeWindowFocusShift, m.ui.timeWindow.focus)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "2024-01-03 10:00:00", m.ui.timeWindow.startInput.Value())
	assert.Equal(t, "2024-01-05 08:00:01", m.ui.timeWindow.endInput.Value())

	m.Update(keyRunes("-"))
	assert.Equal(t, 12*time.Hour, m.ui.timeWindow.step)

	m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	assert.Equal(t, "2024-01-02 22:00:00", m.ui.timeWindow.startInput.Value())
	assert.Equal(t, "2024-01-05 08:00:01", m.ui.timeWindow.endInput.Value())

	for range 10 {
		m.Update(keyRunes("-"))
	}
	assert.Equal(t, timeWindowStepMin, m.ui.timeWindow.step)
}

func TestTimeWindowDrawer_ResetClearsFilter(t *testing.T) {
	m, f := newTestModel(t)
	m.Update(keyRunes("t"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runLoad(t, m, cmd)
	require.NotEmpty(t, m.ctrl.Filters().CalculatedOnWindow)

	m.Update(keyRunes("t"))
	_, cmd = m.Update(keyRunes("r"))
	runLoad(t, m, cmd)

	assert.Empty(t, m.ctrl.Filters().CalculatedOnWindow)
	assert.False(t, f.lastParams().Has("calculated_on"))
	assert.Equal(t, "Window: off", m.timeWindowStatusLabel())
}

func TestTimeWindowDrawer_Esc(t *testing.T) {
	m, f := newTestModel(t)
	calls := len(f.params)
	m.Update(keyRunes("t"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, m.ui.timeWindow.open)
	assert.Len(t, f.params, calls)
}
