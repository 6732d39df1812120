package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	m, _ := newTestModel(t)
	stubNow(t, time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC))

	f := m.ctrl.Filters()
	f.VariantRegex = "linux"
	f.ThreadLevels = []int{1, 8}
	windows, err := changepoints.HazardWindows([]string{changepoints.HazardMajorRegression})
	require.NoError(t, err)
	f.PercentChangeWindows = windows
	m.ctrl.UpdateFilters(f)
	m.ctrl.GoToPage(2)

	path := filepath.Join(t.TempDir(), "s.json")
	require.NoError(t, SaveSession(m, path))

	got, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, sessionVersion, got.Version)
	assert.Equal(t, testProject, got.Project)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, f, got.Filters)
	assert.Equal(t, time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC), got.SavedAt)
}

func TestLoadSession_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	_, err := LoadSession(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = LoadSession(write("bad.json", "{"))
	assert.Error(t, err)

	_, err = LoadSession(write("v2.json", `{"version": 2, "project": "x"}`))
	assert.ErrorContains(t, err, "not supported")

	got, err := LoadSession(write("neg.json", `{"version": 1, "project": "x", "page": -4}`))
	require.NoError(t, err)
	assert.Zero(t, got.Page)
}

func TestExportRows(t *testing.T) {
	m, _ := newTestModel(t)
	m.ctrl.ToggleSelection(2)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportRows(m, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4)
	header := records[0]
	assert.Equal(t, "Percent Change", header[0])
	assert.Equal(t, []string{"Build ID", "Task ID", "Selected"}, header[len(header)-3:])

	last := records[3]
	assert.Equal(t, "5.00", last[0])
	assert.Equal(t, "true", last[len(last)-1])
	assert.Equal(t, "false", records[1][len(records[1])-1])
	assert.Contains(t, last, "bbb222")
}

func TestExportRows_RespectsView(t *testing.T) {
	m, _ := newTestModel(t)
	m.ctrl.ToggleSelection(1)
	m.data.showOnlySelected = true
	m.applyView()

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportRows(m, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "-30.00", records[1][0])
}

func TestDefaultNames(t *testing.T) {
	assert.Equal(t, "sys-perf.session.json", defaultSessionName("sys-perf"))
	assert.Equal(t, "a_b.session.json", defaultSessionName("a/b"))
	assert.Equal(t, "changepoints-page3.csv", defaultExportName(" ", 3))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestExportRows_Errors(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Error(t, ExportRows(m, filepath.Join(t.TempDir(), "missing", "out.csv")))
	assert.ErrorIs(t, writeRows(m, failingWriter{}), os.ErrClosed)
}
