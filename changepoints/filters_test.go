package changepoints

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterState_ValuesOmitsEmptyFields(t *testing.T) {
	v, err := FilterState{}.Values(0, 10)
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"page":      {"0"},
		"page_size": {"10"},
	}, v)
}

func TestFilterState_ValuesDefaults(t *testing.T) {
	v, err := DefaultFilters().Values(2, 10)
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"page":                {"2"},
		"page_size":           {"10"},
		"task_regex":          {DefaultTaskRegex},
		"test_regex":          {DefaultTestRegex},
		"measurement_regex":   {DefaultMeasurementRegex},
		"triage_status_regex": {DefaultTriageStatusRegex},
	}, v)
	for _, absent := range []string{"variant_regex", "version_regex", "thread_levels", "percent_change", "calculated_on"} {
		_, ok := v[absent]
		assert.False(t, ok, absent)
	}
}

func TestFilterState_ValuesAllFields(t *testing.T) {
	f := FilterState{
		VariantRegex:         "linux-.*",
		VersionRegex:         "sys_perf_.*",
		TaskRegex:            "big_update",
		TestRegex:            "Insert",
		MeasurementRegex:     "AverageSize",
		TriageStatusRegex:    "untriaged",
		ThreadLevels:         []int{1, 2, 4},
		PercentChangeWindows: []string{"-100,-50", "50,1000000"},
		CalculatedOnWindow:   "2020-05-01T00:00:00.000,2020-05-31T00:00:00.000",
	}

	v, err := f.Values(5, 10)
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"page":                {"5"},
		"page_size":           {"10"},
		"variant_regex":       {"linux-.*"},
		"version_regex":       {"sys_perf_.*"},
		"task_regex":          {"big_update"},
		"test_regex":          {"Insert"},
		"measurement_regex":   {"AverageSize"},
		"triage_status_regex": {"untriaged"},
		"thread_levels":       {"1", "2", "4"},
		"percent_change":      {"-100,-50", "50,1000000"},
		"calculated_on":       {"2020-05-01T00:00:00.000,2020-05-31T00:00:00.000"},
	}, v)
}

func TestFilterState_Clone(t *testing.T) {
	f := FilterState{ThreadLevels: []int{1}, PercentChangeWindows: []string{"0,0"}}
	c := f.Clone()
	c.ThreadLevels[0] = 8
	c.PercentChangeWindows[0] = "x"

	assert.Equal(t, []int{1}, f.ThreadLevels)
	assert.Equal(t, []string{"0,0"}, f.PercentChangeWindows)
}

func TestFilterState_Summary(t *testing.T) {
	assert.Equal(t, "None", FilterState{}.Summary())
	assert.Equal(t, "variant=linux threads=1,2", FilterState{VariantRegex: "linux", ThreadLevels: []int{1, 2}}.Summary())
}

func TestParseThreadLevels(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "1", want: []int{1}},
		{in: " 1, 2,,4 ", want: []int{1, 2, 4}},
		{in: "1,two", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseThreadLevels(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "1,2,4", FormatThreadLevels([]int{1, 2, 4}))
}

func TestCalculatedOnWindow(t *testing.T) {
	start := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 5, 4, 20, 21, 12, 37_000_000, time.UTC)

	s := FormatCalculatedOnWindow(start, end)
	assert.Equal(t, "2020-05-01T00:00:00.000,2020-05-04T20:21:12.037", s)

	gotStart, gotEnd, ok := ParseCalculatedOnWindow(s)
	require.True(t, ok)
	assert.True(t, gotStart.Equal(start))
	assert.True(t, gotEnd.Equal(end))

	_, _, ok = ParseCalculatedOnWindow("garbage")
	assert.False(t, ok)
}

func TestParseCalculatedOn(t *testing.T) {
	got, ok := ParseCalculatedOn("2020-05-04T20:21:12.037000")
	require.True(t, ok)
	assert.Equal(t, time.Date(2020, 5, 4, 20, 21, 12, 37_000_000, time.UTC), got)

	got, ok = ParseCalculatedOn("2020-05-04T20:21:12Z")
	require.True(t, ok)
	assert.Equal(t, 20, got.Hour())

	_, ok = ParseCalculatedOn("")
	assert.False(t, ok)
}

func TestHazardWindows(t *testing.T) {
	got, err := HazardWindows([]string{"major regression", HazardNoChange, "Major Improvement"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-100,-50", "0,0", "50,1000000"}, got)

	_, err = HazardWindows([]string{"catastrophe"})
	assert.Error(t, err)

	assert.Equal(t,
		[]string{HazardMajorRegression, "1,2"},
		HazardLevelsFor([]string{"-100,-50", "1,2"}),
	)
}

func TestHazardLevel(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{-75, HazardMajorRegression},
		{-50, HazardMajorRegression},
		{-30, HazardModerateRegression},
		{-0.5, HazardMinorRegression},
		{0, HazardNoChange},
		{5, HazardMinorImprovement},
		{20, HazardModerateImprovement},
		{50.32, HazardMajorImprovement},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HazardLevel(tt.percent), "%v", tt.percent)
	}
}

func TestParsePercentChange(t *testing.T) {
	got, err := ParsePercentChange("Major Regression; minor improvement ; -5, 5;")
	require.NoError(t, err)
	assert.Equal(t, []string{"-100,-50", "0,20", "-5,5"}, got)

	got, err = ParsePercentChange("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParsePercentChange("Huge Regression")
	assert.Error(t, err)
	_, err = ParsePercentChange("a,b")
	assert.Error(t, err)

	assert.Equal(t, "Major Regression; -5,5", FormatPercentChangeWindows([]string{"-100,-50", "-5,5"}))
}
