package changepoints

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
)

const (
	DefaultTriageStatusRegex = "not_triaged"
	DefaultMeasurementRegex  = "Latency50thPercentile|Latency95thPercentile"
	DefaultTaskRegex         = "mixed_writes_replica|large_scale_model|big_update|service_architecture_workloads|out_of_cache_scanner"
	DefaultTestRegex         = "^(?!.*(ActorFinished|ActorStarted|Setup|Cleanup))"

	DefaultPageSize = 10

	// CalculatedOnLayout is the timestamp layout used in the calculated_on window.
	CalculatedOnLayout = "2006-01-02T15:04:05.000"
)

// FilterState holds the server-side filters. The regexes are evaluated by the
// analysis service, not locally, so they are never compiled here.
// Empty fields are left out of the request entirely.
type FilterState struct {
	VariantRegex         string   `url:"variant_regex,omitempty" json:"variant_regex,omitempty"`
	VersionRegex         string   `url:"version_regex,omitempty" json:"version_regex,omitempty"`
	TaskRegex            string   `url:"task_regex,omitempty" json:"task_regex,omitempty"`
	TestRegex            string   `url:"test_regex,omitempty" json:"test_regex,omitempty"`
	MeasurementRegex     string   `url:"measurement_regex,omitempty" json:"measurement_regex,omitempty"`
	TriageStatusRegex    string   `url:"triage_status_regex,omitempty" json:"triage_status_regex,omitempty"`
	ThreadLevels         []int    `url:"thread_levels,omitempty" json:"thread_levels,omitempty"`
	PercentChangeWindows []string `url:"percent_change,omitempty" json:"percent_change,omitempty"`
	CalculatedOnWindow   string   `url:"calculated_on,omitempty" json:"calculated_on,omitempty"`
}

// DefaultFilters is what a fresh grid starts with.
func DefaultFilters() FilterState {
	return FilterState{
		TaskRegex:         DefaultTaskRegex,
		TestRegex:         DefaultTestRegex,
		MeasurementRegex:  DefaultMeasurementRegex,
		TriageStatusRegex: DefaultTriageStatusRegex,
	}
}

type pageQuery struct {
	Page     int `url:"page"`
	PageSize int `url:"page_size"`
	FilterState
}

// Values encodes the filters plus pagination as list endpoint parameters.
// Slices become repeated parameters.
func (f FilterState) Values(page, pageSize int) (url.Values, error) {
	v, err := query.Values(pageQuery{Page: page, PageSize: pageSize, FilterState: f})
	if err != nil {
		return nil, fmt.Errorf("can't encode filters: %w", err)
	}
	return v, nil
}

// Clone returns a copy that shares no slices with f.
func (f FilterState) Clone() FilterState {
	out := f
	out.ThreadLevels = append([]int(nil), f.ThreadLevels...)
	out.PercentChangeWindows = append([]string(nil), f.PercentChangeWindows...)
	return out
}

// Summary is a short human label of the active filters, for status bars.
func (f FilterState) Summary() string {
	var parts []string
	add := func(name, val string) {
		if val != "" {
			parts = append(parts, name+"="+val)
		}
	}
	add("variant", f.VariantRegex)
	add("version", f.VersionRegex)
	add("task", f.TaskRegex)
	add("test", f.TestRegex)
	add("measurement", f.MeasurementRegex)
	add("triage", f.TriageStatusRegex)
	if len(f.ThreadLevels) > 0 {
		add("threads", FormatThreadLevels(f.ThreadLevels))
	}
	if len(f.PercentChangeWindows) > 0 {
		add("change", strings.Join(f.PercentChangeWindows, ";"))
	}
	add("calculated", f.CalculatedOnWindow)
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, " ")
}

// FormatThreadLevels renders levels as "1,2,4".
func FormatThreadLevels(levels []int) string {
	s := make([]string, len(levels))
	for i, l := range levels {
		s[i] = strconv.Itoa(l)
	}
	return strings.Join(s, ",")
}

// ParseThreadLevels parses "1, 2,4". An empty string yields nil.
func ParseThreadLevels(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid thread level %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// FormatCalculatedOnWindow renders a calculated_on range as "start,end".
func FormatCalculatedOnWindow(start, end time.Time) string {
	return start.Format(CalculatedOnLayout) + "," + end.Format(CalculatedOnLayout)
}

// ParseCalculatedOnWindow is the inverse of FormatCalculatedOnWindow.
func ParseCalculatedOnWindow(s string) (time.Time, time.Time, bool) {
	startStr, endStr, ok := strings.Cut(s, ",")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse(CalculatedOnLayout, strings.TrimSpace(startStr))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(CalculatedOnLayout, strings.TrimSpace(endStr))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// ParseCalculatedOn parses a change point's calculated_on value. The service
// writes Python isoformat timestamps with microseconds and no zone.
func ParseCalculatedOn(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999", time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
