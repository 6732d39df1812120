package perfapi

import (
	"fmt"
	"time"
)

// TimeSeriesInfo locates the metric a change point was detected on.
type TimeSeriesInfo struct {
	Project     string `json:"project"`
	Variant     string `json:"variant"`
	Task        string `json:"task"`
	Test        string `json:"test"`
	Measurement string `json:"measurement"`
	ThreadLevel int    `json:"thread_level"`
}

type AlgorithmOption struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Algorithm describes the detection algorithm, e.g. e_divisive_means.
type Algorithm struct {
	Name    string            `json:"name"`
	Version int               `json:"version"`
	Options []AlgorithmOption `json:"options"`
}

type Triage struct {
	TriagedOn string `json:"triaged_on"`
	Status    string `json:"triage_status"`
}

// ChangePoint is a single detected regression or improvement.
// CalculatedOn is kept verbatim; the service emits it without a zone.
type ChangePoint struct {
	ID                string         `json:"_id"`
	TimeSeriesInfo    TimeSeriesInfo `json:"time_series_info"`
	CedarPerfResultID string         `json:"cedar_perf_result_id"`
	Version           string         `json:"version"`
	Order             int            `json:"order"`
	Algorithm         Algorithm      `json:"algorithm"`
	Triage            Triage         `json:"triage"`
	PercentChange     float64        `json:"percent_change"`
	CalculatedOn      string         `json:"calculated_on"`
}

// VersionChangePoints groups the change points found in one version.
type VersionChangePoints struct {
	VersionID    string        `json:"version_id"`
	ChangePoints []ChangePoint `json:"change_points"`
}

// VersionPage is one page of the change_points_by_version listing.
type VersionPage struct {
	Versions   []VersionChangePoints `json:"versions"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// VersionDetail is the Evergreen version document, trimmed to what the grid needs.
type VersionDetail struct {
	VersionID  string `json:"version_id"`
	CreateTime string `json:"create_time"`
	StartTime  string `json:"start_time"`
	Revision   string `json:"revision"`
	Project    string `json:"project"`
	Branch     string `json:"branch"`
}

// CreatedAt parses CreateTime as RFC 3339.
func (v VersionDetail) CreatedAt() (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v.CreateTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("version %s: invalid create_time %q: %w", v.VersionID, v.CreateTime, err)
	}
	return t, nil
}
