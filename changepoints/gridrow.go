package changepoints

import (
	"strconv"
	"strings"
	"time"

	"github.com/andareed/siftly-changepoints/perfapi"
)

// idTimeLayout is the yy_mm_dd_HH_MM_SS suffix Evergreen puts on build and task ids.
const idTimeLayout = "06_01_02_15_04_05"

// GridRow is one display-ready change point.
type GridRow struct {
	ID            string `json:"id"`
	Version       string `json:"version"`
	Variant       string `json:"variant"`
	Task          string `json:"task"`
	Test          string `json:"test"`
	Measurement   string `json:"measurement"`
	PercentChange string `json:"percent_change"`
	TriageStatus  string `json:"triage_status"`
	ThreadLevel   int    `json:"thread_level"`
	CalculatedOn  string `json:"calculated_on"`
	Revision      string `json:"revision"`
	BuildID       string `json:"build_id"`
	TaskID        string `json:"task_id"`
	RevisionTime  string `json:"revision_time"`
}

// NewGridRow merges a change point with its version. project is the project id
// the page was queried with, which is what Evergreen bakes into build ids.
func NewGridRow(project string, cp perfapi.ChangePoint, v perfapi.VersionDetail) (GridRow, error) {
	created, err := v.CreatedAt()
	if err != nil {
		return GridRow{}, err
	}
	ts := cp.TimeSeriesInfo
	return GridRow{
		ID:            cp.ID,
		Version:       cp.Version,
		Variant:       ts.Variant,
		Task:          ts.Task,
		Test:          ts.Test,
		Measurement:   ts.Measurement,
		PercentChange: FormatPercentChange(cp.PercentChange),
		TriageStatus:  cp.Triage.Status,
		ThreadLevel:   ts.ThreadLevel,
		CalculatedOn:  cp.CalculatedOn,
		Revision:      v.Revision,
		BuildID:       BuildID(project, ts.Variant, v.Revision, created),
		TaskID:        TaskID(project, ts.Variant, ts.Task, v.Revision, created),
		RevisionTime:  v.CreateTime,
	}, nil
}

// FormatPercentChange renders the value with two decimals.
func FormatPercentChange(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// BuildID derives the Evergreen build id:
// {project}_{variant}_{revision}_{yy}_{mm}_{dd}_{HH}_{MM}_{SS}.
func BuildID(project, variant, revision string, created time.Time) string {
	return strings.Join([]string{
		cleanName(project),
		cleanName(variant),
		revision,
		created.UTC().Format(idTimeLayout),
	}, "_")
}

// TaskID is BuildID with the task name between variant and revision.
func TaskID(project, variant, task, revision string, created time.Time) string {
	return strings.Join([]string{
		cleanName(project),
		cleanName(variant),
		task,
		revision,
		created.UTC().Format(idTimeLayout),
	}, "_")
}

// cleanName lowercases s and replaces anything outside [a-z0-9] with '_'.
func cleanName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Field returns the display value for a grid column field name.
func (r GridRow) Field(field string) string {
	switch field {
	case FieldID:
		return r.ID
	case FieldVersion:
		return r.Version
	case FieldVariant:
		return r.Variant
	case FieldTask:
		return r.Task
	case FieldTest:
		return r.Test
	case FieldMeasurement:
		return r.Measurement
	case FieldPercentChange:
		return r.PercentChange
	case FieldTriageStatus:
		return r.TriageStatus
	case FieldThreadLevel:
		return strconv.Itoa(r.ThreadLevel)
	case FieldCalculatedOn:
		return r.CalculatedOn
	case FieldRevision:
		return r.Revision
	case FieldBuildID:
		return r.BuildID
	case FieldTaskID:
		return r.TaskID
	case FieldRevisionTime:
		return r.RevisionTime
	default:
		return ""
	}
}

// PercentChangeValue parses PercentChange back into a number for sorting and colouring.
func (r GridRow) PercentChangeValue() float64 {
	v, err := strconv.ParseFloat(r.PercentChange, 64)
	if err != nil {
		return 0
	}
	return v
}

// Link resolves a link cell against the Evergreen UI base url.
// It returns "" for fields that are not links.
func (r GridRow) Link(field, uiBaseURL string) string {
	base := strings.TrimSuffix(uiBaseURL, "/")
	switch field {
	case FieldVariant:
		return base + "/build/" + r.BuildID
	case FieldTask:
		return base + "/task/" + r.TaskID
	case FieldTest:
		return base + "/task/" + r.TaskID + "##" + r.Test
	default:
		return ""
	}
}
