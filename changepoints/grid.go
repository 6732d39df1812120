package changepoints

// Grid row field names.
const (
	FieldID            = "id"
	FieldVersion       = "version"
	FieldVariant       = "variant"
	FieldTask          = "task"
	FieldTest          = "test"
	FieldMeasurement   = "measurement"
	FieldPercentChange = "percent_change"
	FieldTriageStatus  = "triage_status"
	FieldThreadLevel   = "thread_level"
	FieldCalculatedOn  = "calculated_on"
	FieldRevision      = "revision"
	FieldBuildID       = "build_id"
	FieldTaskID        = "task_id"
	FieldRevisionTime  = "revision_time"
)

type CellTemplate string

const (
	CellDefault       CellTemplate = ""
	CellPercentChange CellTemplate = "percent-change"
	CellLink          CellTemplate = "link"
	CellGroupName     CellTemplate = "group-name"
)

type FilterHeader string

const (
	FilterHeaderText        FilterHeader = ""
	FilterHeaderMultiSelect FilterHeader = "multi-select"
	FilterHeaderDateRange   FilterHeader = "date-range"
)

// HazardColWidth is the fixed width of the percent change column.
const HazardColWidth = 30

// ColumnFilter is the filter attached to a column. An empty Term means no term.
type ColumnFilter struct {
	Term         string
	HazardValues []string
}

type Grouping struct {
	GroupPriority int
}

// ColumnDef describes one grid column. Nil flags fall back to the grid-wide setting.
type ColumnDef struct {
	Name            string
	Field           string
	Type            string
	CellTemplate    CellTemplate
	FilterHeader    FilterHeader
	Width           int
	EnableFiltering *bool
	EnableSorting   *bool
	Filter          *ColumnFilter
	Grouping        *Grouping
}

func (c ColumnDef) Sortable() bool {
	return c.EnableSorting == nil || *c.EnableSorting
}

func (c ColumnDef) Filterable() bool {
	return c.EnableFiltering == nil || *c.EnableFiltering
}

type GridOptions struct {
	EnableFiltering         bool
	EnableRowSelection      bool
	UseExternalSorting      bool
	EnableSelectAll         bool
	EnableSorting           bool
	SelectionRowHeaderWidth int
	UseExternalFiltering    bool
	ColumnDefs              []ColumnDef
}

// Column looks a column up by field.
func (g GridOptions) Column(field string) (ColumnDef, bool) {
	for _, c := range g.ColumnDefs {
		if c.Field == field {
			return c, true
		}
	}
	return ColumnDef{}, false
}

func boolPtr(b bool) *bool { return &b }

// DefaultGridOptions builds the static grid layout.
func DefaultGridOptions(hazardValues []string) GridOptions {
	return GridOptions{
		EnableFiltering:         true,
		EnableRowSelection:      true,
		UseExternalSorting:      true,
		EnableSelectAll:         true,
		EnableSorting:           true,
		SelectionRowHeaderWidth: 35,
		UseExternalFiltering:    true,
		ColumnDefs: []ColumnDef{
			{
				Name:         "Percent Change",
				Field:        FieldPercentChange,
				CellTemplate: CellPercentChange,
				FilterHeader: FilterHeaderMultiSelect,
				Width:        HazardColWidth,
				Filter: &ColumnFilter{
					HazardValues: append([]string(nil), hazardValues...),
				},
			},
			{
				Name:            "Revision",
				Field:           FieldRevision,
				Type:            "string",
				EnableFiltering: boolPtr(false),
			},
			{
				Name:            "Date",
				Field:           FieldRevisionTime,
				Type:            "string",
				EnableFiltering: boolPtr(false),
			},
			{
				Name:          "Variant",
				Field:         FieldVariant,
				Type:          "string",
				CellTemplate:  CellLink,
				EnableSorting: boolPtr(false),
			},
			{
				Name:          "Task",
				Field:         FieldTask,
				Type:          "string",
				EnableSorting: boolPtr(false),
				CellTemplate:  CellLink,
				Filter:        &ColumnFilter{Term: DefaultTaskRegex},
			},
			{
				Name:          "Test",
				Field:         FieldTest,
				Type:          "string",
				EnableSorting: boolPtr(false),
				CellTemplate:  CellLink,
				Filter:        &ColumnFilter{Term: DefaultTestRegex},
			},
			{
				Name:         "Version",
				Field:        FieldVersion,
				Type:         "string",
				CellTemplate: CellGroupName,
				Grouping:     &Grouping{GroupPriority: 0},
			},
			{
				Name:          "Thread Level",
				Field:         FieldThreadLevel,
				Type:          "number",
				EnableSorting: boolPtr(false),
			},
			{
				Name:          "Measurement",
				Field:         FieldMeasurement,
				Type:          "string",
				Filter:        &ColumnFilter{Term: DefaultMeasurementRegex},
				EnableSorting: boolPtr(false),
			},
			{
				Name:          "Triage Status",
				Field:         FieldTriageStatus,
				Type:          "string",
				Filter:        &ColumnFilter{Term: DefaultTriageStatusRegex},
				EnableSorting: boolPtr(false),
			},
			{
				Name:          "Calculated On",
				Field:         FieldCalculatedOn,
				FilterHeader:  FilterHeaderDateRange,
				Filter:        &ColumnFilter{},
				EnableSorting: boolPtr(false),
			},
		},
	}
}
