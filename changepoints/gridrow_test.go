package changepoints

import (
	"testing"
	"time"

	"github.com/andareed/siftly-changepoints/perfapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testProject   = "some-project"
	testVersionID = "sys_perf_085ffeb310e8fed49739cf8443fcb13ea795d867"
	testRevision  = "d00b75bfcac3ac74036ac6c2ceec4e8b42ac93a0"
)

func testChangePoint() perfapi.ChangePoint {
	return perfapi.ChangePoint{
		ID: "test-id",
		TimeSeriesInfo: perfapi.TimeSeriesInfo{
			Project:     "sys-perf",
			Variant:     "linux-standalone",
			Task:        "large_scale_model",
			Test:        "HotCollectionDeleter.Delete.2.2",
			Measurement: "AverageSize",
			ThreadLevel: 0,
		},
		CedarPerfResultID: "7a8a54244e0bf868bf1d1edd2f388614aecb16bd",
		Version:           testVersionID,
		Order:             22151,
		Algorithm: perfapi.Algorithm{
			Name: "e_divisive_means",
			Options: []perfapi.AlgorithmOption{
				{Name: "pvalue", Value: 0.05},
				{Name: "permutations", Value: 100},
			},
		},
		Triage:        perfapi.Triage{TriagedOn: "0001-01-01T00:00:00Z", Status: "untriaged"},
		PercentChange: 50.3248234827374,
		CalculatedOn:  "2020-05-04T20:21:12.037000",
	}
}

func testVersion() perfapi.VersionDetail {
	return perfapi.VersionDetail{
		VersionID:  testVersionID,
		CreateTime: "2020-05-30T03:21:52Z",
		StartTime:  "2020-06-01T12:07:33.302Z",
		Revision:   testRevision,
		Project:    "sys-perf",
		Branch:     "master",
	}
}

func testGridRow() GridRow {
	return GridRow{
		ID:            "test-id",
		Version:       testVersionID,
		Variant:       "linux-standalone",
		Task:          "large_scale_model",
		Test:          "HotCollectionDeleter.Delete.2.2",
		Measurement:   "AverageSize",
		PercentChange: "50.32",
		TriageStatus:  "untriaged",
		ThreadLevel:   0,
		CalculatedOn:  "2020-05-04T20:21:12.037000",
		Revision:      testRevision,
		BuildID:       "some_project_linux_standalone_" + testRevision + "_20_05_30_03_21_52",
		TaskID:        "some_project_linux_standalone_large_scale_model_" + testRevision + "_20_05_30_03_21_52",
		RevisionTime:  "2020-05-30T03:21:52Z",
	}
}

func TestNewGridRow(t *testing.T) {
	row, err := NewGridRow(testProject, testChangePoint(), testVersion())
	require.NoError(t, err)
	assert.Equal(t, testGridRow(), row)
}

func TestNewGridRow_BadCreateTime(t *testing.T) {
	v := testVersion()
	v.CreateTime = "yesterday"
	_, err := NewGridRow(testProject, testChangePoint(), v)
	assert.Error(t, err)
}

func TestBuildID_UsesUTC(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	created := time.Date(2020, 5, 29, 22, 21, 52, 0, loc)

	assert.Equal(t,
		"sys_perf_linux_1_node_replset_abc_20_05_30_03_21_52",
		BuildID("sys-perf", "linux-1-node-replSet", "abc", created),
	)
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "some_project", cleanName("some-project"))
	assert.Equal(t, "linux_1_node_replset", cleanName("Linux 1-Node.ReplSet"))
	assert.Equal(t, "", cleanName(""))
}

func TestFormatPercentChange(t *testing.T) {
	assert.Equal(t, "50.32", FormatPercentChange(50.3248234827374))
	assert.Equal(t, "-12.35", FormatPercentChange(-12.345678))
	assert.Equal(t, "0.00", FormatPercentChange(0))
}

func TestGridRow_Field(t *testing.T) {
	row := testGridRow()
	row.ThreadLevel = 4

	assert.Equal(t, "50.32", row.Field(FieldPercentChange))
	assert.Equal(t, "4", row.Field(FieldThreadLevel))
	assert.Equal(t, testRevision, row.Field(FieldRevision))
	assert.Equal(t, "", row.Field("nope"))
	assert.InDelta(t, 50.32, row.PercentChangeValue(), 1e-9)
}

func TestGridRow_Link(t *testing.T) {
	row := testGridRow()
	base := "https://evergreen.mongodb.com/"

	assert.Equal(t, "https://evergreen.mongodb.com/build/"+row.BuildID, row.Link(FieldVariant, base))
	assert.Equal(t, "https://evergreen.mongodb.com/task/"+row.TaskID, row.Link(FieldTask, base))
	assert.Equal(t, "https://evergreen.mongodb.com/task/"+row.TaskID+"##HotCollectionDeleter.Delete.2.2", row.Link(FieldTest, base))
	assert.Equal(t, "", row.Link(FieldRevision, base))
}
