package dataload

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sapflow/internal/config"
	"sapflow/internal/shared/testutil"
)

func TestNormalizeVacuum(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)

	rows := [][]string{
		{"Sensor Name", "Vacuum Reading", "Timestamp", "Latitude", "Longitude", "Mainline.", "Notes", "Repairs Needed"},
		{"RHAS13", "21.5", "2024-03-15 06:30:00", "43.4270", "-73.7120", "RHAS13", "", ""},
		{"MPC5", "bad-cell", "2024-03-15 06:30:00", "43.4281", "-73.7139", "MPC5", "leak near top", "patch lateral line"},
		{"", "19.0", "", "", "", "", "", ""}, // no sensor name, dropped
	}

	table := NormalizeVacuum(rows, logger)
	require.Len(t, table.Readings, 2)

	assert.Equal(t, "RHAS13", table.Readings[0].SensorName)
	assert.Equal(t, 21.5, table.Readings[0].Vacuum)
	assert.Equal(t, "RHAS", table.Readings[0].Conductor)

	// Unparseable vacuum coerces to the fill value
	assert.Equal(t, config.FillMissingValue, table.Readings[1].Vacuum)
	assert.Equal(t, "MPC", table.Readings[1].Conductor)
	assert.Equal(t, "patch lateral line", table.Readings[1].RepairsNeeded)

	// Site column was absent: recorded as missing with a warning
	assert.Contains(t, table.MissingFields, config.FieldSite)
	assert.True(t, handler.ContainsMessage("column not found, dependent metrics will be skipped"))
}

func TestNormalizeVacuumEmpty(t *testing.T) {
	table := NormalizeVacuum(nil, slog.Default())
	assert.Empty(t, table.Readings)
}

func TestNormalizeTimesheet(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	rows := [][]string{
		{"Employee", "Date", "Job Type", "Hours", "Pay Rate", "Mainline", "Taps Put In", "Taps Removed"},
		{"Ada", "2024-03-11", "Maple Tapping", "8.5", "22.50", "GCE4", "120", "0"},
		{"Ben", "2024-03-11", "Mainline repair", "6", "", "RHAS13", "0", "15"},
		{"", "2024-03-11", "", "4", "", "", "", ""}, // no employee, dropped
	}

	table := NormalizeTimesheet(rows, "2024-03", logger)
	require.Len(t, table.Entries, 2)

	ada := table.Entries[0]
	assert.Equal(t, "Ada", ada.Employee)
	assert.Equal(t, 8.5, ada.Hours)
	assert.Equal(t, 22.5, ada.Rate)
	assert.Equal(t, 120, ada.TapsPutIn)
	assert.Zero(t, table.Entries[1].Rate, "blank rate cell stays zero")
	assert.Equal(t, "GC", ada.Conductor)
	assert.Equal(t, "2024-03", ada.SourceTab)

	assert.Equal(t, "RHAS", table.Entries[1].Conductor)
	assert.Contains(t, table.MissingFields, config.FieldTapsCapped)
}

func TestTimesheetMergeUnionsMissing(t *testing.T) {
	a := TimesheetTable{MissingFields: []string{config.FieldTapsCapped}}
	b := TimesheetTable{MissingFields: []string{config.FieldTapsCapped, config.FieldSite}}

	a.Merge(b)
	assert.ElementsMatch(t, []string{config.FieldTapsCapped, config.FieldSite}, a.MissingFields)
}
