package repairs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sapflow/pkg/contracts/domain"
)

func TestParseNote(t *testing.T) {
	tests := []struct {
		name      string
		note      string
		issue     domain.IssueType
		location  domain.NoteLocation
		completed bool
	}{
		{
			name: "tree damage with location",
			note: "Tree down on line near the top", issue: domain.IssueTreeDamage,
			location: domain.LocationTop,
		},
		{
			name: "spinseal middle",
			note: "spinseal leaking at middle section", issue: domain.IssueSpinseal,
			location: domain.LocationMiddle,
		},
		{
			name: "stainless swap",
			note: "needs stainless at bottom", issue: domain.IssueNeedsStainless,
			location: domain.LocationBottom,
		},
		{
			name: "antenna problem",
			note: "monitor antenna loose", issue: domain.IssueMonitorAntenna,
			location: domain.LocationUnknown,
		},
		{
			name: "squirrel chew",
			note: "squirrel chewed dropline", issue: domain.IssueBrokenEquipment,
			location: domain.LocationUnknown,
		},
		{
			name: "completed repair",
			note: "leak at top FIXED", issue: domain.IssueGeneral,
			location: domain.LocationTop, completed: true,
		},
		{
			name: "unmatched note",
			note: "check this one", issue: domain.IssueGeneral,
			location: domain.LocationUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseNote(tt.note)
			assert.Equal(t, tt.issue, parsed.Issue)
			assert.Equal(t, tt.location, parsed.Location)
			assert.Equal(t, tt.completed, parsed.Completed)
			assert.Equal(t, tt.note, parsed.Raw)
		})
	}
}

func TestTicketsFromReadings(t *testing.T) {
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	readings := []domain.VacuumReading{
		{SensorName: "RHAS13", Mainline: "RHAS13", Site: "NY", Notes: "vacuum leak near top", Timestamp: base},
		{SensorName: "RHAS14", Mainline: "RHAS13", Notes: "still leaking", Timestamp: base.Add(24 * time.Hour)},
		{SensorName: "MPC5", Mainline: "MPC5", Notes: "broken spout", Timestamp: base},
		{SensorName: "MPC5", Mainline: "MPC5", Notes: "spout replaced, fixed", Timestamp: base.Add(48 * time.Hour)},
		{SensorName: "GC2", Mainline: "GC2", Notes: "looking great", Timestamp: base},
		{SensorName: "BV1", Mainline: "BV1", Notes: "", Timestamp: base},
	}

	tickets := TicketsFromReadings(readings)
	require.Len(t, tickets, 2)

	rhas := tickets[1]
	assert.Equal(t, "RHAS13", rhas.Mainline)
	assert.Equal(t, "NY", rhas.Site)
	assert.Equal(t, base, rhas.DateFound)
	assert.True(t, rhas.Open())
	assert.Contains(t, rhas.Description, "vacuum leak near top")
	assert.Contains(t, rhas.Description, "still leaking")

	mpc := tickets[0]
	assert.Equal(t, "MPC5", mpc.Mainline)
	assert.False(t, mpc.Open())
	require.NotNil(t, mpc.DateResolved)
	assert.Equal(t, base.Add(48*time.Hour), *mpc.DateResolved)
}

func TestTicketsFromReadingsStableIDs(t *testing.T) {
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	readings := []domain.VacuumReading{
		{SensorName: "RHAS13", Mainline: "RHAS13", Notes: "leak", Timestamp: base},
	}

	first := TicketsFromReadings(readings)
	second := TicketsFromReadings(readings)
	require.Len(t, first, 1)
	assert.Equal(t, first[0].ID, second[0].ID, "same ticket keeps its id across reloads")
	assert.NotEmpty(t, first[0].ID)
}

func TestTicketReopensOnNewComplaint(t *testing.T) {
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	readings := []domain.VacuumReading{
		{SensorName: "GC2", Mainline: "GC2", Notes: "leak at bottom", Timestamp: base},
		{SensorName: "GC2", Mainline: "GC2", Notes: "fixed", Timestamp: base.Add(24 * time.Hour)},
		{SensorName: "GC2", Mainline: "GC2", Notes: "leaking again", Timestamp: base.Add(72 * time.Hour)},
	}

	tickets := TicketsFromReadings(readings)
	require.Len(t, tickets, 1)
	assert.True(t, tickets[0].Open(), "fresh complaint after resolution reopens")
}
