package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sapflow/pkg/contracts/domain"
)

func TestMainlineSummaries(t *testing.T) {
	entries := []domain.TimesheetEntry{
		{Employee: "Sam", JobType: "Tapping", Mainline: "RHAS13", Hours: 8, TapsPutIn: 120, Site: "NY"},
		{Employee: "Pat", JobType: "Repair", Mainline: "RHAS13", Hours: 3},
		{Employee: "Pat", JobType: "Storm cleanup", Mainline: "RHAS13", Hours: 5},
	}
	snaps := []domain.SensorSnapshot{
		{SensorName: "RHAS13", Mainline: "RHAS13", Vacuum: 18.0},
		{SensorName: "RHAS14", Mainline: "RHAS13", Vacuum: 22.0},
		{SensorName: "MPC5", Vacuum: 10.0}, // no mainline column, falls back to sensor name
	}

	summaries := MainlineSummaries(entries, snaps)
	require.Len(t, summaries, 2)

	mpc := summaries[0]
	assert.Equal(t, "MPC5", mpc.Mainline)
	assert.Equal(t, "MPC", mpc.Conductor)
	assert.Equal(t, domain.VacuumCritical, mpc.Status)

	rhas := summaries[1]
	assert.Equal(t, "RHAS13", rhas.Mainline)
	assert.Equal(t, "RHAS", rhas.Conductor)
	assert.Equal(t, 11.0, rhas.Hours, "storm work excluded")
	assert.Equal(t, 2, rhas.Sensors)
	assert.InDelta(t, 20.0, rhas.AvgVacuum, 0.001)
	assert.Equal(t, domain.VacuumExcellent, rhas.Status)
	assert.Equal(t, "NY", rhas.Site)
}

func TestConductorSummaries(t *testing.T) {
	mainlines := []domain.MainlineSummary{
		{Mainline: "RHAS13", Conductor: "RHAS", Hours: 11, TapsPutIn: 120, AvgVacuum: 20.0, Sensors: 2},
		{Mainline: "RHAS2", Conductor: "RHAS", Hours: 4, TapsPutIn: 30, AvgVacuum: 16.0, Sensors: 1},
		{Mainline: "MPC5", Conductor: "MPC", Hours: 2, Sensors: 0},
	}

	conductors := ConductorSummaries(mainlines)
	require.Len(t, conductors, 2)

	assert.Equal(t, "MPC", conductors[0].Conductor)
	assert.Zero(t, conductors[0].AvgVacuum, "no sensored lines, no average")

	rhas := conductors[1]
	assert.Equal(t, 15.0, rhas.Hours)
	assert.Equal(t, 150, rhas.TapsPutIn)
	assert.Equal(t, 2, rhas.Mainlines)
	assert.InDelta(t, 18.0, rhas.AvgVacuum, 0.001)
}
