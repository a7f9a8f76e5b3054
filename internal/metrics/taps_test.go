package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sapflow/pkg/contracts/domain"
)

func TestTapProgressByMainline(t *testing.T) {
	entries := []domain.TimesheetEntry{
		{Employee: "Sam", JobType: "Tapping", Mainline: "RHAS13", TapsPutIn: 950},
		{Employee: "Pat", JobType: "Tapping", Mainline: "RHAS13", TapsPutIn: 60, TapsRemoved: 10},
		{Employee: "Sam", JobType: "Tapping", Mainline: "MPC5", TapsPutIn: 40},
		{Employee: "Pat", JobType: "Storm cleanup", Mainline: "GC2", TapsPutIn: 500},
	}
	targets := map[string]int{
		"RHAS13": 1000,
		"BV1":    300,
	}

	progress := TapProgressByMainline(entries, targets)
	byLine := make(map[string]domain.TapProgress, len(progress))
	for _, p := range progress {
		byLine[p.Mainline] = p
	}

	require.Len(t, progress, 3, "excluded storm rows contribute no mainline")

	rhas := byLine["RHAS13"]
	assert.Equal(t, 1000, rhas.Current, "removed taps net out")
	assert.InDelta(t, 100.0, rhas.Percent, 0.001)
	assert.Equal(t, domain.TapOnTarget, rhas.Tier)

	assert.Equal(t, domain.TapNew, byLine["MPC5"].Tier, "activity without a target")
	assert.Equal(t, domain.TapNotStarted, byLine["BV1"].Tier, "target without activity")
}

func TestTapTierBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		current int
		target  int
		want    domain.TapTier
	}{
		{name: "zero against target", current: 0, target: 100, want: domain.TapNotStarted},
		{name: "well behind", current: 94, target: 100, want: domain.TapBehind},
		{name: "behind band top", current: 95, target: 100, want: domain.TapOnTrack},
		{name: "on target low edge", current: 99, target: 100, want: domain.TapOnTarget},
		{name: "on target high edge", current: 101, target: 100, want: domain.TapOnTarget},
		{name: "between bands", current: 103, target: 100, want: domain.TapOnTrack},
		{name: "well ahead", current: 106, target: 100, want: domain.TapAhead},
		{name: "no target", current: 50, target: 0, want: domain.TapNew},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.TapProgress{Current: tt.current, Target: tt.target}
			if p.Target > 0 {
				p.Percent = float64(p.Current) / float64(p.Target) * 100
			}
			assert.Equal(t, tt.want, tapTier(p))
		})
	}
}
