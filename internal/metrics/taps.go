package metrics

import (
	"sort"

	"sapflow/internal/classify"
	"sapflow/internal/config"
	"sapflow/pkg/contracts/domain"
)

// TapProgressByMainline compares current-season tap counts against
// per-mainline targets. Mainlines with activity but no target are
// "new tapping"; targets with no activity are "not started".
func TapProgressByMainline(entries []domain.TimesheetEntry, targets map[string]int) []domain.TapProgress {
	current := make(map[string]int)
	for _, e := range entries {
		if e.Mainline == "" {
			continue
		}
		if classify.Job(e.JobType) == domain.JobExcluded {
			continue
		}
		// Net taps in the ground this season
		current[e.Mainline] += e.TapsPutIn - e.TapsRemoved
	}

	lines := make(map[string]bool, len(current)+len(targets))
	for line := range current {
		lines[line] = true
	}
	for line := range targets {
		lines[line] = true
	}

	out := make([]domain.TapProgress, 0, len(lines))
	for line := range lines {
		p := domain.TapProgress{
			Mainline: line,
			Current:  current[line],
			Target:   targets[line],
		}
		if p.Target > 0 {
			p.Percent = float64(p.Current) / float64(p.Target) * 100
		}
		p.Tier = tapTier(p)
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Mainline < out[j].Mainline })
	return out
}

func tapTier(p domain.TapProgress) domain.TapTier {
	if p.Target <= 0 {
		return domain.TapNew
	}
	switch {
	case p.Current == 0:
		return domain.TapNotStarted
	case p.Percent < config.TapBehindBelow:
		return domain.TapBehind
	case p.Percent > config.TapAheadAbove:
		return domain.TapAhead
	case p.Percent >= config.TapOnTargetLow && p.Percent <= config.TapOnTargetHigh:
		return domain.TapOnTarget
	default:
		return domain.TapOnTrack
	}
}
