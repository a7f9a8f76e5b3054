package metrics

import (
	"sort"

	"sapflow/internal/classify"
	"sapflow/pkg/contracts/domain"
)

// MainlineSummaries joins timesheet activity with vacuum health per
// mainline. Mainlines that only appear on one side still get a row.
func MainlineSummaries(entries []domain.TimesheetEntry, snapshots []domain.SensorSnapshot) []domain.MainlineSummary {
	byLine := make(map[string]*domain.MainlineSummary)

	get := func(mainline string) *domain.MainlineSummary {
		s, ok := byLine[mainline]
		if !ok {
			s = &domain.MainlineSummary{
				Mainline:  mainline,
				Conductor: classify.Conductor(mainline),
			}
			byLine[mainline] = s
		}
		return s
	}

	for _, e := range entries {
		if e.Mainline == "" {
			continue
		}
		if classify.Job(e.JobType) == domain.JobExcluded {
			continue
		}
		s := get(e.Mainline)
		s.Hours += e.Hours
		s.TapsPutIn += e.TapsPutIn
		s.TapsRemoved += e.TapsRemoved
		if s.Site == "" {
			s.Site = e.Site
		}
	}

	vacuumSums := make(map[string]float64)
	for _, snap := range snapshots {
		// Readings without a mainline column fall back to the sensor
		// name, which crews name after the line it sits on.
		line := snap.Mainline
		if line == "" {
			line = snap.SensorName
		}
		if line == "" {
			continue
		}
		s := get(line)
		s.Sensors++
		vacuumSums[line] += snap.Vacuum
		if s.Site == "" {
			s.Site = snap.Site
		}
	}

	out := make([]domain.MainlineSummary, 0, len(byLine))
	for line, s := range byLine {
		if s.Sensors > 0 {
			s.AvgVacuum = vacuumSums[line] / float64(s.Sensors)
			s.Status = StatusFor(s.AvgVacuum)
		}
		out = append(out, *s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Mainline < out[j].Mainline })
	return out
}

// ConductorSummaries rolls mainline summaries up to conductor systems
func ConductorSummaries(mainlines []domain.MainlineSummary) []domain.ConductorSummary {
	byConductor := make(map[string]*domain.ConductorSummary)
	vacuumSums := make(map[string]float64)
	vacuumLines := make(map[string]int)

	for _, m := range mainlines {
		c, ok := byConductor[m.Conductor]
		if !ok {
			c = &domain.ConductorSummary{Conductor: m.Conductor}
			byConductor[m.Conductor] = c
		}
		c.Hours += m.Hours
		c.TapsPutIn += m.TapsPutIn
		c.Mainlines++
		if m.Sensors > 0 {
			vacuumSums[m.Conductor] += m.AvgVacuum
			vacuumLines[m.Conductor]++
		}
	}

	out := make([]domain.ConductorSummary, 0, len(byConductor))
	for name, c := range byConductor {
		if n := vacuumLines[name]; n > 0 {
			c.AvgVacuum = vacuumSums[name] / float64(n)
		}
		out = append(out, *c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Conductor < out[j].Conductor })
	return out
}
