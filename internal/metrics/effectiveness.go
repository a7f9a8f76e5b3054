package metrics

import (
	"sort"
	"time"

	"sapflow/internal/classify"
	"sapflow/internal/config"
	"sapflow/pkg/contracts/domain"
)

// RepairEffects measures the vacuum change around each repair entry.
//
// The preferred method matches sensor readings to the repair's working
// window: the closest reading within the clock tolerance before the
// repair date and the closest after it. When a sensor has no readings
// that tight, the fallback compares the daily average of the day
// before against the day after, walking outward up to the fallback
// limit when a day is empty. Readings at or below the offline level
// are filtered first.
func RepairEffects(entries []domain.TimesheetEntry, readings []domain.VacuumReading) []domain.RepairEffect {
	byLine := indexReadingsByLine(readings)

	var out []domain.RepairEffect
	for _, e := range entries {
		if classify.Job(e.JobType) != domain.JobRepair {
			continue
		}
		if e.Mainline == "" || e.Date.IsZero() {
			continue
		}

		series := byLine[e.Mainline]
		if len(series) == 0 {
			continue
		}

		effect := domain.RepairEffect{
			Employee: e.Employee,
			Mainline: e.Mainline,
			Date:     e.Date,
			Hours:    e.Hours,
		}

		if before, after, ok := clockMatch(series, e.Date, e.Hours); ok {
			effect.VacuumBefore = before
			effect.VacuumAfter = after
			effect.Method = "clock_match"
		} else if before, after, ok := dailyFallback(series, e.Date); ok {
			effect.VacuumBefore = before
			effect.VacuumAfter = after
			effect.Method = "daily_average"
		} else {
			continue
		}

		effect.Delta = effect.VacuumAfter - effect.VacuumBefore
		out = append(out, effect)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// EffectivenessRanking aggregates repair deltas per key (employee or
// mainline), requiring the minimum hours before a subject may rank.
type EffectivenessRank struct {
	Subject  string  `json:"subject"`
	Repairs  int     `json:"repairs"`
	Hours    float64 `json:"hours"`
	AvgDelta float64 `json:"avg_delta"`
}

// RankByEmployee ranks repair effectiveness per employee, best first
func RankByEmployee(effects []domain.RepairEffect) []EffectivenessRank {
	return rank(effects, func(e domain.RepairEffect) string { return e.Employee })
}

// RankByMainline ranks repair effectiveness per mainline, best first
func RankByMainline(effects []domain.RepairEffect) []EffectivenessRank {
	return rank(effects, func(e domain.RepairEffect) string { return e.Mainline })
}

func rank(effects []domain.RepairEffect, key func(domain.RepairEffect) string) []EffectivenessRank {
	agg := make(map[string]*EffectivenessRank)
	sums := make(map[string]float64)

	for _, e := range effects {
		k := key(e)
		r, ok := agg[k]
		if !ok {
			r = &EffectivenessRank{Subject: k}
			agg[k] = r
		}
		r.Repairs++
		r.Hours += e.Hours
		sums[k] += e.Delta
	}

	var out []EffectivenessRank
	for k, r := range agg {
		if r.Hours < config.MinHoursForRanking {
			continue
		}
		r.AvgDelta = sums[k] / float64(r.Repairs)
		out = append(out, *r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgDelta != out[j].AvgDelta {
			return out[i].AvgDelta > out[j].AvgDelta
		}
		return out[i].Subject < out[j].Subject
	})
	return out
}

func indexReadingsByLine(readings []domain.VacuumReading) map[string][]domain.VacuumReading {
	byLine := make(map[string][]domain.VacuumReading)
	for _, r := range readings {
		if r.Vacuum <= config.VacuumOfflineMax {
			continue
		}
		if r.Timestamp.IsZero() {
			continue
		}
		line := r.Mainline
		if line == "" {
			line = r.SensorName
		}
		byLine[line] = append(byLine[line], r)
	}
	for _, series := range byLine {
		sort.Slice(series, func(i, j int) bool { return series[i].Timestamp.Before(series[j].Timestamp) })
	}
	return byLine
}

// clockMatch finds readings bracketing the repair window. The repair
// is assumed to start at the entry date and run for its logged hours.
func clockMatch(series []domain.VacuumReading, start time.Time, hours float64) (before, after float64, ok bool) {
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	tol := config.ClockMatchTolerance

	var beforeReading, afterReading *domain.VacuumReading
	for i := range series {
		r := &series[i]
		if !r.Timestamp.After(start) && start.Sub(r.Timestamp) <= tol {
			beforeReading = r // latest qualifying reading wins
		}
		if afterReading == nil && !r.Timestamp.Before(end) && r.Timestamp.Sub(end) <= tol {
			afterReading = r
		}
	}

	if beforeReading == nil || afterReading == nil {
		return 0, 0, false
	}
	return beforeReading.Vacuum, afterReading.Vacuum, true
}

// dailyFallback compares daily average vacuum before and after the
// repair day, walking up to the fallback limit when a day is empty.
func dailyFallback(series []domain.VacuumReading, day time.Time) (before, after float64, ok bool) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	before, okBefore := nearestDailyAvg(series, day, -1)
	after, okAfter := nearestDailyAvg(series, day, +1)
	if !okBefore || !okAfter {
		return 0, 0, false
	}
	return before, after, true
}

func nearestDailyAvg(series []domain.VacuumReading, day time.Time, direction int) (float64, bool) {
	for step := 1; step <= config.DailyFallbackMaxDays; step++ {
		target := day.AddDate(0, 0, direction*step)
		if avg, ok := dailyAvg(series, target); ok {
			return avg, true
		}
	}
	return 0, false
}

func dailyAvg(series []domain.VacuumReading, day time.Time) (float64, bool) {
	next := day.AddDate(0, 0, 1)
	sum, n := 0.0, 0
	for _, r := range series {
		if !r.Timestamp.Before(day) && r.Timestamp.Before(next) {
			sum += r.Vacuum
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
