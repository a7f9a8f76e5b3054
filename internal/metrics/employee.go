package metrics

import (
	"sort"
	"time"

	"sapflow/internal/classify"
	"sapflow/internal/config"
	"sapflow/pkg/contracts/domain"
)

// EmployeeSummaries aggregates hours and tap counts per employee.
// Excluded job rows (storm cleanup, infrastructure) contribute neither
// hours nor taps; uncategorized rows count toward total hours only.
func EmployeeSummaries(entries []domain.TimesheetEntry, overtimeWeekly float64) []domain.EmployeeSummary {
	byEmployee := make(map[string]*domain.EmployeeSummary)

	for _, e := range entries {
		class := classify.Job(e.JobType)
		if class == domain.JobExcluded {
			continue
		}

		s, ok := byEmployee[e.Employee]
		if !ok {
			s = &domain.EmployeeSummary{Employee: e.Employee}
			byEmployee[e.Employee] = s
		}

		s.TotalHours += e.Hours
		s.Entries++
		s.TapsPutIn += e.TapsPutIn
		s.TapsRemoved += e.TapsRemoved
		s.TapsCapped += e.TapsCapped

		switch class {
		case domain.JobTapping:
			s.TappingHours += e.Hours
		case domain.JobRepair:
			s.RepairHours += e.Hours
		}
	}

	for _, week := range OvertimeWeeks(entries, overtimeWeekly) {
		if s, ok := byEmployee[week.Employee]; ok {
			s.OvertimeHours += week.Overtime
		}
	}

	out := make([]domain.EmployeeSummary, 0, len(byEmployee))
	for _, s := range byEmployee {
		if s.TappingHours > 0 {
			s.TapsPerHour = float64(s.TapsPutIn) / s.TappingHours
		}
		out = append(out, *s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].TotalHours > out[j].TotalHours })
	return out
}

// OvertimeWeeks finds employee-weeks strictly above the weekly
// threshold. Weeks start on Monday; a week at exactly the threshold is
// not overtime.
func OvertimeWeeks(entries []domain.TimesheetEntry, threshold float64) []domain.OvertimeWeek {
	if threshold <= 0 {
		threshold = config.OvertimeWeeklyHours
	}

	type weekKey struct {
		employee string
		start    time.Time
	}
	weekly := make(map[weekKey]float64)

	for _, e := range entries {
		if e.Date.IsZero() {
			continue
		}
		if classify.Job(e.JobType) == domain.JobExcluded {
			continue
		}
		key := weekKey{employee: e.Employee, start: WeekStart(e.Date)}
		weekly[key] += e.Hours
	}

	var out []domain.OvertimeWeek
	for key, hours := range weekly {
		if hours > threshold {
			out = append(out, domain.OvertimeWeek{
				Employee:  key.employee,
				WeekStart: key.start,
				Hours:     hours,
				Overtime:  hours - threshold,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].WeekStart.Equal(out[j].WeekStart) {
			return out[i].WeekStart.Before(out[j].WeekStart)
		}
		return out[i].Employee < out[j].Employee
	})
	return out
}

// WeekStart truncates a date to the Monday that starts its week
func WeekStart(t time.Time) time.Time {
	day := t
	// time.Weekday has Sunday as 0; shift so Monday is the origin
	offset := (int(day.Weekday()) + 6) % 7
	day = day.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}

// TopPerformers ranks employees by taps per hour, requiring a minimum
// of tapping hours so a single lucky hour cannot top the board.
func TopPerformers(summaries []domain.EmployeeSummary, limit int) []domain.EmployeeSummary {
	var eligible []domain.EmployeeSummary
	for _, s := range summaries {
		if s.TappingHours >= config.MinHoursForRanking {
			eligible = append(eligible, s)
		}
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].TapsPerHour != eligible[j].TapsPerHour {
			return eligible[i].TapsPerHour > eligible[j].TapsPerHour
		}
		return eligible[i].Employee < eligible[j].Employee
	})

	if limit > 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}
	return eligible
}
