package metrics

import (
	"sort"
	"time"

	"sapflow/internal/classify"
	"sapflow/pkg/contracts/domain"
)

// RepairCosts attributes repair labor to tickets. Each ticket collects
// the repair-classified timesheet entries on its mainline between Date
// Found and Date Resolved; open tickets run through now. Labor cost is
// the sum of hours times each row's pay rate, with the configured
// hourly rate filling in for rows that carry none. Cost per tap
// divides by the mainline's net tap count when one is known.
func RepairCosts(tickets []domain.RepairTicket, entries []domain.TimesheetEntry, hourlyRate float64, now time.Time) []domain.RepairCost {
	tapCounts := make(map[string]int)
	for _, e := range entries {
		if e.Mainline != "" {
			tapCounts[e.Mainline] += e.TapsPutIn - e.TapsRemoved
		}
	}

	out := make([]domain.RepairCost, 0, len(tickets))
	for _, ticket := range tickets {
		cost := domain.RepairCost{Ticket: ticket, TapCount: tapCounts[ticket.Mainline]}
		// Timesheet dates are day-granular, so the window compares at
		// day boundaries: work logged on the discovery day counts.
		from, to := ticket.Window(now)
		from = startOfDay(from)

		for _, e := range entries {
			if e.Mainline != ticket.Mainline {
				continue
			}
			if classify.Job(e.JobType) != domain.JobRepair {
				continue
			}
			if e.Date.Before(from) || e.Date.After(to) {
				continue
			}
			rate := e.Rate
			if rate <= 0 {
				rate = hourlyRate
			}
			cost.Hours += e.Hours
			cost.LaborCost += e.Hours * rate
			cost.Entries++
		}

		if cost.TapCount > 0 {
			cost.CostPerTap = cost.LaborCost / float64(cost.TapCount)
		}
		out = append(out, cost)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].LaborCost > out[j].LaborCost })
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
