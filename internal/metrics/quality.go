package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"sapflow/internal/config"
	"sapflow/pkg/contracts/domain"
)

// QualityAlerts runs every data-quality detector over the dataset
func QualityAlerts(readings []domain.VacuumReading, entries []domain.TimesheetEntry) []domain.QualityAlert {
	var alerts []domain.QualityAlert
	alerts = append(alerts, repairNeededAlerts(readings)...)
	alerts = append(alerts, excessiveHoursAlerts(entries)...)
	alerts = append(alerts, rapidDropAlerts(readings)...)
	return alerts
}

// repairNeededAlerts surfaces vacuum rows flagged for repair, either
// through the dedicated repairs column or by repair keywords in the
// free-form notes.
func repairNeededAlerts(readings []domain.VacuumReading) []domain.QualityAlert {
	var alerts []domain.QualityAlert
	for _, r := range readings {
		detail := ""
		switch {
		case r.RepairsNeeded != "":
			detail = r.RepairsNeeded
		case noteFlagsRepair(r.Notes):
			detail = r.Notes
		default:
			continue
		}
		alerts = append(alerts, domain.QualityAlert{
			Kind:     domain.AlertRepairNeeded,
			Severity: domain.SeverityInfo,
			Subject:  r.SensorName,
			Detail:   detail,
			At:       r.Timestamp,
		})
	}
	return alerts
}

func noteFlagsRepair(note string) bool {
	note = strings.ToLower(note)
	if note == "" {
		return false
	}
	return strings.Contains(note, "repair") || strings.Contains(note, "leak") || strings.Contains(note, "broken")
}

// excessiveHoursAlerts flags employee-days over the daily limit.
// Past the high threshold the entry is almost certainly a typo or a
// missed clock-out rather than a nineteen-hour shift.
func excessiveHoursAlerts(entries []domain.TimesheetEntry) []domain.QualityAlert {
	type dayKey struct {
		employee string
		day      string
	}
	daily := make(map[dayKey]float64)
	dates := make(map[dayKey]time.Time)

	for _, e := range entries {
		if e.Date.IsZero() {
			continue
		}
		key := dayKey{employee: e.Employee, day: e.Date.Format("2006-01-02")}
		daily[key] += e.Hours
		dates[key] = e.Date
	}

	var alerts []domain.QualityAlert
	for key, hours := range daily {
		if hours <= config.ExcessiveDailyHours {
			continue
		}
		severity := domain.SeverityMedium
		if hours > config.ExcessiveDailyHoursHigh {
			severity = domain.SeverityHigh
		}
		alerts = append(alerts, domain.QualityAlert{
			Kind:     domain.AlertExcessiveHours,
			Severity: severity,
			Subject:  key.employee,
			Detail:   fmt.Sprintf("%.1f hours logged on %s", hours, key.day),
			Value:    hours,
			At:       dates[key],
		})
	}

	sort.Slice(alerts, func(i, j int) bool { return alerts[i].Value > alerts[j].Value })
	return alerts
}

// rapidDropAlerts finds vacuum drops between consecutive readings of
// the same sensor inside the drop window. The alert threshold adapts
// to the fleet: the average drop minus the configured margin, so a
// noisy system does not page on routine fluctuation.
func rapidDropAlerts(readings []domain.VacuumReading) []domain.QualityAlert {
	bySensor := make(map[string][]domain.VacuumReading)
	for _, r := range readings {
		if r.Timestamp.IsZero() || r.Vacuum <= config.VacuumOfflineMax {
			continue
		}
		bySensor[r.SensorName] = append(bySensor[r.SensorName], r)
	}

	type drop struct {
		sensor string
		delta  float64
		at     time.Time
	}
	var drops []drop
	sumDrop := 0.0

	for sensor, series := range bySensor {
		sort.Slice(series, func(i, j int) bool { return series[i].Timestamp.Before(series[j].Timestamp) })
		for i := 1; i < len(series); i++ {
			gap := series[i].Timestamp.Sub(series[i-1].Timestamp)
			if gap <= 0 || gap > config.RapidDropWindow {
				continue
			}
			delta := series[i].Vacuum - series[i-1].Vacuum
			if delta >= 0 {
				continue
			}
			drops = append(drops, drop{sensor: sensor, delta: delta, at: series[i].Timestamp})
			sumDrop += delta
		}
	}

	if len(drops) == 0 {
		return nil
	}

	avgDrop := sumDrop / float64(len(drops))
	threshold := avgDrop - config.RapidDropMargin

	var alerts []domain.QualityAlert
	for _, d := range drops {
		if d.delta >= threshold {
			continue
		}
		severity := domain.SeverityMedium
		if d.delta <= avgDrop-config.RapidDropHighMargin {
			severity = domain.SeverityHigh
		}
		alerts = append(alerts, domain.QualityAlert{
			Kind:     domain.AlertRapidVacDrop,
			Severity: severity,
			Subject:  d.sensor,
			Detail:   fmt.Sprintf("vacuum fell %.1f inHg between consecutive readings", -d.delta),
			Value:    -d.delta,
			At:       d.at,
		})
	}

	sort.Slice(alerts, func(i, j int) bool { return alerts[i].Value > alerts[j].Value })
	return alerts
}
