package metrics

import (
	"time"

	"sapflow/internal/config"
	"sapflow/internal/dataload"
	"sapflow/pkg/contracts/domain"
)

// BuildOverview assembles the dashboard landing summary from a loaded
// dataset. Metrics whose source columns were missing are listed in
// SkippedMetrics rather than reported as zero.
func BuildOverview(ds *dataload.Dataset, now time.Time) domain.Overview {
	snapshots := LatestSnapshots(ds.Vacuum)

	ov := domain.Overview{
		GeneratedAt:  now,
		Sensors:      len(snapshots),
		StatusCounts: StatusCounts(snapshots),
	}

	for _, s := range snapshots {
		if s.Class == domain.SensorBirch {
			ov.BirchSensors++
		}
		if s.Status == domain.VacuumCritical {
			ov.CriticalCount++
		}
	}

	if ds.HasField("vacuum", config.FieldVacuumReading) {
		ov.AvgVacuum = AvgVacuum(snapshots)
	} else {
		ov.SkippedMetrics = append(ov.SkippedMetrics, "avg_vacuum")
	}

	summaries := EmployeeSummaries(ds.Timesheet, config.OvertimeWeeklyHours)
	ov.Employees = len(summaries)
	if ds.HasField("timesheet", config.FieldHours) {
		for _, s := range summaries {
			ov.TotalHours += s.TotalHours
		}
	} else {
		ov.SkippedMetrics = append(ov.SkippedMetrics, "total_hours")
	}
	if ds.HasField("timesheet", config.FieldTapsPutIn) {
		for _, s := range summaries {
			ov.TotalTapsPutIn += s.TapsPutIn
		}
	} else {
		ov.SkippedMetrics = append(ov.SkippedMetrics, "total_taps_put_in")
	}

	ov.OpenAlerts = len(QualityAlerts(ds.Vacuum, ds.Timesheet))
	return ov
}
