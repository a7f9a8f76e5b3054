package domain

import (
	"time"
)

// EmployeeSummary aggregates timesheet activity for one employee
type EmployeeSummary struct {
	Employee      string  `json:"employee"`
	TotalHours    float64 `json:"total_hours"`
	TappingHours  float64 `json:"tapping_hours"`
	RepairHours   float64 `json:"repair_hours"`
	TapsPutIn     int     `json:"taps_put_in"`
	TapsRemoved   int     `json:"taps_removed"`
	TapsCapped    int     `json:"taps_capped"`
	TapsPerHour   float64 `json:"taps_per_hour"`
	OvertimeHours float64 `json:"overtime_hours"`
	Entries       int     `json:"entries"`
}

// OvertimeWeek flags a week where an employee exceeded the threshold.
// WeekStart is always a Monday.
type OvertimeWeek struct {
	Employee  string    `json:"employee"`
	WeekStart time.Time `json:"week_start"`
	Hours     float64   `json:"hours"`
	Overtime  float64   `json:"overtime"`
}

// MainlineSummary aggregates activity and vacuum health per mainline
type MainlineSummary struct {
	Mainline    string       `json:"mainline"`
	Conductor   string       `json:"conductor"`
	Site        string       `json:"site,omitempty"`
	Hours       float64      `json:"hours"`
	TapsPutIn   int          `json:"taps_put_in"`
	TapsRemoved int          `json:"taps_removed"`
	AvgVacuum   float64      `json:"avg_vacuum"`
	Status      VacuumStatus `json:"status"`
	Sensors     int          `json:"sensors"`
}

// ConductorSummary rolls mainline activity up to a conductor system
type ConductorSummary struct {
	Conductor string  `json:"conductor"`
	Hours     float64 `json:"hours"`
	TapsPutIn int     `json:"taps_put_in"`
	AvgVacuum float64 `json:"avg_vacuum"`
	Mainlines int     `json:"mainlines"`
}

// TapTier describes current-season tap counts against target
type TapTier string

const (
	TapNotStarted TapTier = "not_started"
	TapBehind     TapTier = "significantly_less"
	TapOnTrack    TapTier = "on_track"
	TapOnTarget   TapTier = "on_target"
	TapAhead      TapTier = "significantly_more"
	TapNew        TapTier = "new_tapping"
)

// TapProgress is the season tap standing for one mainline
type TapProgress struct {
	Mainline string  `json:"mainline"`
	Current  int     `json:"current"`
	Target   int     `json:"target"`
	Percent  float64 `json:"percent"`
	Tier     TapTier `json:"tier"`
}

// StatusCount is one vacuum bucket with its population
type StatusCount struct {
	Status VacuumStatus `json:"status"`
	Count  int          `json:"count"`
}

// Overview is the dashboard landing summary
type Overview struct {
	GeneratedAt    time.Time     `json:"generated_at"`
	Sensors        int           `json:"sensors"`
	BirchSensors   int           `json:"birch_sensors"`
	AvgVacuum      float64       `json:"avg_vacuum"`
	StatusCounts   []StatusCount `json:"status_counts"`
	CriticalCount  int           `json:"critical_count"`
	Employees      int           `json:"employees"`
	TotalHours     float64       `json:"total_hours"`
	TotalTapsPutIn int           `json:"total_taps_put_in"`
	OpenAlerts     int           `json:"open_alerts"`
	SkippedMetrics []string      `json:"skipped_metrics,omitempty"`
}
