package domain

import (
	"time"
)

// AlertSeverity ranks data-quality alerts
type AlertSeverity string

const (
	SeverityInfo   AlertSeverity = "info"
	SeverityMedium AlertSeverity = "medium"
	SeverityHigh   AlertSeverity = "high"
)

// AlertKind names the detector that produced an alert
type AlertKind string

const (
	AlertRepairNeeded   AlertKind = "repair_needed"
	AlertExcessiveHours AlertKind = "excessive_hours"
	AlertRapidVacDrop   AlertKind = "rapid_vacuum_drop"
)

// QualityAlert is one finding from the data-quality detectors
type QualityAlert struct {
	Kind     AlertKind     `json:"kind"`
	Severity AlertSeverity `json:"severity"`
	Subject  string        `json:"subject"`
	Detail   string        `json:"detail"`
	Value    float64       `json:"value,omitempty"`
	At       time.Time     `json:"at,omitempty"`
}
