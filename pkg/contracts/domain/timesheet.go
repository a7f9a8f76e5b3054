package domain

import (
	"time"
)

// TimesheetEntry represents one row of a crew timesheet
type TimesheetEntry struct {
	Employee    string    `json:"employee" validate:"required"`
	Date        time.Time `json:"date"`
	JobType     string    `json:"job_type"`
	Hours       float64   `json:"hours"`
	Rate        float64   `json:"rate,omitempty"`
	Mainline    string    `json:"mainline,omitempty"`
	Conductor   string    `json:"conductor,omitempty"`
	Site        string    `json:"site,omitempty"`
	TapsPutIn   int       `json:"taps_put_in"`
	TapsRemoved int       `json:"taps_removed"`
	TapsCapped  int       `json:"taps_capped"`
	Notes       string    `json:"notes,omitempty"`
	SourceTab   string    `json:"source_tab,omitempty"`
}

// Key identifies a row for the review overlay. Two rows with the same
// employee, date, job type and mainline are treated as the same entry
// across reloads.
func (e TimesheetEntry) Key() string {
	return e.Employee + "|" + e.Date.Format("2006-01-02") + "|" + e.JobType + "|" + e.Mainline
}

// JobClass is the work category a timesheet row falls into
type JobClass string

const (
	JobTapping       JobClass = "tapping"
	JobRepair        JobClass = "repair"
	JobExcluded      JobClass = "excluded"
	JobUncategorized JobClass = "uncategorized"
)

// ReviewStatus tracks manager sign-off on a timesheet row
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewExported ReviewStatus = "exported"
)

// ReviewedEntry is a timesheet row joined with its review state
type ReviewedEntry struct {
	TimesheetEntry
	Class   JobClass     `json:"class"`
	Status  ReviewStatus `json:"status"`
	Changed bool         `json:"changed"`
}
