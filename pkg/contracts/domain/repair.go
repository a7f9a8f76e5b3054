package domain

import (
	"time"
)

// RepairTicket tracks a leak or damage report from discovery to resolution
type RepairTicket struct {
	ID           string     `json:"id" validate:"required"`
	Mainline     string     `json:"mainline" validate:"required"`
	Site         string     `json:"site,omitempty"`
	Description  string     `json:"description,omitempty"`
	DateFound    time.Time  `json:"date_found"`
	DateResolved *time.Time `json:"date_resolved,omitempty"`
}

// Open reports whether the ticket is still unresolved
func (t RepairTicket) Open() bool {
	return t.DateResolved == nil
}

// Window returns the labor window for cost attribution. Open tickets
// run through now.
func (t RepairTicket) Window(now time.Time) (time.Time, time.Time) {
	if t.DateResolved != nil {
		return t.DateFound, *t.DateResolved
	}
	return t.DateFound, now
}

// RepairCost is the labor cost attributed to one ticket
type RepairCost struct {
	Ticket     RepairTicket `json:"ticket"`
	Hours      float64      `json:"hours"`
	LaborCost  float64      `json:"labor_cost"`
	TapCount   int          `json:"tap_count"`
	CostPerTap float64      `json:"cost_per_tap"`
	Entries    int          `json:"entries"`
}

// IssueType classifies a free-text repair note
type IssueType string

const (
	IssueTreeDamage      IssueType = "tree_damage"
	IssueSpinseal        IssueType = "spinseal"
	IssueNeedsStainless  IssueType = "needs_stainless"
	IssueMonitorAntenna  IssueType = "monitor_antenna"
	IssueBrokenEquipment IssueType = "broken_equipment"
	IssueGeneral         IssueType = "general_repair"
)

// NoteLocation is the rough position along a mainline a note refers to
type NoteLocation string

const (
	LocationTop     NoteLocation = "top"
	LocationMiddle  NoteLocation = "middle"
	LocationBottom  NoteLocation = "bottom"
	LocationUnknown NoteLocation = "unknown"
)

// ParsedNote is the structured form of a repair note
type ParsedNote struct {
	Raw       string       `json:"raw"`
	Issue     IssueType    `json:"issue"`
	Location  NoteLocation `json:"location"`
	Completed bool         `json:"completed"`
}

// RepairEffect measures the vacuum change around one repair
type RepairEffect struct {
	Employee     string    `json:"employee"`
	Mainline     string    `json:"mainline"`
	Date         time.Time `json:"date"`
	Hours        float64   `json:"hours"`
	VacuumBefore float64   `json:"vacuum_before"`
	VacuumAfter  float64   `json:"vacuum_after"`
	Delta        float64   `json:"delta"`
	Method       string    `json:"method"`
}
