package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sapflow/pkg/contracts/domain"
)

func TestRepairCosts(t *testing.T) {
	found := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	resolved := found.AddDate(0, 0, 7)
	now := found.AddDate(0, 0, 20)

	tickets := []domain.RepairTicket{
		{ID: "T1", Mainline: "RHAS13", DateFound: found, DateResolved: &resolved},
		{ID: "T2", Mainline: "MPC5", DateFound: found}, // still open
	}
	entries := []domain.TimesheetEntry{
		{Employee: "Sam", Date: found.AddDate(0, 0, 2), JobType: "Vacuum leak repair", Hours: 4, Mainline: "RHAS13", TapsPutIn: 100},
		{Employee: "Pat", Date: found.AddDate(0, 0, 5), JobType: "Repair", Hours: 3, Mainline: "RHAS13"},
		// After resolution, outside the ticket window
		{Employee: "Sam", Date: found.AddDate(0, 0, 10), JobType: "Repair", Hours: 8, Mainline: "RHAS13"},
		// Tapping work on the same line never counts as repair labor
		{Employee: "Sam", Date: found.AddDate(0, 0, 3), JobType: "Maple tapping", Hours: 6, Mainline: "RHAS13"},
		// Open ticket collects everything through now
		{Employee: "Pat", Date: found.AddDate(0, 0, 15), JobType: "Repair", Hours: 2, Mainline: "MPC5"},
	}

	costs := RepairCosts(tickets, entries, 25.0, now)
	require.Len(t, costs, 2)

	t1 := costs[0]
	assert.Equal(t, "T1", t1.Ticket.ID)
	assert.Equal(t, 7.0, t1.Hours)
	assert.Equal(t, 175.0, t1.LaborCost)
	assert.Equal(t, 2, t1.Entries)
	assert.Equal(t, 100, t1.TapCount)
	assert.InDelta(t, 1.75, t1.CostPerTap, 0.001)

	t2 := costs[1]
	assert.Equal(t, "T2", t2.Ticket.ID)
	assert.Equal(t, 2.0, t2.Hours)
	assert.Equal(t, 50.0, t2.LaborCost)
	assert.Zero(t, t2.CostPerTap, "no tap count on the line")
}

func TestRepairCostsUsesRowRate(t *testing.T) {
	found := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := found.AddDate(0, 0, 10)

	tickets := []domain.RepairTicket{
		{ID: "T1", Mainline: "RHAS13", DateFound: found},
	}
	entries := []domain.TimesheetEntry{
		{Employee: "Sam", Date: found.AddDate(0, 0, 1), JobType: "Repair", Hours: 4, Rate: 30, Mainline: "RHAS13"},
		{Employee: "Pat", Date: found.AddDate(0, 0, 2), JobType: "Repair", Hours: 2, Rate: 18.5, Mainline: "RHAS13"},
		// Sheets without a pay rate column leave the field zero; the
		// configured rate fills in.
		{Employee: "Lee", Date: found.AddDate(0, 0, 3), JobType: "Repair", Hours: 1, Mainline: "RHAS13"},
	}

	costs := RepairCosts(tickets, entries, 25.0, now)
	require.Len(t, costs, 1)
	assert.Equal(t, 7.0, costs[0].Hours)
	assert.InDelta(t, 4*30+2*18.5+1*25.0, costs[0].LaborCost, 0.001)
}
