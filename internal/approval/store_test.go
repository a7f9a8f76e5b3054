package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sapflow/internal/classify"
	"sapflow/internal/shared/testutil"
	"sapflow/pkg/contracts/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return NewStore(logger)
}

func entry(employee string, hours float64) domain.TimesheetEntry {
	return domain.TimesheetEntry{
		Employee: employee,
		Date:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		JobType:  "Tapping",
		Mainline: "RHAS13",
		Hours:    hours,
	}
}

func TestStatusDefaultsToPending(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, domain.ReviewPending, store.Status("nope"))
}

func TestOverlayTracksApprovalAndChanges(t *testing.T) {
	store := newTestStore(t)
	e := entry("Sam", 8)

	store.SetStatus(e.Key(), domain.ReviewApproved, e.Hours)

	reviewed := store.Overlay([]domain.TimesheetEntry{e}, classify.Job)
	require.Len(t, reviewed, 1)
	assert.Equal(t, domain.ReviewApproved, reviewed[0].Status)
	assert.Equal(t, domain.JobTapping, reviewed[0].Class)
	assert.False(t, reviewed[0].Changed)

	// The sheet row is edited after approval
	edited := e
	edited.Hours = 10
	reviewed = store.Overlay([]domain.TimesheetEntry{edited}, classify.Job)
	require.Len(t, reviewed, 1)
	assert.True(t, reviewed[0].Changed, "hours moved since approval")
	assert.Equal(t, domain.ReviewApproved, reviewed[0].Status)
}

func TestMarkExported(t *testing.T) {
	store := newTestStore(t)
	approved := entry("Sam", 8)
	pending := entry("Pat", 6)

	store.SetStatus(approved.Key(), domain.ReviewApproved, approved.Hours)

	moved := store.MarkExported([]string{approved.Key(), pending.Key()})
	assert.Equal(t, 1, moved, "only approved rows export")
	assert.Equal(t, domain.ReviewExported, store.Status(approved.Key()))
	assert.Equal(t, domain.ReviewPending, store.Status(pending.Key()))

	// Exporting again is a no-op
	assert.Zero(t, store.MarkExported([]string{approved.Key()}))
}

func TestCounts(t *testing.T) {
	store := newTestStore(t)
	a, b, c := entry("Sam", 8), entry("Pat", 6), entry("Lee", 4)

	store.SetStatus(a.Key(), domain.ReviewApproved, a.Hours)
	store.SetStatus(b.Key(), domain.ReviewExported, b.Hours)

	counts := store.Counts([]domain.TimesheetEntry{a, b, c})
	assert.Equal(t, 1, counts[domain.ReviewApproved])
	assert.Equal(t, 1, counts[domain.ReviewExported])
	assert.Equal(t, 1, counts[domain.ReviewPending])
}
