// Package approval keeps the manager review state for timesheet rows.
// The overlay lives apart from the sheet data so a cache refresh never
// loses sign-offs; rows are matched back up by a stable key.
package approval

import (
	"log/slog"
	"sync"
	"time"

	"sapflow/pkg/contracts/domain"
)

// record is the stored review state for one timesheet row
type record struct {
	status    domain.ReviewStatus
	hours     float64
	updatedAt time.Time
}

// Store is an in-memory review overlay, safe for concurrent use
type Store struct {
	mu      sync.RWMutex
	records map[string]record
	logger  *slog.Logger
}

// NewStore builds an empty review overlay
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		records: make(map[string]record),
		logger:  logger.With(slog.String("component", "approval")),
	}
}

// SetStatus records a review decision for the entry key. Approving or
// exporting snapshots the row's hours so later sheet edits can be
// flagged as changes.
func (s *Store) SetStatus(key string, status domain.ReviewStatus, hours float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = record{status: status, hours: hours, updatedAt: time.Now()}
	s.logger.Info("review status updated",
		slog.String("key", key),
		slog.String("status", string(status)))
}

// Status returns the review state for a key, pending when unreviewed
func (s *Store) Status(key string) domain.ReviewStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.records[key]; ok {
		return r.status
	}
	return domain.ReviewPending
}

// Overlay joins timesheet rows with their review state. A row whose
// hours no longer match the value captured at approval time is marked
// changed; its status stays as recorded so the manager sees what moved.
func (s *Store) Overlay(entries []domain.TimesheetEntry, classify func(string) domain.JobClass) []domain.ReviewedEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ReviewedEntry, 0, len(entries))
	for _, e := range entries {
		reviewed := domain.ReviewedEntry{
			TimesheetEntry: e,
			Class:          classify(e.JobType),
			Status:         domain.ReviewPending,
		}
		if r, ok := s.records[e.Key()]; ok {
			reviewed.Status = r.status
			if r.status != domain.ReviewPending && e.Hours != r.hours {
				reviewed.Changed = true
			}
		}
		out = append(out, reviewed)
	}
	return out
}

// MarkExported moves every approved key in the batch to exported.
// Pending and already-exported rows are left alone; the count of rows
// actually moved is returned.
func (s *Store) MarkExported(keys []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := 0
	for _, key := range keys {
		r, ok := s.records[key]
		if !ok || r.status != domain.ReviewApproved {
			continue
		}
		r.status = domain.ReviewExported
		r.updatedAt = time.Now()
		s.records[key] = r
		moved++
	}
	return moved
}

// Counts tallies review states across the given entries
func (s *Store) Counts(entries []domain.TimesheetEntry) map[domain.ReviewStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[domain.ReviewStatus]int{
		domain.ReviewPending:  0,
		domain.ReviewApproved: 0,
		domain.ReviewExported: 0,
	}
	for _, e := range entries {
		status := domain.ReviewPending
		if r, ok := s.records[e.Key()]; ok {
			status = r.status
		}
		counts[status]++
	}
	return counts
}
