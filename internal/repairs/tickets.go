package repairs

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sapflow/pkg/contracts/domain"
)

// repairCue marks a note as describing work that needs doing
var repairCues = []string{"repair", "leak", "broken", "needs", "fix", "replace"}

// TicketsFromReadings derives repair tickets from vacuum-sheet notes.
// One ticket per mainline covers every flagged note on it; the ticket
// opens at the earliest flagged reading. A note parsed as completed
// resolves the ticket at that reading's timestamp, unless a later note
// reopens it.
//
// Ticket IDs are derived from the mainline and open date so the same
// ticket keeps its ID across reloads.
func TicketsFromReadings(readings []domain.VacuumReading) []domain.RepairTicket {
	type lineState struct {
		mainline   string
		site       string
		notes      []string
		opened     time.Time
		resolved   *time.Time
		lastChange time.Time
	}
	byLine := make(map[string]*lineState)

	sorted := make([]domain.VacuumReading, len(readings))
	copy(sorted, readings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	for _, r := range sorted {
		if r.Notes == "" {
			continue
		}
		if !mentionsRepair(r.Notes) {
			continue
		}
		line := r.Mainline
		if line == "" {
			line = r.SensorName
		}
		if line == "" {
			continue
		}

		s, ok := byLine[line]
		if !ok {
			s = &lineState{mainline: line, site: r.Site, opened: r.Timestamp}
			byLine[line] = s
		}
		s.notes = append(s.notes, r.Notes)

		parsed := ParseNote(r.Notes)
		if parsed.Completed {
			ts := r.Timestamp
			s.resolved = &ts
		} else if s.resolved != nil && r.Timestamp.After(*s.resolved) {
			// A fresh complaint after resolution reopens the ticket
			s.resolved = nil
		}
		s.lastChange = r.Timestamp
	}

	out := make([]domain.RepairTicket, 0, len(byLine))
	for _, s := range byLine {
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(s.mainline+"|"+s.opened.Format(time.RFC3339)))
		out = append(out, domain.RepairTicket{
			ID:           id.String(),
			Mainline:     s.mainline,
			Site:         s.site,
			Description:  strings.Join(s.notes, "; "),
			DateFound:    s.opened,
			DateResolved: s.resolved,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Mainline < out[j].Mainline })
	return out
}

func mentionsRepair(note string) bool {
	note = strings.ToLower(note)
	for _, cue := range repairCues {
		if strings.Contains(note, cue) {
			return true
		}
	}
	return false
}
