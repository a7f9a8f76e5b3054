// Package repairs turns free-text repair notes from the vacuum sheet
// into structured tickets the cost and effectiveness reports can use.
package repairs

import (
	"strings"

	"sapflow/pkg/contracts/domain"
)

// issuePatterns maps note phrases to issue types, checked in order so
// the most specific phrase wins.
var issuePatterns = []struct {
	phrases []string
	issue   domain.IssueType
}{
	{phrases: []string{"tree down", "tree damage", "tree on line", "branch"}, issue: domain.IssueTreeDamage},
	{phrases: []string{"spinseal", "spin seal"}, issue: domain.IssueSpinseal},
	{phrases: []string{"needs stainless", "stainless"}, issue: domain.IssueNeedsStainless},
	{phrases: []string{"monitor antenna", "antenna"}, issue: domain.IssueMonitorAntenna},
	{phrases: []string{"broken", "cracked", "chewed", "squirrel"}, issue: domain.IssueBrokenEquipment},
}

var completedPhrases = []string{"fixed", "done", "complete", "repaired", "resolved"}

// ParseNote extracts the issue type, rough location and completion
// state from a free-text note. Unmatched notes fall back to a general
// repair at an unknown location.
func ParseNote(raw string) domain.ParsedNote {
	note := strings.ToLower(raw)
	parsed := domain.ParsedNote{
		Raw:      raw,
		Issue:    domain.IssueGeneral,
		Location: domain.LocationUnknown,
	}

	for _, p := range issuePatterns {
		for _, phrase := range p.phrases {
			if strings.Contains(note, phrase) {
				parsed.Issue = p.issue
				break
			}
		}
		if parsed.Issue != domain.IssueGeneral {
			break
		}
	}

	switch {
	case strings.Contains(note, "top"):
		parsed.Location = domain.LocationTop
	case strings.Contains(note, "middle"), strings.Contains(note, "mid "):
		parsed.Location = domain.LocationMiddle
	case strings.Contains(note, "bottom"):
		parsed.Location = domain.LocationBottom
	}

	for _, phrase := range completedPhrases {
		if strings.Contains(note, phrase) {
			parsed.Completed = true
			break
		}
	}

	return parsed
}
