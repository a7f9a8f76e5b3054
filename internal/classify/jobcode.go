package classify

import (
	"regexp"
	"strings"

	"sapflow/internal/config"
	"sapflow/pkg/contracts/domain"
)

// keywordMatcher matches a keyword on word boundaries for single words
// and as a plain substring for multi-word phrases.
type keywordMatcher struct {
	keyword string
	re      *regexp.Regexp
}

func newMatcher(keyword string) keywordMatcher {
	m := keywordMatcher{keyword: strings.ToLower(keyword)}
	if !strings.Contains(m.keyword, " ") {
		m.re = regexp.MustCompile(`\b` + regexp.QuoteMeta(m.keyword) + `\b`)
	}
	return m
}

func (m keywordMatcher) matches(text string) bool {
	if m.re != nil {
		return m.re.MatchString(text)
	}
	return strings.Contains(text, m.keyword)
}

var (
	tappingMatchers  = buildMatchers(config.TappingKeywords)
	repairMatchers   = buildMatchers(config.RepairKeywords)
	excludedMatchers = buildMatchers(config.ExcludedJobKeywords)
)

func buildMatchers(keywords []string) []keywordMatcher {
	out := make([]keywordMatcher, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, newMatcher(kw))
	}
	return out
}

// Job classifies a timesheet job description. Exclusion keywords win
// over everything else, so "storm repair" stays excluded even though
// it mentions repair work. Rows matching nothing are uncategorized,
// never an error.
func Job(jobType string) domain.JobClass {
	text := strings.ToLower(strings.TrimSpace(jobType))
	if text == "" {
		return domain.JobUncategorized
	}

	for _, m := range excludedMatchers {
		if m.matches(text) {
			return domain.JobExcluded
		}
	}
	for _, m := range tappingMatchers {
		if m.matches(text) {
			return domain.JobTapping
		}
	}
	for _, m := range repairMatchers {
		if m.matches(text) {
			return domain.JobRepair
		}
	}

	return domain.JobUncategorized
}
