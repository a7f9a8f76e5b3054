package classify

import (
	"sort"
	"strings"
	"unicode"

	"sapflow/internal/config"
)

// UnknownConductor is returned when a name carries no letter prefix
const UnknownConductor = "Unknown"

// conductorsByLength holds the configured prefixes longest-first, so
// DMA wins over a hypothetical DM and GC never shadows GCE handling.
var conductorsByLength = func() []string {
	out := make([]string, len(config.ConductorPrefixes))
	copy(out, config.ConductorPrefixes)
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}()

// Conductor extracts the conductor system from a sensor or line name:
// the uppercase letters before the first digit, matched longest-prefix
// against the configured conductor list. "RHAS13" maps to RHAS and
// "GCE4" to GC. Names whose prefix matches nothing keep their raw
// letter prefix; names with no letters at all are Unknown.
func Conductor(name string) string {
	prefix := letterPrefix(strings.TrimSpace(name))
	if prefix == "" {
		return UnknownConductor
	}

	for _, conductor := range conductorsByLength {
		if strings.HasPrefix(prefix, conductor) {
			return conductor
		}
	}

	return prefix
}

func letterPrefix(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsDigit(r) {
			break
		}
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
