// Package schema resolves spreadsheet headers to canonical field names.
//
// Sheet headers drift: crews rename columns, add punctuation, or reorder
// them between seasons. Each canonical field carries an ordered alias
// list; resolution walks the aliases in priority order and binds the
// first header that matches, so the outcome never depends on the column
// order of the sheet.
package schema

import (
	"strings"
	"unicode"

	"sapflow/internal/config"
)

// Mapping binds canonical field names to column indexes in one sheet
type Mapping struct {
	columns map[string]int
	missing []string
}

// Resolve maps sheet headers onto the requested canonical fields using
// the configured alias tables. Matching is case-insensitive and ignores
// punctuation and whitespace. Fields with no matching header are
// reported via Missing, never as an error.
func Resolve(headers []string, fields []string) Mapping {
	normalized := make(map[string]int, len(headers))
	for i, h := range headers {
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		// First occurrence wins for duplicate headers
		if _, ok := normalized[key]; !ok {
			normalized[key] = i
		}
	}

	m := Mapping{columns: make(map[string]int, len(fields))}
	for _, field := range fields {
		idx, ok := resolveField(field, normalized)
		if !ok {
			m.missing = append(m.missing, field)
			continue
		}
		m.columns[field] = idx
	}
	return m
}

func resolveField(field string, headers map[string]int) (int, bool) {
	aliases, ok := config.ColumnAliases[field]
	if !ok {
		// Unknown fields fall back to their own name
		aliases = []string{field}
	}
	for _, alias := range aliases {
		if idx, ok := headers[NormalizeHeader(alias)]; ok {
			return idx, true
		}
	}
	return 0, false
}

// Index returns the column index for a canonical field
func (m Mapping) Index(field string) (int, bool) {
	idx, ok := m.columns[field]
	return idx, ok
}

// Has reports whether the field resolved to a column
func (m Mapping) Has(field string) bool {
	_, ok := m.columns[field]
	return ok
}

// Missing lists the requested fields that found no header
func (m Mapping) Missing() []string {
	return m.missing
}

// Value extracts the cell for a field from a row, empty when the field
// is unmapped or the row is short.
func (m Mapping) Value(row []string, field string) string {
	idx, ok := m.columns[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// NormalizeHeader lowers the header and strips everything that is not
// a letter or digit, so "Mainline." and " MAIN LINE " compare equal.
func NormalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range header {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
