package dataload

import (
	"strconv"
	"strings"
	"time"

	"sapflow/internal/config"
)

// supportedTimeFormats are tried in order when parsing timestamp and
// date cells. Sheets exported from different tools disagree on format.
var supportedTimeFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"2006-01-02",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
}

// parseFloat coerces a numeric cell, best effort. Grouping commas,
// percent signs and stray quotes are stripped; anything that still
// fails parses as the fill value so one bad cell never aborts a load.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return config.FillMissingValue
	}
	s = strings.NewReplacer(",", "", "%", "", `"`, "", "'", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return config.FillMissingValue
	}
	return v
}

// parseInt coerces an integer cell the same way parseFloat does,
// truncating fractional values such as "12.0".
func parseInt(s string) int {
	return int(parseFloat(s))
}

// parseTime coerces a timestamp cell. Excel serial dates (days since
// 1899-12-30) show up when a workbook cell loses its display format;
// they are recognized by magnitude and converted. Unparseable cells
// return the zero time.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, format := range supportedTimeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}

	// Excel serial date: plausible values cover 1954 through 2064
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 20000 && serial < 60000 {
		base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
		days := int(serial)
		frac := serial - float64(days)
		return base.AddDate(0, 0, days).Add(time.Duration(frac * 24 * float64(time.Hour)))
	}

	return time.Time{}
}
