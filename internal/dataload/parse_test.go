package dataload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFloatCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain", "21.5", 21.5},
		{"grouped", "1,250.75", 1250.75},
		{"percent", "95%", 95},
		{"quoted", `"18.2"`, 18.2},
		{"padded", "  7 ", 7},
		{"negative", "-3.5", -3.5},
		{"empty", "", 0},
		{"dash", "-", 0},
		{"garbage", "n/a", 0},
		{"words", "twelve", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFloat(tt.in))
		})
	}
}

func TestParseIntTruncates(t *testing.T) {
	assert.Equal(t, 12, parseInt("12.0"))
	assert.Equal(t, 12, parseInt("12.9"))
	assert.Equal(t, 0, parseInt("bad"))
}

func TestParseTimeFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"iso_datetime", "2024-03-15 06:30:00", time.Date(2024, 3, 15, 6, 30, 0, 0, time.UTC)},
		{"iso_date", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"us_date", "3/15/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"us_datetime", "3/15/2024 06:30", time.Date(2024, 3, 15, 6, 30, 0, 0, time.UTC)},
		{"unparseable", "soon", time.Time{}},
		{"empty", "", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTime(tt.in))
		})
	}
}

func TestParseTimeExcelSerial(t *testing.T) {
	// 45366 days past 1899-12-30 is 2024-03-15
	got := parseTime("45366")
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)

	// Small numbers are not serial dates
	assert.True(t, parseTime("42").IsZero())
}
