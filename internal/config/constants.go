package config

import (
	"strings"
	"time"
)

// Application constants for the Sapflow reporting service
const (
	AppName    = "Sapflow"
	AppVersion = "1.4.0"

	// Vacuum thresholds in inches of mercury. Buckets are inclusive at
	// their lower bound: 20.0 is excellent, 15.0 is fair, anything below
	// 15.0 is poor and below 12.0 critical.
	VacuumExcellentMin = 20.0
	VacuumFairMin      = 15.0
	VacuumCriticalMax  = 12.0

	// Readings at or below this are treated as a disconnected or
	// powered-down sensor and filtered from effectiveness math.
	VacuumOfflineMax = 1.0

	// Payroll
	OvertimeWeeklyHours = 52.0 // strictly above counts as overtime
	DefaultHourlyRate   = 25.0

	// Rankings and report sizing
	EfficiencyMultiplier = 10.0
	MinHoursForRanking   = 5.0
	TopPerformersCount   = 10
	ProblemAreasCount    = 15

	// Numeric coercion default for unparseable cells
	FillMissingValue = 0.0

	// Data loading
	DataCacheTTL       = 5 * time.Minute
	SourceFetchTimeout = 45 * time.Second

	// Effectiveness matching
	ClockMatchTolerance   = 30 * time.Minute
	DailyFallbackMaxDays  = 2
	DefaultHTTPTimeout    = 30 * time.Second
	WeatherRequestTimeout = 15 * time.Second

	// Data quality detectors
	ExcessiveDailyHours     = 12.0
	ExcessiveDailyHoursHigh = 16.0
	RapidDropWindow         = 24 * time.Hour
	RapidDropMargin         = 3.0 // inHg worse than the fleet average drop
	RapidDropHighMargin     = 5.0

	// Clustering defaults
	DefaultClusterEpsMeters = 150.0
	DefaultClusterMinPoints = 3
	EarthRadiusMeters       = 6371000.0

	// Tap progress tier boundaries, percent of target
	TapBehindBelow  = 95.0
	TapOnTargetLow  = 99.0
	TapOnTargetHigh = 101.0
	TapAheadAbove   = 105.0

	// Sap-run forecast tuning, degrees Fahrenheit
	FreezingPointF   = 32.0
	OptimalLowF      = 25.0
	OptimalHighF     = 45.0
	GoodSwingMinF    = 15.0
	GoodSwingMaxF    = 25.0
	FreezeThawPoints = 40
	GoodSwingPoints  = 30

	// WebSocket
	WebSocketReadBufferSize  = 1024
	WebSocketWriteBufferSize = 1024
	WebSocketPingPeriod      = 30 * time.Second
	WebSocketPongWait        = 60 * time.Second

	// Log settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Internal API surface
	APIBasePath       = "/api"
	HealthEndpoint    = "/health"
	MetricsEndpoint   = "/metrics"
	WebSocketEndpoint = "/ws"
)

// ValidSensorPattern matches real tubing sensors: two to four uppercase
// letters followed by a digit. Anything else is noise in the sheet.
const ValidSensorPattern = `^[A-Z]{2,4}\d`

// BirchPrefix marks birch-stand sensors, tracked apart from maple.
const BirchPrefix = "b"

// ExcludedSensorPrefixes are hardware markers that look like sensor
// names but carry no vacuum data of their own.
var ExcludedSensorPrefixes = []string{"RELAY", "RPT", "REP", "TEST"}

// ConductorPrefixes are the known conductor systems, matched
// longest-first against the letters leading a sensor or line name.
var ConductorPrefixes = []string{"RHAS", "MPC", "DMA", "GC", "BV", "HW"}

// Job-classification keyword sets. Matching is case-insensitive on
// whole words; exclusions win over everything else.
var (
	TappingKeywords = []string{
		"new spout install",
		"dropline install",
		"spout already on",
		"maple tapping",
		"tapping",
	}
	RepairKeywords = []string{
		"repair",
		"leak",
		"vacuum leak",
		"fix",
		"splice",
	}
	ExcludedJobKeywords = []string{
		"storm",
		"infrastructure",
	}
)

// Site holds the reference coordinates used for weather lookups
type Site struct {
	Name      string
	Latitude  float64
	Longitude float64
	Timezone  string
}

// Sites are the producing locations. Rows with an unknown site value
// fall back to the first entry for weather purposes.
var Sites = []Site{
	{Name: "NY", Latitude: 43.4267, Longitude: -73.7123, Timezone: "America/New_York"},
	{Name: "VT", Latitude: 44.1354, Longitude: -72.6522, Timezone: "America/New_York"},
}

// SiteByName returns the configured site, matching case-insensitively
// on the site code. The second return is false for unknown sites.
func SiteByName(name string) (Site, bool) {
	for _, s := range Sites {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Site{}, false
}
