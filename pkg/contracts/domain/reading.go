package domain

import (
	"time"
)

// VacuumReading represents a single sensor vacuum measurement
type VacuumReading struct {
	SensorName string    `json:"sensor_name" validate:"required"`
	Vacuum     float64   `json:"vacuum"`
	Timestamp  time.Time `json:"timestamp"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Site       string    `json:"site,omitempty"`
	Mainline   string    `json:"mainline,omitempty"`
	Conductor  string    `json:"conductor,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	// RepairsNeeded carries the dedicated repair column some sheets
	// keep alongside free-form notes.
	RepairsNeeded string `json:"repairs_needed,omitempty"`
}

// HasCoordinates reports whether the reading carries a usable position.
// Sheets frequently hold 0,0 for sensors that were never surveyed.
func (r VacuumReading) HasCoordinates() bool {
	return r.Latitude != 0 || r.Longitude != 0
}

// SensorClass categorizes a sensor by its name
type SensorClass string

const (
	SensorMaple    SensorClass = "maple"
	SensorBirch    SensorClass = "birch"
	SensorExcluded SensorClass = "excluded"
)

// VacuumStatus buckets a vacuum level for reporting
type VacuumStatus string

const (
	VacuumExcellent VacuumStatus = "excellent"
	VacuumFair      VacuumStatus = "fair"
	VacuumPoor      VacuumStatus = "poor"
	VacuumCritical  VacuumStatus = "critical"
)

// SensorSnapshot is the latest known state of one sensor
type SensorSnapshot struct {
	SensorName string       `json:"sensor_name"`
	Class      SensorClass  `json:"class"`
	Conductor  string       `json:"conductor"`
	Mainline   string       `json:"mainline,omitempty"`
	Site       string       `json:"site,omitempty"`
	Latitude   float64      `json:"latitude"`
	Longitude  float64      `json:"longitude"`
	Vacuum     float64      `json:"vacuum"`
	Status     VacuumStatus `json:"status"`
	ReadAt     time.Time    `json:"read_at"`
	Notes      string       `json:"notes,omitempty"`
}
