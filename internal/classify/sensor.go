// Package classify turns the free-text identifiers in the source
// sheets into the categories the metrics engine works with: sensor
// classes, job classes, and conductor systems.
package classify

import (
	"regexp"
	"strings"

	"sapflow/internal/config"
	"sapflow/pkg/contracts/domain"
)

var validSensorRe = regexp.MustCompile(config.ValidSensorPattern)

// Sensor classifies a sensor name. Real tubing sensors are two to four
// uppercase letters followed by a digit; a lowercase "b" prefix marks a
// birch-stand sensor, which is tracked apart from the maple fleet.
// Relay and repeater hardware shows up in the sheet under sensor-like
// names and is excluded outright.
func Sensor(name string) domain.SensorClass {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.SensorExcluded
	}

	if strings.HasPrefix(name, config.BirchPrefix) {
		return domain.SensorBirch
	}

	upper := strings.ToUpper(name)
	for _, prefix := range config.ExcludedSensorPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return domain.SensorExcluded
		}
	}

	if !validSensorRe.MatchString(name) {
		return domain.SensorExcluded
	}

	return domain.SensorMaple
}

// IsValidSensor reports whether the name belongs to a real maple or
// birch sensor, excluded hardware aside.
func IsValidSensor(name string) bool {
	return Sensor(name) != domain.SensorExcluded
}
