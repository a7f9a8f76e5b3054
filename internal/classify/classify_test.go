package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sapflow/pkg/contracts/domain"
)

func TestSensorClassification(t *testing.T) {
	tests := []struct {
		name string
		want domain.SensorClass
	}{
		{"RHAS13", domain.SensorMaple},
		{"MPC5", domain.SensorMaple},
		{"GCE4", domain.SensorMaple},
		{"AB1", domain.SensorMaple},
		{"WXYZ9", domain.SensorMaple},

		// Birch sensors carry a lowercase b prefix
		{"bRHAS2", domain.SensorBirch},
		{"b12", domain.SensorBirch},

		// Relay and repeater hardware
		{"RELAY1", domain.SensorExcluded},
		{"RPT04", domain.SensorExcluded},
		{"TEST1", domain.SensorExcluded},

		// Shape violations
		{"", domain.SensorExcluded},
		{"A1", domain.SensorExcluded},       // single letter
		{"ABCDE1", domain.SensorExcluded},   // five letters
		{"rhas13", domain.SensorExcluded},   // lowercase, not birch
		{"RHAS", domain.SensorExcluded},     // no digit
		{"13RHAS", domain.SensorExcluded},   // digit first
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sensor(tt.name))
		})
	}
}

func TestJobClassification(t *testing.T) {
	tests := []struct {
		job  string
		want domain.JobClass
	}{
		{"New Spout Install", domain.JobTapping},
		{"dropline install", domain.JobTapping},
		{"Spout already on", domain.JobTapping},
		{"Maple Tapping", domain.JobTapping},

		{"Mainline repair", domain.JobRepair},
		{"Vacuum leak", domain.JobRepair},
		{"fix dropline", domain.JobRepair},

		// Exclusions beat repair keywords
		{"Storm repair", domain.JobExcluded},
		{"storm damage cleanup", domain.JobExcluded},
		{"Infrastructure work", domain.JobExcluded},

		// Word boundaries: "prefix" must not match "fix"
		{"prefix survey", domain.JobUncategorized},
		{"", domain.JobUncategorized},
		{"office admin", domain.JobUncategorized},
	}

	for _, tt := range tests {
		t.Run(tt.job, func(t *testing.T) {
			assert.Equal(t, tt.want, Job(tt.job))
		})
	}
}

func TestConductorExtraction(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"RHAS13", "RHAS"},
		{"MPC5", "MPC"},
		{"GCE4", "GC"},   // longest-prefix, GC is configured but GCE is not
		{"DMAN2", "DMA"},
		{"HW07", "HW"},

		// Unconfigured prefixes keep their raw letters
		{"XQ3", "XQ"},
		{"zt9", "ZT"},

		{"1234", "Unknown"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Conductor(tt.name))
		})
	}
}
