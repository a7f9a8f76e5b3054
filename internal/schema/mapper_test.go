package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sapflow/internal/config"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mainline.", "mainline"},
		{" MAIN LINE ", "mainline"},
		{"Vacuum Reading", "vacuumreading"},
		{"taps_put_in", "tapsputin"},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeader(tt.in))
		})
	}
}

func TestResolveIsHeaderOrderIndependent(t *testing.T) {
	fields := []string{config.FieldSensorName, config.FieldVacuumReading, config.FieldMainline}

	headersA := []string{"Sensor Name", "Vacuum Reading", "Mainline."}
	headersB := []string{"Mainline.", "Sensor Name", "Vacuum Reading"}

	a := Resolve(headersA, fields)
	b := Resolve(headersB, fields)

	for _, field := range fields {
		ia, ok := a.Index(field)
		require.True(t, ok, field)
		ib, ok := b.Index(field)
		require.True(t, ok, field)

		// Indexes differ, but both mappings bind the same header text
		assert.Equal(t, NormalizeHeader(headersA[ia]), NormalizeHeader(headersB[ib]), field)
	}
}

func TestResolveAliasPriority(t *testing.T) {
	// A timesheet with both "Employee" and "Name" must bind
	// employee_name to the more specific header.
	headers := []string{"Name", "Employee", "Hours"}
	m := Resolve(headers, []string{config.FieldEmployeeName, config.FieldHours})

	idx, ok := m.Index(config.FieldEmployeeName)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestResolveCaseAndPunctuationInsensitive(t *testing.T) {
	headers := []string{"SENSOR  NAME", "vacuum-reading", "Lat.", "LON"}
	m := Resolve(headers, []string{
		config.FieldSensorName, config.FieldVacuumReading,
		config.FieldLatitude, config.FieldLongitude,
	})

	assert.True(t, m.Has(config.FieldSensorName))
	assert.True(t, m.Has(config.FieldVacuumReading))
	assert.True(t, m.Has(config.FieldLatitude))
	assert.True(t, m.Has(config.FieldLongitude))
	assert.Empty(t, m.Missing())
}

func TestResolveReportsMissingFields(t *testing.T) {
	m := Resolve([]string{"Sensor", "Vacuum"}, []string{
		config.FieldSensorName, config.FieldVacuumReading, config.FieldLatitude,
	})

	assert.Equal(t, []string{config.FieldLatitude}, m.Missing())
	assert.False(t, m.Has(config.FieldLatitude))
}

func TestMappingValue(t *testing.T) {
	m := Resolve([]string{"Sensor", "Vacuum"}, []string{config.FieldSensorName, config.FieldVacuumReading})

	row := []string{"  RHAS13 ", "21.5"}
	assert.Equal(t, "RHAS13", m.Value(row, config.FieldSensorName))
	assert.Equal(t, "21.5", m.Value(row, config.FieldVacuumReading))

	// Short row and unmapped field both come back empty
	assert.Equal(t, "", m.Value([]string{"RHAS13"}, config.FieldVacuumReading))
	assert.Equal(t, "", m.Value(row, config.FieldLatitude))
}
