package dataload

import (
	"log/slog"

	"sapflow/internal/classify"
	"sapflow/internal/config"
	"sapflow/internal/schema"
	"sapflow/pkg/contracts/domain"
)

// VacuumTable is the normalized form of the vacuum readings source
type VacuumTable struct {
	Readings []domain.VacuumReading
	// MissingFields lists canonical fields no header resolved for.
	// Metrics that depend on one of these are skipped downstream.
	MissingFields []string
}

// TimesheetTable is the normalized form of the timesheet source
type TimesheetTable struct {
	Entries       []domain.TimesheetEntry
	MissingFields []string
}

// NormalizeVacuum converts raw sheet rows (header row first) into
// vacuum readings. Rows without a sensor name are dropped; numeric
// cells coerce to the fill value rather than failing.
func NormalizeVacuum(rows [][]string, logger *slog.Logger) VacuumTable {
	if len(rows) == 0 {
		return VacuumTable{}
	}

	m := schema.Resolve(rows[0], config.VacuumFields)
	warnMissing(logger, "vacuum", m.Missing())

	table := VacuumTable{MissingFields: m.Missing()}
	for _, row := range rows[1:] {
		sensor := m.Value(row, config.FieldSensorName)
		if sensor == "" {
			continue
		}

		reading := domain.VacuumReading{
			SensorName: sensor,
			Vacuum:     parseFloat(m.Value(row, config.FieldVacuumReading)),
			Timestamp:  parseTime(m.Value(row, config.FieldTimestamp)),
			Latitude:   parseFloat(m.Value(row, config.FieldLatitude)),
			Longitude:  parseFloat(m.Value(row, config.FieldLongitude)),
			Site:       m.Value(row, config.FieldSite),
			Mainline:   m.Value(row, config.FieldMainline),
			Notes:      m.Value(row, config.FieldNotes),
		}
		reading.RepairsNeeded = m.Value(row, config.FieldRepairsNeeded)
		reading.Conductor = conductorFor(reading.Mainline, reading.SensorName)

		table.Readings = append(table.Readings, reading)
	}

	return table
}

// NormalizeTimesheet converts raw sheet rows into timesheet entries.
// Rows without an employee name are dropped.
func NormalizeTimesheet(rows [][]string, sourceTab string, logger *slog.Logger) TimesheetTable {
	if len(rows) == 0 {
		return TimesheetTable{}
	}

	m := schema.Resolve(rows[0], config.TimesheetFields)
	warnMissing(logger, "timesheet", m.Missing())

	table := TimesheetTable{MissingFields: m.Missing()}
	for _, row := range rows[1:] {
		employee := m.Value(row, config.FieldEmployeeName)
		if employee == "" {
			continue
		}

		entry := domain.TimesheetEntry{
			Employee:    employee,
			Date:        parseTime(m.Value(row, config.FieldDate)),
			JobType:     m.Value(row, config.FieldJobType),
			Hours:       parseFloat(m.Value(row, config.FieldHours)),
			Rate:        parseFloat(m.Value(row, config.FieldRate)),
			Mainline:    m.Value(row, config.FieldMainline),
			Site:        m.Value(row, config.FieldSite),
			TapsPutIn:   parseInt(m.Value(row, config.FieldTapsPutIn)),
			TapsRemoved: parseInt(m.Value(row, config.FieldTapsRemoved)),
			TapsCapped:  parseInt(m.Value(row, config.FieldTapsCapped)),
			Notes:       m.Value(row, config.FieldNotes),
			SourceTab:   sourceTab,
		}
		entry.Conductor = conductorFor(entry.Mainline, "")

		table.Entries = append(table.Entries, entry)
	}

	return table
}

// Merge concatenates another tab's entries, unioning missing fields
func (t *TimesheetTable) Merge(other TimesheetTable) {
	t.Entries = append(t.Entries, other.Entries...)
	t.MissingFields = unionStrings(t.MissingFields, other.MissingFields)
}

func conductorFor(mainline, sensor string) string {
	if mainline != "" {
		return classify.Conductor(mainline)
	}
	if sensor != "" {
		return classify.Conductor(sensor)
	}
	return classify.UnknownConductor
}

func warnMissing(logger *slog.Logger, table string, missing []string) {
	if logger == nil || len(missing) == 0 {
		return
	}
	for _, field := range missing {
		logger.Warn("column not found, dependent metrics will be skipped",
			slog.String("table", table),
			slog.String("field", field))
	}
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := a
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
