package config

// Canonical field names for the two source tables. The schema package
// resolves sheet headers to these names.
const (
	FieldSensorName    = "sensor_name"
	FieldVacuumReading = "vacuum_reading"
	FieldTimestamp     = "timestamp"
	FieldLatitude      = "latitude"
	FieldLongitude     = "longitude"
	FieldSite          = "site"
	FieldMainline      = "mainline"
	FieldNotes         = "notes"

	FieldEmployeeName  = "employee_name"
	FieldDate          = "date"
	FieldJobType       = "job_type"
	FieldHours         = "hours"
	FieldRate          = "rate"
	FieldTapsPutIn     = "taps_put_in"
	FieldTapsRemoved   = "taps_removed"
	FieldTapsCapped    = "taps_capped"
	FieldRepairsNeeded = "repairs_needed"
)

// ColumnAliases maps each canonical field to its known header spellings,
// in priority order. Earlier aliases win when a sheet carries several
// candidate headers. Comparison is case- and punctuation-insensitive,
// so "Mainline." and "MAINLINE" both resolve to mainline.
var ColumnAliases = map[string][]string{
	FieldSensorName:    {"sensor name", "sensor", "sensor id", "name"},
	FieldVacuumReading: {"vacuum reading", "vacuum", "vacuum level", "vac", "reading"},
	FieldTimestamp:     {"timestamp", "reading time", "datetime", "date/time", "time"},
	FieldLatitude:      {"latitude", "lat"},
	FieldLongitude:     {"longitude", "lon", "lng", "long"},
	FieldSite:          {"site", "location", "bush"},
	FieldMainline:      {"mainline", "mainline.", "main line", "line"},
	FieldNotes:         {"notes", "note", "comments", "comment"},

	FieldEmployeeName:  {"employee name", "employee", "worker", "name"},
	FieldDate:          {"date", "work date", "day"},
	FieldJobType:       {"job type", "job code", "job", "work type", "task"},
	FieldHours:         {"hours", "hours worked", "hrs"},
	FieldRate:          {"rate", "pay rate", "hourly rate", "wage"},
	FieldTapsPutIn:     {"taps put in", "taps in", "new taps", "taps installed"},
	FieldTapsRemoved:   {"taps removed", "taps out", "taps pulled"},
	FieldTapsCapped:    {"taps capped", "capped taps", "capped"},
	FieldRepairsNeeded: {"repairs needed", "repair needed", "needs repair"},
}

// VacuumFields are the canonical fields expected in the vacuum table.
// Only sensor_name and vacuum_reading are hard requirements; metrics
// that need a missing optional field are skipped with a warning.
var VacuumFields = []string{
	FieldSensorName, FieldVacuumReading, FieldTimestamp,
	FieldLatitude, FieldLongitude, FieldSite, FieldMainline,
	FieldNotes, FieldRepairsNeeded,
}

// TimesheetFields are the canonical fields expected in the timesheet table.
var TimesheetFields = []string{
	FieldEmployeeName, FieldDate, FieldJobType, FieldHours, FieldRate,
	FieldMainline, FieldSite, FieldTapsPutIn, FieldTapsRemoved,
	FieldTapsCapped, FieldNotes,
}
