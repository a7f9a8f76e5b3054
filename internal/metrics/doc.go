// Package metrics derives the dashboard numbers from normalized
// vacuum readings and timesheet entries: per-employee and per-mainline
// aggregations, vacuum status buckets, overtime, tap progress, repair
// effectiveness and cost, data-quality alerts, and the sap-run
// forecast.
//
// Everything here is a pure function over loaded data. Bad numeric
// input has already been coerced to the fill value by the loader, so
// the functions never fail; at worst a metric is skipped because its
// source column was missing.
package metrics
