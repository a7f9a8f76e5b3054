// Package exporter renders dashboard data to CSV files under the
// configured reports directory.
//
// CSVWriter handles the file mechanics, including the UTF-8 BOM Excel
// needs to read exported files cleanly. The record builders turn
// reviewed timesheet rows, sensor snapshots and problem clusters into
// header and record slices ready for writing.
package exporter
