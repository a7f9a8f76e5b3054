package exporter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sapflow/pkg/contracts/domain"
)

// PayrollRecords renders approved timesheet rows for the payroll CSV.
// Only approved rows export; the returned keys identify them so the
// review overlay can move them to exported afterward.
func PayrollRecords(reviewed []domain.ReviewedEntry) (headers []string, records [][]string, keys []string) {
	headers = []string{"Employee", "Date", "Job Type", "Class", "Mainline", "Hours", "Taps Put In", "Taps Removed"}

	for _, r := range reviewed {
		if r.Status != domain.ReviewApproved {
			continue
		}
		records = append(records, []string{
			r.Employee,
			r.Date.Format("2006-01-02"),
			r.JobType,
			string(r.Class),
			r.Mainline,
			formatFloat(r.Hours),
			strconv.Itoa(r.TapsPutIn),
			strconv.Itoa(r.TapsRemoved),
		})
		keys = append(keys, r.Key())
	}
	return headers, records, keys
}

// VacuumRecords renders the latest sensor snapshots for export
func VacuumRecords(snapshots []domain.SensorSnapshot) (headers []string, records [][]string) {
	headers = []string{"Sensor", "Class", "Conductor", "Mainline", "Site", "Vacuum", "Status", "Read At"}

	for _, s := range snapshots {
		readAt := ""
		if !s.ReadAt.IsZero() {
			readAt = s.ReadAt.Format(time.RFC3339)
		}
		records = append(records, []string{
			s.SensorName,
			string(s.Class),
			s.Conductor,
			s.Mainline,
			s.Site,
			formatFloat(s.Vacuum),
			string(s.Status),
			readAt,
		})
	}
	return headers, records
}

// ClusterRecords renders problem clusters for export, one row per cluster
func ClusterRecords(clusters []domain.SensorCluster) (headers []string, records [][]string) {
	headers = []string{"Cluster", "Size", "Avg Vacuum", "Worst Vacuum", "Center Lat", "Center Lon", "Sensors"}

	for _, c := range clusters {
		records = append(records, []string{
			strconv.Itoa(c.Label),
			strconv.Itoa(c.Size),
			formatFloat(c.AvgVacuum),
			formatFloat(c.WorstVacuum),
			fmt.Sprintf("%.5f", c.CenterLat),
			fmt.Sprintf("%.5f", c.CenterLon),
			strings.Join(c.Sensors, " "),
		})
	}
	return headers, records
}

// PayrollFileName names a payroll export after its generation time
func PayrollFileName(now time.Time) string {
	return fmt.Sprintf("payroll_%s.csv", now.Format("20060102_150405"))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
