package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sapflow/internal/exporter"
)

// ReportService writes CSV exports to the reports directory
type ReportService struct {
	dashboard *DashboardService
	writer    *exporter.CSVWriter
	logger    *slog.Logger
}

// NewReportService wires the report service
func NewReportService(dashboard *DashboardService, writer *exporter.CSVWriter, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		dashboard: dashboard,
		writer:    writer,
		logger:    logger.With(slog.String("component", "report_service")),
	}
}

// ExportResult describes one finished export
type ExportResult struct {
	FileName string `json:"file_name"`
	Rows     int    `json:"rows"`
}

// ExportPayroll writes approved timesheet rows to a payroll CSV and
// moves them to exported so they cannot be paid twice.
func (s *ReportService) ExportPayroll(ctx context.Context) (*ExportResult, error) {
	reviewed, err := s.dashboard.ReviewedEntries(ctx)
	if err != nil {
		return nil, err
	}

	headers, records, keys := exporter.PayrollRecords(reviewed)
	if len(records) == 0 {
		return nil, fmt.Errorf("no approved entries to export")
	}

	name := exporter.PayrollFileName(time.Now())
	if err := s.writer.WriteSimpleCSV(name, headers, records); err != nil {
		return nil, fmt.Errorf("write payroll export: %w", err)
	}

	moved := s.dashboard.reviews.MarkExported(keys)
	s.logger.InfoContext(ctx, "payroll exported",
		slog.String("file", name),
		slog.Int("rows", len(records)),
		slog.Int("marked_exported", moved))

	return &ExportResult{FileName: name, Rows: len(records)}, nil
}

// ExportVacuumStatus writes the latest sensor snapshots to CSV
func (s *ReportService) ExportVacuumStatus(ctx context.Context) (*ExportResult, error) {
	snapshots, _, err := s.dashboard.VacuumStatus(ctx)
	if err != nil {
		return nil, err
	}

	headers, records := exporter.VacuumRecords(snapshots)
	name := fmt.Sprintf("vacuum_status_%s.csv", time.Now().Format("20060102_150405"))
	if err := s.writer.WriteSimpleCSV(name, headers, records); err != nil {
		return nil, fmt.Errorf("write vacuum export: %w", err)
	}

	return &ExportResult{FileName: name, Rows: len(records)}, nil
}

// ExportClusters writes the current problem clusters to CSV
func (s *ReportService) ExportClusters(ctx context.Context) (*ExportResult, error) {
	clusters, err := s.dashboard.ProblemClusters(ctx)
	if err != nil {
		return nil, err
	}

	headers, records := exporter.ClusterRecords(clusters)
	name := fmt.Sprintf("problem_clusters_%s.csv", time.Now().Format("20060102_150405"))
	if err := s.writer.WriteSimpleCSV(name, headers, records); err != nil {
		return nil, fmt.Errorf("write cluster export: %w", err)
	}

	return &ExportResult{FileName: name, Rows: len(records)}, nil
}
