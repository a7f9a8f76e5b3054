// Command report generates CSV exports without starting the web server.
// It loads the configured sources once, computes the requested report
// and writes it to the reports directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"sapflow/internal/approval"
	"sapflow/internal/config"
	"sapflow/internal/dataload"
	"sapflow/internal/exporter"
	"sapflow/internal/infrastructure"
	"sapflow/internal/services"
	"sapflow/internal/weather"
)

func main() {
	report := flag.String("report", "vacuum", "report to generate: vacuum, clusters or all")
	outputDir := flag.String("out", "", "output directory (defaults to the configured reports dir)")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(*report, *outputDir); err != nil {
		slog.Error("Report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(report, outputDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if outputDir != "" {
		cfg.Paths.ReportsDir = outputDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	ctx := context.Background()

	var sheets *dataload.SheetsClient
	if cfg.Sources.Credentials != "" {
		sheets, err = dataload.NewSheetsClient(ctx, cfg.Sources.Credentials, logger)
		if err != nil {
			return fmt.Errorf("initialize sheets client: %w", err)
		}
	}

	loader := dataload.NewLoader(cfg.Sources, sheets, dataload.NewExcelReader(logger), nil, logger)
	dashboard := services.NewDashboardService(cfg, loader, approval.NewStore(logger),
		weather.NewClient(cfg.Weather, logger), nil, logger)
	reports := services.NewReportService(dashboard, exporter.NewCSVWriter(cfg, logger), logger)

	exports := map[string]func(context.Context) (*services.ExportResult, error){
		"vacuum":   reports.ExportVacuumStatus,
		"clusters": reports.ExportClusters,
	}

	var selected []string
	switch report {
	case "all":
		selected = []string{"vacuum", "clusters"}
	default:
		if _, ok := exports[report]; !ok {
			return fmt.Errorf("unknown report %q (want vacuum, clusters or all)", report)
		}
		selected = []string{report}
	}

	for _, name := range selected {
		result, err := exports[name](ctx)
		if err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
		logger.Info("Report written",
			slog.String("report", name),
			slog.String("file", cfg.ReportPath(result.FileName)),
			slog.Int("rows", result.Rows))
	}

	return nil
}
