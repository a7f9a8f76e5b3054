package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"sapflow/internal/config"
)

// ClientCounter reports how many clients are connected, usually the
// websocket hub.
type ClientCounter interface {
	ClientCount() int
}

// HealthService reports service and source health
type HealthService struct {
	version   string
	cfg       *config.Config
	hub       ClientCounter
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the health endpoint response
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Sources   map[string]string `json:"sources"`
	Runtime   map[string]any    `json:"runtime,omitempty"`
}

// NewHealthService creates the health service. The client counter may
// be nil outside the web server.
func NewHealthService(version string, cfg *config.Config, hub ClientCounter, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		cfg:       cfg,
		hub:       hub,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// Check returns the current health snapshot. Health is degraded when
// neither source is configured, since every dashboard view would 422.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	sources := map[string]string{
		"vacuum":    sourceState(s.cfg.Sources.Vacuum),
		"timesheet": sourceState(s.cfg.Sources.Timesheet),
	}

	status := "healthy"
	if sources["vacuum"] == "unconfigured" && sources["timesheet"] == "unconfigured" {
		status = "degraded"
	}

	rt := map[string]any{
		"go_version": runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
	}
	if s.hub != nil {
		rt["websocket_clients"] = s.hub.ClientCount()
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Sources:   sources,
		Runtime:   rt,
	}
}

func sourceState(src config.SheetSource) string {
	switch {
	case src.SpreadsheetID != "":
		return "google_sheets"
	case src.WorkbookPath != "":
		return "excel"
	default:
		return "unconfigured"
	}
}
