package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sapflow/internal/approval"
	"sapflow/internal/classify"
	"sapflow/internal/config"
	"sapflow/internal/dataload"
	"sapflow/internal/errors"
	"sapflow/internal/geo"
	"sapflow/internal/metrics"
	"sapflow/internal/repairs"
	"sapflow/pkg/contracts/domain"
)

// WeatherFetcher supplies site weather, usually the Open-Meteo client
type WeatherFetcher interface {
	AllSites(ctx context.Context) ([]domain.SiteWeather, error)
}

// Broadcaster pushes dashboard events to connected clients
type Broadcaster interface {
	BroadcastUpdate(kind string, payload any)
}

// DashboardService computes dashboard metrics over the cached dataset
type DashboardService struct {
	cfg     *config.Config
	loader  *dataload.Loader
	reviews *approval.Store
	weather WeatherFetcher
	hub     Broadcaster
	logger  *slog.Logger
}

// NewDashboardService wires the dashboard service. The broadcaster may
// be nil when running outside the web server.
func NewDashboardService(cfg *config.Config, loader *dataload.Loader, reviews *approval.Store, weather WeatherFetcher, hub Broadcaster, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		cfg:     cfg,
		loader:  loader,
		reviews: reviews,
		weather: weather,
		hub:     hub,
		logger:  logger.With(slog.String("component", "dashboard_service")),
	}
}

// Overview returns the dashboard landing summary
func (s *DashboardService) Overview(ctx context.Context) (domain.Overview, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return domain.Overview{}, err
	}
	return metrics.BuildOverview(ds, time.Now()), nil
}

// VacuumStatus returns per-sensor snapshots plus the bucket tallies
func (s *DashboardService) VacuumStatus(ctx context.Context) ([]domain.SensorSnapshot, []domain.StatusCount, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	snapshots := metrics.LatestSnapshots(ds.Vacuum)
	return snapshots, metrics.StatusCounts(snapshots), nil
}

// Employees returns per-employee summaries with overtime applied
func (s *DashboardService) Employees(ctx context.Context) ([]domain.EmployeeSummary, []domain.OvertimeWeek, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	threshold := s.cfg.Payroll.OvertimeWeekly
	return metrics.EmployeeSummaries(ds.Timesheet, threshold),
		metrics.OvertimeWeeks(ds.Timesheet, threshold), nil
}

// TopPerformers returns the tap-rate leader board
func (s *DashboardService) TopPerformers(ctx context.Context) ([]domain.EmployeeSummary, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	summaries := metrics.EmployeeSummaries(ds.Timesheet, s.cfg.Payroll.OvertimeWeekly)
	return metrics.TopPerformers(summaries, config.TopPerformersCount), nil
}

// Mainlines returns mainline and conductor rollups
func (s *DashboardService) Mainlines(ctx context.Context) ([]domain.MainlineSummary, []domain.ConductorSummary, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	snapshots := metrics.LatestSnapshots(ds.Vacuum)
	mainlines := metrics.MainlineSummaries(ds.Timesheet, snapshots)
	return mainlines, metrics.ConductorSummaries(mainlines), nil
}

// TapProgress returns season tap standing per mainline
func (s *DashboardService) TapProgress(ctx context.Context) ([]domain.TapProgress, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.TapProgressByMainline(ds.Timesheet, s.cfg.TapTargets), nil
}

// Effectiveness returns repair effects and the per-employee and
// per-mainline rankings built from them.
func (s *DashboardService) Effectiveness(ctx context.Context) ([]domain.RepairEffect, []metrics.EffectivenessRank, []metrics.EffectivenessRank, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	effects := metrics.RepairEffects(ds.Timesheet, ds.Vacuum)
	return effects, metrics.RankByEmployee(effects), metrics.RankByMainline(effects), nil
}

// RepairCosts derives tickets from vacuum notes and attributes repair
// labor to them.
func (s *DashboardService) RepairCosts(ctx context.Context) ([]domain.RepairCost, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	tickets := repairs.TicketsFromReadings(ds.Vacuum)
	return metrics.RepairCosts(tickets, ds.Timesheet, s.cfg.Payroll.HourlyRate, time.Now()), nil
}

// ProblemClusters groups low-vacuum sensors spatially, worst first
func (s *DashboardService) ProblemClusters(ctx context.Context) ([]domain.SensorCluster, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	snapshots := metrics.LatestSnapshots(ds.Vacuum)
	return geo.ProblemClusters(snapshots, s.cfg.Cluster.EpsMeters, s.cfg.Cluster.MinPoints), nil
}

// SiteForecast bundles one site's weather with its sap-run scores
type SiteForecast struct {
	domain.SiteWeather
	Forecast []domain.SapForecast `json:"forecast"`
}

// Weather returns the forecast and sap-run outlook for every site
func (s *DashboardService) Weather(ctx context.Context) ([]SiteForecast, error) {
	sites, err := s.weather.AllSites(ctx)
	if err != nil {
		return nil, errors.WeatherFetchError(err)
	}

	out := make([]SiteForecast, 0, len(sites))
	for _, site := range sites {
		out = append(out, SiteForecast{
			SiteWeather: site,
			Forecast:    metrics.SapForecasts(site.Daily),
		})
	}
	return out, nil
}

// QualityAlerts returns the current data-quality findings
func (s *DashboardService) QualityAlerts(ctx context.Context) ([]domain.QualityAlert, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.QualityAlerts(ds.Vacuum, ds.Timesheet), nil
}

// ReviewedEntries returns timesheet rows joined with review state
func (s *DashboardService) ReviewedEntries(ctx context.Context) ([]domain.ReviewedEntry, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.reviews.Overlay(ds.Timesheet, classify.Job), nil
}

// SetReviewStatus records a manager decision on a timesheet row. The
// row must exist in the current dataset so approvals cannot reference
// rows the sheet no longer holds.
func (s *DashboardService) SetReviewStatus(ctx context.Context, key string, status domain.ReviewStatus) error {
	switch status {
	case domain.ReviewPending, domain.ReviewApproved, domain.ReviewExported:
	default:
		return fmt.Errorf("unknown review status %q", status)
	}

	ds, err := s.load(ctx)
	if err != nil {
		return err
	}

	for _, e := range ds.Timesheet {
		if e.Key() == key {
			s.reviews.SetStatus(key, status, e.Hours)
			s.broadcast("review_updated", map[string]string{"key": key, "status": string(status)})
			return nil
		}
	}
	return errors.ErrEntryNotFound
}

// Refresh drops the cache and reloads, notifying connected clients
func (s *DashboardService) Refresh(ctx context.Context) (*dataload.Dataset, error) {
	s.loader.Invalidate()
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	s.broadcast("data_refreshed", map[string]any{
		"loaded_at":      ds.LoadedAt,
		"vacuum_rows":    len(ds.Vacuum),
		"timesheet_rows": len(ds.Timesheet),
	})
	return ds, nil
}

func (s *DashboardService) load(ctx context.Context) (*dataload.Dataset, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "dataset load failed", slog.String("error", err.Error()))
		return nil, err
	}
	return ds, nil
}

func (s *DashboardService) broadcast(kind string, payload any) {
	if s.hub != nil {
		s.hub.BroadcastUpdate(kind, payload)
	}
}
