package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "sapflow/internal/errors"
	"sapflow/internal/infrastructure"
	"sapflow/internal/services"
	"sapflow/pkg/contracts/domain"
)

// DashboardHandler serves the reporting API
type DashboardHandler struct {
	dashboard    *services.DashboardService
	reports      *services.ReportService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates the dashboard handler
func NewDashboardHandler(dashboard *services.DashboardService, reports *services.ReportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		dashboard:    dashboard,
		reports:      reports,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard API routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/overview", h.GetOverview)
	r.Get("/vacuum", h.GetVacuumStatus)
	r.Get("/employees", h.GetEmployees)
	r.Get("/employees/top", h.GetTopPerformers)
	r.Get("/mainlines", h.GetMainlines)
	r.Get("/taps", h.GetTapProgress)
	r.Get("/effectiveness", h.GetEffectiveness)
	r.Get("/repair-costs", h.GetRepairCosts)
	r.Get("/clusters", h.GetClusters)
	r.Get("/weather", h.GetWeather)
	r.Get("/alerts", h.GetQualityAlerts)

	r.Route("/timesheet", func(r chi.Router) {
		r.Get("/review", h.GetReviewedEntries)
		r.Put("/review/{key}", h.PutReviewStatus)
	})

	r.Route("/export", func(r chi.Router) {
		r.Post("/payroll", h.ExportPayroll)
		r.Post("/vacuum", h.ExportVacuum)
		r.Post("/clusters", h.ExportClusters)
	})

	r.Post("/refresh", h.PostRefresh)

	return r
}

// GetOverview handles GET /api/overview
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboard.Overview(r.Context())
	if err != nil {
		h.handleError(w, r, "overview", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   overview,
	})
}

// GetVacuumStatus handles GET /api/vacuum
func (h *DashboardHandler) GetVacuumStatus(w http.ResponseWriter, r *http.Request) {
	snapshots, counts, err := h.dashboard.VacuumStatus(r.Context())
	if err != nil {
		h.handleError(w, r, "vacuum status", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data": map[string]any{
			"sensors":       snapshots,
			"status_counts": counts,
		},
		"count": len(snapshots),
	})
}

// GetEmployees handles GET /api/employees
func (h *DashboardHandler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	summaries, overtime, err := h.dashboard.Employees(r.Context())
	if err != nil {
		h.handleError(w, r, "employee summaries", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data": map[string]any{
			"employees":      summaries,
			"overtime_weeks": overtime,
		},
		"count": len(summaries),
	})
}

// GetTopPerformers handles GET /api/employees/top
func (h *DashboardHandler) GetTopPerformers(w http.ResponseWriter, r *http.Request) {
	top, err := h.dashboard.TopPerformers(r.Context())
	if err != nil {
		h.handleError(w, r, "top performers", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   top,
		"count":  len(top),
	})
}

// GetMainlines handles GET /api/mainlines
func (h *DashboardHandler) GetMainlines(w http.ResponseWriter, r *http.Request) {
	mainlines, conductors, err := h.dashboard.Mainlines(r.Context())
	if err != nil {
		h.handleError(w, r, "mainline summaries", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data": map[string]any{
			"mainlines":  mainlines,
			"conductors": conductors,
		},
		"count": len(mainlines),
	})
}

// GetTapProgress handles GET /api/taps
func (h *DashboardHandler) GetTapProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.dashboard.TapProgress(r.Context())
	if err != nil {
		h.handleError(w, r, "tap progress", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   progress,
		"count":  len(progress),
	})
}

// GetEffectiveness handles GET /api/effectiveness
func (h *DashboardHandler) GetEffectiveness(w http.ResponseWriter, r *http.Request) {
	effects, byEmployee, byMainline, err := h.dashboard.Effectiveness(r.Context())
	if err != nil {
		h.handleError(w, r, "repair effectiveness", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data": map[string]any{
			"repairs":     effects,
			"by_employee": byEmployee,
			"by_mainline": byMainline,
		},
		"count": len(effects),
	})
}

// GetRepairCosts handles GET /api/repair-costs
func (h *DashboardHandler) GetRepairCosts(w http.ResponseWriter, r *http.Request) {
	costs, err := h.dashboard.RepairCosts(r.Context())
	if err != nil {
		h.handleError(w, r, "repair costs", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   costs,
		"count":  len(costs),
	})
}

// GetClusters handles GET /api/clusters
func (h *DashboardHandler) GetClusters(w http.ResponseWriter, r *http.Request) {
	clusters, err := h.dashboard.ProblemClusters(r.Context())
	if err != nil {
		h.handleError(w, r, "problem clusters", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   clusters,
		"count":  len(clusters),
	})
}

// GetWeather handles GET /api/weather
func (h *DashboardHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	sites, err := h.dashboard.Weather(r.Context())
	if err != nil {
		h.handleError(w, r, "site weather", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   sites,
		"count":  len(sites),
	})
}

// GetQualityAlerts handles GET /api/alerts
func (h *DashboardHandler) GetQualityAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.dashboard.QualityAlerts(r.Context())
	if err != nil {
		h.handleError(w, r, "quality alerts", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   alerts,
		"count":  len(alerts),
	})
}

// GetReviewedEntries handles GET /api/timesheet/review
func (h *DashboardHandler) GetReviewedEntries(w http.ResponseWriter, r *http.Request) {
	reviewed, err := h.dashboard.ReviewedEntries(r.Context())
	if err != nil {
		h.handleError(w, r, "reviewed entries", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   reviewed,
		"count":  len(reviewed),
	})
}

// PutReviewStatus handles PUT /api/timesheet/review/{key}
func (h *DashboardHandler) PutReviewStatus(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("key", "Entry key is required"))
		return
	}

	var req struct {
		Status domain.ReviewStatus `json:"status"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.dashboard.SetReviewStatus(r.Context(), key, req.Status); err != nil {
		h.handleError(w, r, "review update", err)
		return
	}

	render.JSON(w, r, map[string]any{
		"status": "success",
		"data": map[string]string{
			"key":           key,
			"review_status": string(req.Status),
		},
	})
}

// ExportPayroll handles POST /api/export/payroll
func (h *DashboardHandler) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	result, err := h.reports.ExportPayroll(r.Context())
	if err != nil {
		h.handleError(w, r, "payroll export", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   result,
	})
}

// ExportVacuum handles POST /api/export/vacuum
func (h *DashboardHandler) ExportVacuum(w http.ResponseWriter, r *http.Request) {
	result, err := h.reports.ExportVacuumStatus(r.Context())
	if err != nil {
		h.handleError(w, r, "vacuum export", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   result,
	})
}

// ExportClusters handles POST /api/export/clusters
func (h *DashboardHandler) ExportClusters(w http.ResponseWriter, r *http.Request) {
	result, err := h.reports.ExportClusters(r.Context())
	if err != nil {
		h.handleError(w, r, "cluster export", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   result,
	})
}

// PostRefresh handles POST /api/refresh
func (h *DashboardHandler) PostRefresh(w http.ResponseWriter, r *http.Request) {
	ds, err := h.dashboard.Refresh(r.Context())
	if err != nil {
		h.handleError(w, r, "data refresh", err)
		return
	}
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data": map[string]any{
			"loaded_at":      ds.LoadedAt,
			"vacuum_rows":    len(ds.Vacuum),
			"timesheet_rows": len(ds.Timesheet),
			"missing_fields": ds.MissingFields,
		},
	})
}

func (h *DashboardHandler) handleError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("operation", operation),
		slog.String("request_id", infrastructure.GetTraceID(r.Context())),
		slog.String("error", err.Error()))
	h.errorHandler.HandleError(w, r, err)
}
