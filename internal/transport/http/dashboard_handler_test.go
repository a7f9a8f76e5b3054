package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sapflow/internal/approval"
	"sapflow/internal/config"
	"sapflow/internal/dataload"
	apierrors "sapflow/internal/errors"
	"sapflow/internal/exporter"
	"sapflow/internal/services"
	"sapflow/internal/shared/testutil"
	"sapflow/pkg/contracts/domain"
)

type stubWeather struct{}

func (s *stubWeather) AllSites(ctx context.Context) ([]domain.SiteWeather, error) {
	return []domain.SiteWeather{{Site: "NY"}}, nil
}

func writeWorkbook(t *testing.T, path, sheet string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	if f.GetSheetName(0) != sheet {
		require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	}
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	dir := t.TempDir()
	logger, _ := testutil.NewTestLogger(t)

	writeWorkbook(t, filepath.Join(dir, "vacuum.xlsx"), "Sheet1", [][]any{
		{"Sensor Name", "Vacuum", "Timestamp", "Mainline", "Notes"},
		{"RHAS13", 21.5, "2026-03-10 08:00", "RHAS13", ""},
		{"RHAS14", 10.0, "2026-03-10 08:00", "RHAS13", "vacuum leak"},
	})
	writeWorkbook(t, filepath.Join(dir, "timesheet.xlsx"), "2026-03", [][]any{
		{"Employee Name", "Date", "Job Type", "Hours", "Mainline", "Taps Put In"},
		{"Sam", "2026-03-09", "Maple tapping", 8, "RHAS13", 120},
		{"Sam", "2026-03-10", "Vacuum leak repair", 4, "RHAS13", 0},
	})

	cfg := config.Default()
	cfg.Paths.ReportsDir = dir
	cfg.Sources.Vacuum.WorkbookPath = filepath.Join(dir, "vacuum.xlsx")
	cfg.Sources.Timesheet.WorkbookPath = filepath.Join(dir, "timesheet.xlsx")

	loader := dataload.NewLoader(cfg.Sources, nil, dataload.NewExcelReader(logger), nil, logger)
	dashboard := services.NewDashboardService(cfg, loader, approval.NewStore(logger), &stubWeather{}, nil, logger)
	reports := services.NewReportService(dashboard, exporter.NewCSVWriter(cfg, logger), logger)

	handler := NewDashboardHandler(dashboard, reports, logger, apierrors.NewErrorHandler(logger, false))

	r := chi.NewRouter()
	r.Mount("/api", handler.Routes())
	return r
}

func doRequest(t *testing.T, router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestGetOverview(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/overview", "")
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "success", envelope["status"])

	data := envelope["data"].(map[string]any)
	assert.Equal(t, float64(2), data["sensors"])
}

func TestGetVacuumStatus(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/vacuum", "")
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, float64(2), envelope["count"])
}

func TestGetWeather(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/weather", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPutReviewStatusFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/timesheet/review", "")
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	entries := envelope["data"].([]any)
	require.NotEmpty(t, entries)
	key := entries[0].(map[string]any)["employee"].(string) + "|2026-03-09|Maple tapping|RHAS13"

	rec = doRequest(t, router, http.MethodPut, "/api/timesheet/review/"+url.PathEscape(key), `{"status":"approved"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/timesheet/review", "")
	envelope = decodeEnvelope(t, rec)
	approved := 0
	for _, e := range envelope["data"].([]any) {
		if e.(map[string]any)["status"] == "approved" {
			approved++
		}
	}
	assert.Equal(t, 1, approved)
}

func TestPutReviewStatusUnknownEntry(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPut, "/api/timesheet/review/nope", `{"status":"approved"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestPutReviewStatusBadBody(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPut, "/api/timesheet/review/some-key", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostRefresh(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, float64(2), data["vacuum_rows"])
}

func TestExportPayrollRequiresApprovedRows(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/export/payroll", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code, "nothing approved yet")
}
