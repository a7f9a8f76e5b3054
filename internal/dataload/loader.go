// Package dataload fetches and normalizes the two operational tables,
// vacuum readings and crew timesheets, from Google Sheets or local
// Excel workbooks, behind a TTL cache.
package dataload

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"sapflow/internal/config"
	"sapflow/internal/infrastructure"
	"sapflow/pkg/contracts/domain"
)

// Dataset is one consistent load of both tables
type Dataset struct {
	Vacuum    []domain.VacuumReading  `json:"-"`
	Timesheet []domain.TimesheetEntry `json:"-"`

	// MissingFields records, per table, the canonical fields no
	// header resolved for. Metrics depending on them are skipped.
	MissingFields map[string][]string `json:"missing_fields,omitempty"`

	LoadedAt time.Time `json:"loaded_at"`
}

// SkippedFor lists the fields a metric over the named table cannot rely on
func (d *Dataset) SkippedFor(table string) []string {
	if d.MissingFields == nil {
		return nil
	}
	return d.MissingFields[table]
}

// HasField reports whether the table resolved the canonical field
func (d *Dataset) HasField(table, field string) bool {
	for _, missing := range d.SkippedFor(table) {
		if missing == field {
			return false
		}
	}
	return true
}

// Loader owns source access and the dataset cache
type Loader struct {
	cfg       config.SourcesConfig
	sheets    *SheetsClient
	excel     *ExcelReader
	cache     *ttlCache
	logger    *slog.Logger
	providers *infrastructure.OTelProviders
}

// NewLoader wires a loader from its parts. The sheets client may be
// nil when only workbook sources are configured.
func NewLoader(cfg config.SourcesConfig, sheets *SheetsClient, excel *ExcelReader, providers *infrastructure.OTelProviders, logger *slog.Logger) *Loader {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = config.DataCacheTTL
	}
	return &Loader{
		cfg:       cfg,
		sheets:    sheets,
		excel:     excel,
		cache:     newTTLCache(ttl),
		logger:    logger.With(slog.String("component", "loader")),
		providers: providers,
	}
}

// Load returns the current dataset, serving from cache inside the TTL.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	dataset, hit, err := l.cache.get(ctx, l.fetch)
	l.providers.RecordCache(ctx, "dataset", hit)
	if err != nil {
		return nil, err
	}
	return dataset, nil
}

// Invalidate drops the cache so the next Load refetches
func (l *Loader) Invalidate() {
	l.cache.invalidate()
	l.logger.Info("dataset cache invalidated")
}

// fetch loads both tables in parallel
func (l *Loader) fetch(ctx context.Context) (*Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, config.SourceFetchTimeout)
	defer cancel()

	dataset := &Dataset{MissingFields: make(map[string][]string)}

	var vacuum VacuumTable
	var timesheet TimesheetTable

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		table, err := l.fetchVacuum(gctx)
		l.providers.RecordFetch(gctx, "vacuum", len(table.Readings), time.Since(start), err)
		if err != nil {
			return fmt.Errorf("vacuum source: %w", err)
		}
		vacuum = table
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		table, err := l.fetchTimesheet(gctx)
		l.providers.RecordFetch(gctx, "timesheet", len(table.Entries), time.Since(start), err)
		if err != nil {
			return fmt.Errorf("timesheet source: %w", err)
		}
		timesheet = table
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dataset.Vacuum = vacuum.Readings
	dataset.Timesheet = timesheet.Entries
	if len(vacuum.MissingFields) > 0 {
		dataset.MissingFields["vacuum"] = vacuum.MissingFields
	}
	if len(timesheet.MissingFields) > 0 {
		dataset.MissingFields["timesheet"] = timesheet.MissingFields
	}
	dataset.LoadedAt = time.Now()

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("vacuum_rows", len(dataset.Vacuum)),
		slog.Int("timesheet_rows", len(dataset.Timesheet)))

	return dataset, nil
}

func (l *Loader) fetchVacuum(ctx context.Context) (VacuumTable, error) {
	src := l.cfg.Vacuum
	switch {
	case src.SpreadsheetID != "":
		if l.sheets == nil {
			return VacuumTable{}, fmt.Errorf("sheets client not configured")
		}
		rows, err := l.sheets.FetchRange(ctx, src.SpreadsheetID, src.Range)
		if err != nil {
			return VacuumTable{}, err
		}
		return NormalizeVacuum(rows, l.logger), nil

	case src.WorkbookPath != "":
		rows, err := l.excel.ReadFirstSheet(src.WorkbookPath)
		if err != nil {
			return VacuumTable{}, err
		}
		return NormalizeVacuum(rows, l.logger), nil

	default:
		return VacuumTable{}, fmt.Errorf("no data source configured for vacuum table")
	}
}

func (l *Loader) fetchTimesheet(ctx context.Context) (TimesheetTable, error) {
	src := l.cfg.Timesheet
	switch {
	case src.SpreadsheetID != "":
		if l.sheets == nil {
			return TimesheetTable{}, fmt.Errorf("sheets client not configured")
		}
		rows, err := l.sheets.FetchRange(ctx, src.SpreadsheetID, src.Range)
		if err != nil {
			return TimesheetTable{}, err
		}
		return NormalizeTimesheet(rows, "", l.logger), nil

	case src.WorkbookPath != "":
		tabs, err := l.excel.ReadMonthTabs(src.WorkbookPath)
		if err != nil {
			return TimesheetTable{}, err
		}
		var merged TimesheetTable
		for _, tab := range tabs {
			merged.Merge(NormalizeTimesheet(tab.Rows, tab.Name, l.logger))
		}
		return merged, nil

	default:
		return TimesheetTable{}, fmt.Errorf("no data source configured for timesheet table")
	}
}
