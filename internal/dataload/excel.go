package dataload

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Month tab names come in two deliberate shapes plus a catch-all:
// "2024-03", "March_2024", or anything mentioning a recent year.
var (
	isoMonthTabRe   = regexp.MustCompile(`^\d{4}-\d{2}$`)
	namedMonthTabRe = regexp.MustCompile(`^[A-Za-z]{3,}_\d{4}$`)
)

// ExcelReader loads tables from local xlsx workbooks
type ExcelReader struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewExcelReader creates a workbook reader
func NewExcelReader(logger *slog.Logger) *ExcelReader {
	return &ExcelReader{
		logger: logger.With(slog.String("component", "excel_reader")),
		now:    time.Now,
	}
}

// ReadFirstSheet returns the rows of the first sheet in a workbook,
// used for vacuum exports that carry a single table.
func (r *ExcelReader) ReadFirstSheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// MonthTab is one month sheet of a timesheet workbook
type MonthTab struct {
	Name string
	Rows [][]string
}

// ReadMonthTabs loads every month-named tab of a timesheet workbook.
// Crews keep one tab per month; anything that does not look like a
// month tab (instructions, pivot sheets) is skipped.
func (r *ExcelReader) ReadMonthTabs(path string) ([]MonthTab, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	var tabs []MonthTab
	for _, name := range f.GetSheetList() {
		if !r.isMonthTab(name) {
			r.logger.Debug("skipping non-month tab", slog.String("tab", name))
			continue
		}

		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read tab %s: %w", name, err)
		}
		tabs = append(tabs, MonthTab{Name: name, Rows: rows})
	}

	if len(tabs) == 0 {
		return nil, fmt.Errorf("workbook %s has no month tabs", path)
	}
	return tabs, nil
}

func (r *ExcelReader) isMonthTab(name string) bool {
	if isoMonthTabRe.MatchString(name) || namedMonthTabRe.MatchString(name) {
		return true
	}
	// Fallback: a tab mentioning the current or previous year is
	// almost certainly crew data.
	year := r.now().Year()
	for _, y := range []int{year, year - 1} {
		if strings.Contains(name, strconv.Itoa(y)) {
			return true
		}
	}
	return false
}
