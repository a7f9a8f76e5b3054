package dataload

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sapflow/internal/shared/testutil"
)

func testExcelReader(t *testing.T) *ExcelReader {
	logger, _ := testutil.NewTestLogger(t)
	r := NewExcelReader(logger)
	r.now = func() time.Time { return time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC) }
	return r
}

func TestIsMonthTab(t *testing.T) {
	r := testExcelReader(t)

	tests := []struct {
		tab  string
		want bool
	}{
		{"2024-03", true},
		{"2023-11", true},
		{"March_2024", true},
		{"January_2023", true},
		{"Crew 2024", true},  // contains the current year
		{"Notes 2023", true}, // previous year still counts
		{"Instructions", false},
		{"Pivot", false},
		{"Summary 2019", false},
	}

	for _, tt := range tests {
		t.Run(tt.tab, func(t *testing.T) {
			assert.Equal(t, tt.want, r.isMonthTab(tt.tab))
		})
	}
}

func TestReadMonthTabs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesheets.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "2024-03"))
	require.NoError(t, f.SetSheetRow("2024-03", "A1", &[]string{"Employee", "Date", "Hours"}))
	require.NoError(t, f.SetSheetRow("2024-03", "A2", &[]string{"Ada", "2024-03-11", "8"}))

	_, err := f.NewSheet("Instructions")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Instructions", "A1", &[]string{"read me"}))

	_, err = f.NewSheet("2024-02")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("2024-02", "A1", &[]string{"Employee", "Date", "Hours"}))

	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tabs, err := testExcelReader(t).ReadMonthTabs(path)
	require.NoError(t, err)
	require.Len(t, tabs, 2)

	names := []string{tabs[0].Name, tabs[1].Name}
	assert.ElementsMatch(t, []string{"2024-03", "2024-02"}, names)
}

func TestReadMonthTabsNoMonthSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Instructions"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := testExcelReader(t).ReadMonthTabs(path)
	assert.Error(t, err)
}
