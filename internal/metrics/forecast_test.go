package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sapflow/pkg/contracts/domain"
)

func TestSapForecasts(t *testing.T) {
	d := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		low, high  float64
		freezeThaw bool
		minScore   int
		maxScore   int
		outlook    string
	}{
		{
			name: "ideal sap day", low: 25, high: 45,
			freezeThaw: true, minScore: 100, maxScore: 100, outlook: "excellent",
		},
		{
			name: "freeze thaw but weak swing", low: 30, high: 40,
			freezeThaw: true, minScore: 50, maxScore: 69, outlook: "good",
		},
		{
			name: "warm spell no freeze", low: 42, high: 55,
			freezeThaw: false, minScore: 0, maxScore: 29, outlook: "poor",
		},
		{
			name: "deep freeze all day", low: 5, high: 20,
			freezeThaw: false, minScore: 30, maxScore: 49, outlook: "fair",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forecasts := SapForecasts([]domain.DailyWeather{{Date: d, LowF: tt.low, HighF: tt.high}})
			require.Len(t, forecasts, 1)

			f := forecasts[0]
			assert.Equal(t, tt.freezeThaw, f.FreezeThaw)
			assert.InDelta(t, tt.high-tt.low, f.SwingF, 0.001)
			assert.GreaterOrEqual(t, f.Score, tt.minScore)
			assert.LessOrEqual(t, f.Score, tt.maxScore)
			assert.Equal(t, tt.outlook, f.Outlook)
		})
	}
}

func TestSapForecastScoreCapped(t *testing.T) {
	forecasts := SapForecasts([]domain.DailyWeather{
		{Date: time.Now(), LowF: 25, HighF: 45},
	})
	require.Len(t, forecasts, 1)
	assert.LessOrEqual(t, forecasts[0].Score, 100)
}
