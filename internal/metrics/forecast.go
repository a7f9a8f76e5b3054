package metrics

import (
	"math"

	"sapflow/internal/config"
	"sapflow/pkg/contracts/domain"
)

// SapForecasts scores each forecast day for expected sap flow on a 0
// to 100 scale. The big points come from a freeze/thaw cycle (low
// below freezing, high above) and a healthy temperature swing; the
// remainder rewards highs and lows near the optimal band.
func SapForecasts(daily []domain.DailyWeather) []domain.SapForecast {
	out := make([]domain.SapForecast, 0, len(daily))
	for _, d := range daily {
		f := domain.SapForecast{
			Date:   d.Date,
			SwingF: d.HighF - d.LowF,
		}

		score := 0.0
		if d.LowF < config.FreezingPointF && d.HighF > config.FreezingPointF {
			f.FreezeThaw = true
			score += config.FreezeThawPoints
		}
		if f.SwingF >= config.GoodSwingMinF && f.SwingF <= config.GoodSwingMaxF {
			score += config.GoodSwingPoints
		}
		score += proximityPoints(d.LowF, config.OptimalLowF, 15)
		score += proximityPoints(d.HighF, config.OptimalHighF, 15)

		f.Score = int(math.Min(score, 100))
		f.Outlook = outlookFor(f.Score)
		out = append(out, f)
	}
	return out
}

// proximityPoints awards up to max points falling off linearly with
// distance from the ideal temperature, reaching zero at 20 degrees off.
func proximityPoints(actual, ideal, max float64) float64 {
	const falloff = 20.0
	dist := math.Abs(actual - ideal)
	if dist >= falloff {
		return 0
	}
	return max * (1 - dist/falloff)
}

func outlookFor(score int) string {
	switch {
	case score >= 70:
		return "excellent"
	case score >= 50:
		return "good"
	case score >= 30:
		return "fair"
	default:
		return "poor"
	}
}
