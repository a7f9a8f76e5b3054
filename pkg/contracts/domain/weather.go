package domain

import (
	"time"
)

// DailyWeather is one day of site weather in Fahrenheit
type DailyWeather struct {
	Date          time.Time `json:"date"`
	HighF         float64   `json:"high_f"`
	LowF          float64   `json:"low_f"`
	AboveFreezing bool      `json:"above_freezing"`
}

// HourlyTemperature is one hourly temperature sample
type HourlyTemperature struct {
	Time  time.Time `json:"time"`
	TempF float64   `json:"temp_f"`
}

// SiteWeather bundles the forecast for one site
type SiteWeather struct {
	Site   string              `json:"site"`
	Daily  []DailyWeather      `json:"daily"`
	Hourly []HourlyTemperature `json:"hourly,omitempty"`
}

// SapForecast scores a day for expected sap flow, 0 to 100
type SapForecast struct {
	Date       time.Time `json:"date"`
	Score      int       `json:"score"`
	FreezeThaw bool      `json:"freeze_thaw"`
	SwingF     float64   `json:"swing_f"`
	Outlook    string    `json:"outlook"`
}
