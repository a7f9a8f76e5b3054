// Package weather fetches site forecasts from the Open-Meteo API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sapflow/internal/config"
	"sapflow/pkg/contracts/domain"
)

// Client calls the Open-Meteo forecast endpoint. Open-Meteo needs no
// API key; requests are plain GETs with lat/lon query parameters.
type Client struct {
	cfg    config.WeatherConfig
	http   *http.Client
	logger *slog.Logger
}

// NewClient builds a weather client from configuration
func NewClient(cfg config.WeatherConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.WeatherRequestTimeout
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger.With(slog.String("component", "weather")),
	}
}

// openMeteoResponse mirrors the fields we request from the API
type openMeteoResponse struct {
	Daily struct {
		Time    []string  `json:"time"`
		TempMax []float64 `json:"temperature_2m_max"`
		TempMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
	Hourly struct {
		Time []string  `json:"time"`
		Temp []float64 `json:"temperature_2m"`
	} `json:"hourly"`
}

// SiteWeather fetches the daily and hourly forecast for one site,
// covering the configured past and forecast day windows.
func (c *Client) SiteWeather(ctx context.Context, site config.Site) (domain.SiteWeather, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(site.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(site.Longitude, 'f', 4, 64))
	q.Set("daily", "temperature_2m_max,temperature_2m_min")
	q.Set("hourly", "temperature_2m")
	q.Set("temperature_unit", "fahrenheit")
	q.Set("timezone", site.Timezone)
	q.Set("past_days", strconv.Itoa(c.cfg.PastDays))
	q.Set("forecast_days", strconv.Itoa(c.cfg.ForecastDays))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return domain.SiteWeather{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.SiteWeather{}, fmt.Errorf("fetch weather for %s: %w", site.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.SiteWeather{}, fmt.Errorf("weather api returned %d for %s: %s", resp.StatusCode, site.Name, body)
	}

	var parsed openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.SiteWeather{}, fmt.Errorf("decode weather response: %w", err)
	}

	loc, err := time.LoadLocation(site.Timezone)
	if err != nil {
		loc = time.UTC
	}

	out := domain.SiteWeather{Site: site.Name}
	for i, day := range parsed.Daily.Time {
		if i >= len(parsed.Daily.TempMax) || i >= len(parsed.Daily.TempMin) {
			break
		}
		date, err := time.ParseInLocation("2006-01-02", day, loc)
		if err != nil {
			c.logger.Warn("skipping malformed forecast date", slog.String("date", day))
			continue
		}
		high, low := parsed.Daily.TempMax[i], parsed.Daily.TempMin[i]
		out.Daily = append(out.Daily, domain.DailyWeather{
			Date:          date,
			HighF:         high,
			LowF:          low,
			AboveFreezing: high > config.FreezingPointF || low > config.FreezingPointF,
		})
	}
	for i, hour := range parsed.Hourly.Time {
		if i >= len(parsed.Hourly.Temp) {
			break
		}
		ts, err := time.ParseInLocation("2006-01-02T15:04", hour, loc)
		if err != nil {
			continue
		}
		out.Hourly = append(out.Hourly, domain.HourlyTemperature{Time: ts, TempF: parsed.Hourly.Temp[i]})
	}

	return out, nil
}

// AllSites fetches weather for every configured site. A failed site is
// logged and skipped so one bad fetch does not blank the whole panel;
// the error return is non-nil only when every site failed.
func (c *Client) AllSites(ctx context.Context) ([]domain.SiteWeather, error) {
	var out []domain.SiteWeather
	var lastErr error

	for _, site := range config.Sites {
		w, err := c.SiteWeather(ctx, site)
		if err != nil {
			c.logger.WarnContext(ctx, "site weather fetch failed",
				slog.String("site", site.Name),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}
		out = append(out, w)
	}

	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}
