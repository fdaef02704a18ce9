// Package openmeteo fetches hourly marine and wind data from the Open-Meteo
// APIs and normalizes both into domain observations.
//
// Waves always come from the Marine API. Wind comes from the Marine API when
// the marine model carries it; otherwise the general Forecast API fills in,
// and all series are truncated to the common length across both calls.
// Open-Meteo reports wind in km/h, no conversion is applied.
package openmeteo

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

	"github.com/couchcryptid/surf-session-bot/internal/domain"
	"github.com/couchcryptid/surf-session-bot/internal/observability"
)

const (
	// DefaultMarineBaseURL is the public Open-Meteo marine endpoint.
	DefaultMarineBaseURL = "https://marine-api.open-meteo.com/v1/marine"

	// DefaultForecastBaseURL is the public Open-Meteo general forecast endpoint.
	DefaultForecastBaseURL = "https://api.open-meteo.com/v1/forecast"

	// hourlyLayout is Open-Meteo's local-time hour format ("2026-01-12T06:00").
	hourlyLayout = "2006-01-02T15:04"
)

// Client queries the Open-Meteo Marine and Forecast APIs.
type Client struct {
	marineBaseURL   string
	forecastBaseURL string
	httpClient      *http.Client
	tz              string
	loc             *time.Location
	logger          *slog.Logger
	metrics         *observability.Metrics
}

// NewClient creates an Open-Meteo client. tz must be an IANA time zone name;
// all requested dates and returned timestamps are interpreted in it.
func NewClient(marineBaseURL, forecastBaseURL, tz string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) (*Client, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", tz, err)
	}
	return &Client{
		marineBaseURL:   marineBaseURL,
		forecastBaseURL: forecastBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tz:      tz,
		loc:     loc,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Location returns the time zone observations are expressed in.
func (c *Client) Location() *time.Location {
	return c.loc
}

// FetchDay returns the hourly observations covering one calendar date,
// ordered by time ascending. Missing wave height or period values become 0;
// missing wind speed stays nil so reports can tell "no data" from "calm".
func (c *Client) FetchDay(ctx context.Context, lat, lon float64, day time.Time) ([]domain.Observation, error) {
	var marine marineResponse
	if err := c.get(ctx, "marine", c.marineBaseURL, marineParams(lat, lon, day, c.tz), &marine); err != nil {
		return nil, &domain.FetchError{Source: "marine", Err: err}
	}

	h := marine.Hourly
	n := minLen(len(h.Time), len(h.WaveHeight), len(h.WavePeriod), len(h.WaveDirection))

	times := h.Time[:n]
	heights := h.WaveHeight[:n]
	periods := h.WavePeriod[:n]
	swellDirs := h.WaveDirection[:n]
	windSpeeds := truncPtr(h.WindSpeed, n)
	windDirs := truncPtr(h.WindDirection, n)

	if !anySet(windSpeeds) && n > 0 {
		var fc forecastResponse
		err := c.get(ctx, "forecast", c.forecastBaseURL, windParams(lat, lon, day, c.tz), &fc)
		if err != nil {
			// Wind is opportunistic: a failed fallback leaves it unknown
			// rather than failing the whole fetch.
			c.logger.Warn("wind fallback failed", "error", err)
		} else {
			m := minLen(n, len(fc.Hourly.Time), len(fc.Hourly.WindSpeed), len(fc.Hourly.WindDirection))
			if m > 0 {
				windSpeeds = fc.Hourly.WindSpeed[:m]
				windDirs = fc.Hourly.WindDirection[:m]
				times = times[:m]
				heights = heights[:m]
				periods = periods[:m]
				swellDirs = swellDirs[:m]
			}
		}
	}

	obs := make([]domain.Observation, 0, len(times))
	for i, ts := range times {
		at, err := time.ParseInLocation(hourlyLayout, ts, c.loc)
		if err != nil {
			return nil, &domain.FetchError{Source: "marine", Err: fmt.Errorf("parse hourly timestamp %q: %w", ts, err)}
		}
		obs = append(obs, domain.Observation{
			Time:         at,
			HeightM:      valueOrZero(heights[i]),
			PeriodS:      valueOrZero(periods[i]),
			WindSpeedKmh: ptrAt(windSpeeds, i),
			WindDirDeg:   valueOrZero(ptrAt(windDirs, i)),
			SwellDirDeg:  valueOrZero(swellDirs[i]),
		})
	}
	return obs, nil
}

// FetchDaylight returns the sunrise/sunset window for one date. Any failure
// yields an unavailable window; callers then skip daylight filtering.
func (c *Client) FetchDaylight(ctx context.Context, lat, lon float64, day time.Time) domain.DaylightWindow {
	var daily dailyResponse
	if err := c.get(ctx, "daylight", c.forecastBaseURL, daylightParams(lat, lon, day, c.tz), &daily); err != nil {
		c.logger.Warn("daylight query failed", "error", err)
		return domain.DaylightWindow{}
	}

	if len(daily.Daily.Sunrise) == 0 || len(daily.Daily.Sunset) == 0 {
		return domain.DaylightWindow{}
	}

	sunrise, err1 := time.ParseInLocation(hourlyLayout, daily.Daily.Sunrise[0], c.loc)
	sunset, err2 := time.ParseInLocation(hourlyLayout, daily.Daily.Sunset[0], c.loc)
	if err1 != nil || err2 != nil {
		c.logger.Warn("daylight timestamps unparseable",
			"sunrise", daily.Daily.Sunrise[0], "sunset", daily.Daily.Sunset[0])
		return domain.DaylightWindow{}
	}

	return domain.DaylightWindow{Sunrise: sunrise, Sunset: sunset, Available: true}
}

func (c *Client) get(ctx context.Context, api, baseURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(api).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(api, "error").Inc()
		return fmt.Errorf("%s request: %w", api, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues(api, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s API error: status %d: %s", api, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(api, "error").Inc()
		return fmt.Errorf("decode %s response: %w", api, err)
	}

	c.metrics.UpstreamRequests.WithLabelValues(api, "success").Inc()
	return nil
}

func marineParams(lat, lon float64, day time.Time, tz string) url.Values {
	v := baseParams(lat, lon, day, tz)
	v.Set("hourly", "wave_height,wave_period,wave_direction,wind_speed_10m,wind_direction_10m")
	return v
}

func windParams(lat, lon float64, day time.Time, tz string) url.Values {
	v := baseParams(lat, lon, day, tz)
	v.Set("hourly", "wind_speed_10m,wind_direction_10m")
	return v
}

func daylightParams(lat, lon float64, day time.Time, tz string) url.Values {
	v := baseParams(lat, lon, day, tz)
	v.Set("daily", "sunrise,sunset")
	return v
}

func baseParams(lat, lon float64, day time.Time, tz string) url.Values {
	date := day.Format("2006-01-02")
	return url.Values{
		"latitude":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":  {strconv.FormatFloat(lon, 'f', -1, 64)},
		"start_date": {date},
		"end_date":   {date},
		"timezone":   {tz},
	}
}

// Open-Meteo API response types. Hourly series use pointers because the API
// reports missing samples as JSON null.

type marineResponse struct {
	Hourly struct {
		Time          []string   `json:"time"`
		WaveHeight    []*float64 `json:"wave_height"`
		WavePeriod    []*float64 `json:"wave_period"`
		WaveDirection []*float64 `json:"wave_direction"`
		WindSpeed     []*float64 `json:"wind_speed_10m"`
		WindDirection []*float64 `json:"wind_direction_10m"`
	} `json:"hourly"`
}

type forecastResponse struct {
	Hourly struct {
		Time          []string   `json:"time"`
		WindSpeed     []*float64 `json:"wind_speed_10m"`
		WindDirection []*float64 `json:"wind_direction_10m"`
	} `json:"hourly"`
}

type dailyResponse struct {
	Daily struct {
		Sunrise []string `json:"sunrise"`
		Sunset  []string `json:"sunset"`
	} `json:"daily"`
}

func minLen(first int, rest ...int) int {
	n := first
	for _, v := range rest {
		if v < n {
			n = v
		}
	}
	return n
}

// truncPtr truncates a nullable series to n, padding with nils when shorter.
func truncPtr(s []*float64, n int) []*float64 {
	out := make([]*float64, n)
	copy(out, s)
	return out
}

func anySet(s []*float64) bool {
	for _, v := range s {
		if v != nil {
			return true
		}
	}
	return false
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func ptrAt(s []*float64, i int) *float64 {
	if i >= len(s) {
		return nil
	}
	return s[i]
}
