// Package forecast runs the scoring pipeline (fetch, daylight filter,
// calibration, scoring, window grouping) and renders the chat reports.
//
// Every fetch or render failure is absorbed at this boundary and comes back
// as user-facing text; report methods never return errors and never panic,
// so a bad upstream day cannot kill a dialogue turn.
package forecast

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/surf-session-bot/internal/adjust"
	"github.com/couchcryptid/surf-session-bot/internal/catalog"
	"github.com/couchcryptid/surf-session-bot/internal/domain"
	"github.com/couchcryptid/surf-session-bot/internal/observability"
)

// Provider fetches normalized hourly observations for a coordinate and date.
type Provider interface {
	// FetchDay returns one calendar date's observations, time ascending.
	FetchDay(ctx context.Context, lat, lon float64, day time.Time) ([]domain.Observation, error)

	// FetchDaylight returns the sunrise/sunset window, unavailable on failure.
	FetchDaylight(ctx context.Context, lat, lon float64, day time.Time) domain.DaylightWindow
}

// Service wires the provider, calibration store, and catalog into the
// scoring pipeline and the report renderers.
type Service struct {
	provider     Provider
	store        adjust.Store
	catalog      catalog.Catalog
	loc          *time.Location
	bestDayRange int
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// NewService creates the forecast service. bestDayRange is how many days the
// best-day report scans, starting today.
func NewService(provider Provider, store adjust.Store, cat catalog.Catalog, loc *time.Location, bestDayRange int, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		provider:     provider,
		store:        store,
		catalog:      cat,
		loc:          loc,
		bestDayRange: bestDayRange,
		logger:       logger,
		metrics:      metrics,
	}
}

// Location returns the time zone dates are interpreted in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// dayConditions is one fully processed day: filtered, calibrated, scored.
type dayConditions struct {
	date        time.Time
	obs         []domain.Observation
	daylight    domain.DaylightWindow
	adjustments domain.AdjustmentSet
	windows     []domain.Window
}

// buildDay runs the full pipeline for one beach and date. Returns
// domain.ErrNoData when the upstream succeeded with an empty series.
func (s *Service) buildDay(ctx context.Context, spot catalog.Spot, beach catalog.Beach, date time.Time) (dayConditions, error) {
	obs, err := s.provider.FetchDay(ctx, beach.Lat, beach.Lon, date)
	if err != nil {
		return dayConditions{}, err
	}
	if len(obs) == 0 {
		return dayConditions{}, domain.ErrNoData
	}

	daylight := s.provider.FetchDaylight(ctx, beach.Lat, beach.Lon, date)
	obs = domain.FilterDaylight(obs, daylight)

	adjustments, err := s.store.Get(spot.Key, beach.Key)
	if err != nil {
		// Calibration is a refinement, not a requirement.
		s.logger.Warn("adjustment lookup failed, using raw data",
			"spot", spot.Key, "beach", beach.Key, "error", err)
		adjustments = domain.AdjustmentSet{}
	}
	adjustments.ApplyAll(obs)

	domain.ScoreAll(obs)

	return dayConditions{
		date:        date,
		obs:         obs,
		daylight:    daylight,
		adjustments: adjustments,
		windows:     domain.GroupBestWindows(obs, domain.DefaultWindowThreshold, domain.DefaultMaxWindows),
	}, nil
}

// reportFailure records a degraded report and classifies the reason.
func (s *Service) reportFailure(kind string, err error) {
	reason := "fetch"
	if errors.Is(err, domain.ErrNoData) {
		reason = "no_data"
	}
	s.metrics.ReportFailures.WithLabelValues(kind, reason).Inc()
	s.logger.Warn("report degraded to failure message", "kind", kind, "reason", reason, "error", err)
}

// Summary statistics over a scored day. Ranges ignore non-positive values so
// a few empty hours don't drag the minimum to zero.

func heightRange(obs []domain.Observation) (float64, float64) {
	return rangeOf(obs, func(o domain.Observation) float64 { return o.HeightM })
}

func periodRange(obs []domain.Observation) (float64, float64) {
	return rangeOf(obs, func(o domain.Observation) float64 { return o.PeriodS })
}

func rangeOf(obs []domain.Observation, field func(domain.Observation) float64) (float64, float64) {
	low, high := 0.0, 0.0
	seen := false
	for _, o := range obs {
		v := field(o)
		if v <= 0 {
			continue
		}
		if !seen || v < low {
			low = v
		}
		if !seen || v > high {
			high = v
		}
		seen = true
	}
	return low, high
}

func meanScore(obs []domain.Observation) float64 {
	if len(obs) == 0 {
		return 0
	}
	sum := 0.0
	for _, o := range obs {
		sum += o.Score
	}
	return sum / float64(len(obs))
}

func peakScore(obs []domain.Observation) float64 {
	peak := 0.0
	for _, o := range obs {
		if o.Score > peak {
			peak = o.Score
		}
	}
	return peak
}

// bestHour returns the highest-scoring observation. Ties keep the earliest.
func bestHour(obs []domain.Observation) domain.Observation {
	best := obs[0]
	for _, o := range obs[1:] {
		if o.Score > best.Score {
			best = o
		}
	}
	return best
}
