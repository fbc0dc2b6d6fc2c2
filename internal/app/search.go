// Package app drives a city search from input to render commands.
package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vzahanych/skyfetch/internal/forecast"
	"github.com/vzahanych/skyfetch/internal/owm"
	"go.uber.org/zap"
)

// NotFoundMessage is shown for every failed search.
const NotFoundMessage = "Location not found"

// ErrEmptyCity is returned when the submitted city is blank. Nothing is
// fetched or rendered in that case.
var ErrEmptyCity = errors.New("empty city")

// Renderer is the presentation surface a search is rendered to.
type Renderer interface {
	RenderWelcome()
	RenderLoading()
	RenderCurrent(current owm.CurrentWeather)
	RenderForecast(days []forecast.DailySample)
	RenderError(message string)
}

// Fetcher loads current conditions and the forecast for a city.
type Fetcher interface {
	Fetch(ctx context.Context, city string) (*owm.Result, error)
}

// SearchRecorder receives the outcome of every search that reached the API.
type SearchRecorder interface {
	RecordSearch(ctx context.Context, success bool)
}

// Searcher holds no per-search state and is safe for concurrent use.
type Searcher struct {
	fetcher  Fetcher
	timezone string
	logger   *zap.Logger
	metrics  SearchRecorder
}

func NewSearcher(fetcher Fetcher, timezone string, logger *zap.Logger) *Searcher {
	return &Searcher{
		fetcher:  fetcher,
		timezone: timezone,
		logger:   logger,
	}
}

// SetMetricsRecorder sets the recorder for search outcomes.
func (s *Searcher) SetMetricsRecorder(metrics SearchRecorder) {
	s.metrics = metrics
}

// Welcome renders the initial state.
func (s *Searcher) Welcome(r Renderer) {
	r.RenderWelcome()
}

// Search trims rawCity, fetches its weather and renders the outcome to r.
// Any fetch failure ends in a single RenderError; current conditions and the
// forecast are only rendered together.
func (s *Searcher) Search(ctx context.Context, rawCity string, r Renderer) error {
	city := strings.TrimSpace(rawCity)
	if city == "" {
		return ErrEmptyCity
	}

	r.RenderLoading()

	result, err := s.fetcher.Fetch(ctx, city)
	if err != nil {
		s.record(ctx, false)
		s.logger.Info("Search failed", zap.String("city", city), zap.Error(err))
		r.RenderError(NotFoundMessage)
		return err
	}

	loc, err := s.location(result.Forecast.TimezoneOffset)
	if err != nil {
		s.logger.Warn("Invalid forecast timezone, using city offset",
			zap.String("timezone", s.timezone),
			zap.Error(err))
		loc = forecast.CityLocation(result.Forecast.TimezoneOffset)
	}

	days := forecast.Sample(result.Forecast.Entries, loc)

	r.RenderCurrent(result.Current)
	r.RenderForecast(days)

	s.record(ctx, true)
	s.logger.Debug("Search completed",
		zap.String("city", city),
		zap.Int("forecast_days", len(days)))

	return nil
}

func (s *Searcher) location(offset int) (*time.Location, error) {
	return forecast.ResolveLocation(s.timezone, offset)
}

func (s *Searcher) record(ctx context.Context, success bool) {
	if s.metrics != nil {
		s.metrics.RecordSearch(ctx, success)
	}
}
