package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/skyfetch/internal/config"
	"github.com/vzahanych/skyfetch/internal/forecast"
	"github.com/vzahanych/skyfetch/internal/owm"
	"go.uber.org/zap/zaptest"
)

// recorder keeps the render commands it receives, in order.
type recorder struct {
	calls    []string
	current  *owm.CurrentWeather
	forecast []forecast.DailySample
	message  string
}

func (r *recorder) RenderWelcome() { r.calls = append(r.calls, "welcome") }
func (r *recorder) RenderLoading() { r.calls = append(r.calls, "loading") }

func (r *recorder) RenderCurrent(c owm.CurrentWeather) {
	r.calls = append(r.calls, "current")
	r.current = &c
}

func (r *recorder) RenderForecast(days []forecast.DailySample) {
	r.calls = append(r.calls, "forecast")
	r.forecast = days
}

func (r *recorder) RenderError(message string) {
	r.calls = append(r.calls, "error")
	r.message = message
}

type stubFetcher struct {
	result *owm.Result
	err    error
	cities []string
}

func (f *stubFetcher) Fetch(ctx context.Context, city string) (*owm.Result, error) {
	f.cities = append(f.cities, city)
	return f.result, f.err
}

type searchCounter struct {
	ok, failed int
}

func (c *searchCounter) RecordSearch(ctx context.Context, success bool) {
	if success {
		c.ok++
	} else {
		c.failed++
	}
}

func fiveDayResult(offset int) *owm.Result {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).Add(-time.Duration(offset) * time.Second)
	entries := make([]forecast.Entry, 0, 40)
	for i := 0; i < 40; i++ {
		entries = append(entries, forecast.Entry{
			Timestamp:   start.Add(time.Duration(i) * 3 * time.Hour).Unix(),
			Temperature: 10,
			Description: "clear sky",
			Icon:        "01d",
		})
	}
	return &owm.Result{
		Current:  owm.CurrentWeather{City: "Paris", Temperature: 12.3},
		Forecast: owm.Forecast{City: "Paris", TimezoneOffset: offset, Entries: entries},
	}
}

func TestSearch_Success(t *testing.T) {
	fetcher := &stubFetcher{result: fiveDayResult(3600)}
	counter := &searchCounter{}
	s := NewSearcher(fetcher, "city", zaptest.NewLogger(t))
	s.SetMetricsRecorder(counter)
	r := &recorder{}

	err := s.Search(context.Background(), "  Paris  ", r)
	require.NoError(t, err)

	assert.Equal(t, []string{"Paris"}, fetcher.cities)
	assert.Equal(t, []string{"loading", "current", "forecast"}, r.calls)
	assert.Equal(t, "Paris", r.current.City)
	require.Len(t, r.forecast, 5)

	loc := forecast.CityLocation(3600)
	for _, d := range r.forecast {
		assert.Equal(t, 12, d.Time(loc).Hour())
	}
	assert.Equal(t, 1, counter.ok)
}

func TestSearch_EmptyCity(t *testing.T) {
	fetcher := &stubFetcher{}
	s := NewSearcher(fetcher, "city", zaptest.NewLogger(t))
	r := &recorder{}

	for _, city := range []string{"", "   ", "\t\n"} {
		err := s.Search(context.Background(), city, r)
		assert.ErrorIs(t, err, ErrEmptyCity)
	}

	assert.Empty(t, fetcher.cities)
	assert.Empty(t, r.calls)
}

func TestSearch_FetchError(t *testing.T) {
	fetcher := &stubFetcher{err: fmt.Errorf("%w: weather returned status 404", owm.ErrLocationNotFound)}
	counter := &searchCounter{}
	s := NewSearcher(fetcher, "city", zaptest.NewLogger(t))
	s.SetMetricsRecorder(counter)
	r := &recorder{}

	err := s.Search(context.Background(), "Atlantis", r)

	assert.ErrorIs(t, err, owm.ErrLocationNotFound)
	assert.Equal(t, []string{"loading", "error"}, r.calls)
	assert.Equal(t, NotFoundMessage, r.message)
	assert.Nil(t, r.current)
	assert.Equal(t, 1, counter.failed)
}

func TestSearch_InvalidTimezoneFallsBackToCity(t *testing.T) {
	fetcher := &stubFetcher{result: fiveDayResult(0)}
	s := NewSearcher(fetcher, "Nowhere/Special", zaptest.NewLogger(t))
	r := &recorder{}

	require.NoError(t, s.Search(context.Background(), "Paris", r))
	assert.Len(t, r.forecast, 5)
}

func TestWelcome(t *testing.T) {
	s := NewSearcher(&stubFetcher{}, "city", zaptest.NewLogger(t))
	r := &recorder{}

	s.Welcome(r)

	assert.Equal(t, []string{"welcome"}, r.calls)
}

// The current endpoint answers 404 while the forecast answers 200: only the
// error is rendered.
func TestSearch_CurrentNotFoundAgainstAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/weather" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"city":{"name":"X","timezone":0},"list":[]}`))
	}))
	defer srv.Close()

	client := owm.NewClient(config.WeatherConfig{BaseURL: srv.URL, APIKey: "k", Timeout: 5}, zaptest.NewLogger(t), nil)
	s := NewSearcher(client, "city", zaptest.NewLogger(t))
	r := &recorder{}

	err := s.Search(context.Background(), "Atlantis", r)

	require.Error(t, err)
	assert.True(t, errors.Is(err, owm.ErrLocationNotFound))
	assert.Equal(t, []string{"loading", "error"}, r.calls)
	assert.Nil(t, r.current)
	assert.Nil(t, r.forecast)
}
