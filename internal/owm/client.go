// Package owm talks to the OpenWeatherMap 2.5 current-weather and forecast
// endpoints.
package owm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/vzahanych/skyfetch/internal/config"
	"github.com/vzahanych/skyfetch/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	EndpointCurrent  = "weather"
	EndpointForecast = "forecast"

	// Units is the only unit system requested; temperatures are Celsius.
	Units = "metric"
)

// ErrLocationNotFound is the single failure category of Fetch. Status,
// transport and decode failures all wrap it.
var ErrLocationNotFound = errors.New("location not found")

// CallRecorder receives one call per upstream request.
type CallRecorder interface {
	RecordWeatherServiceCall(ctx context.Context, service string, success bool)
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
	tele    *telemetry.Telemetry
	metrics CallRecorder
}

func NewClient(cfg config.WeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger,
		tele:   tele,
	}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return c
}

// SetMetricsRecorder sets the recorder for upstream calls.
func (c *Client) SetMetricsRecorder(metrics CallRecorder) {
	c.metrics = metrics
}

// Fetch requests current conditions and the forecast for city in parallel and
// waits for both. If either request fails the whole call fails; there is no
// partial result.
func (c *Client) Fetch(ctx context.Context, city string) (*Result, error) {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "owm.Fetch")
	defer span.End()

	span.SetAttributes(attribute.String("city", city))

	var (
		wg          sync.WaitGroup
		current     currentPayload
		fc          forecastPayload
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		currentErr = c.get(ctx, EndpointCurrent, city, &current)
	}()
	go func() {
		defer wg.Done()
		forecastErr = c.get(ctx, EndpointForecast, city, &fc)
	}()
	wg.Wait()

	if err := errors.Join(currentErr, forecastErr); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		c.tele.RecordError(ctx, err)
		c.logger.Warn("Weather lookup failed",
			zap.String("city", city),
			zap.Error(err))
		return nil, err
	}

	result := &Result{
		Current:  current.toCurrent(),
		Forecast: fc.toForecast(),
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("forecast_entries", len(result.Forecast.Entries)),
	)

	c.logger.Debug("Weather lookup completed",
		zap.String("city", city),
		zap.String("resolved_city", result.Current.City),
		zap.Int("forecast_entries", len(result.Forecast.Entries)))

	return result, nil
}

func (c *Client) get(ctx context.Context, endpoint, city string, out interface{}) (err error) {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "owm."+endpoint)
	defer span.End()

	defer func() {
		span.SetAttributes(attribute.Bool("success", err == nil))
		if c.metrics != nil {
			c.metrics.RecordWeatherServiceCall(ctx, endpoint, err == nil)
		}
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrLocationNotFound, endpoint, err)
		}
	}

	u, err := url.Parse(fmt.Sprintf("%s/%s", c.baseURL, endpoint))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLocationNotFound, endpoint, err)
	}

	q := u.Query()
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", Units)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLocationNotFound, endpoint, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLocationNotFound, endpoint, redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned status %d", ErrLocationNotFound, endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: malformed response: %v", ErrLocationNotFound, endpoint, err)
	}

	return nil
}

// redact strips the API key from transport errors, which quote the full URL.
func redact(err error, secret string) string {
	msg := err.Error()
	if secret == "" {
		return msg
	}
	return strings.ReplaceAll(msg, secret, "***")
}
