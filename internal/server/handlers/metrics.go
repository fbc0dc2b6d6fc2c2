package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/skyfetch/internal/server/middlewares"
)

// HTTPMetricsProvider exposes request metrics collected by middleware.
type HTTPMetricsProvider interface {
	Snapshot() middlewares.HTTPSnapshot
}

// AppMetrics holds search and upstream counters.
type AppMetrics struct {
	mutex                sync.RWMutex
	searchesTotal        int64
	searchErrors         int64
	weatherServiceCalls  map[string]int64
	weatherServiceErrors map[string]int64
}

type MetricsHandler struct {
	http       HTTPMetricsProvider
	appMetrics *AppMetrics
}

func NewMetricsHandler(httpMetrics HTTPMetricsProvider) *MetricsHandler {
	return &MetricsHandler{
		http: httpMetrics,
		appMetrics: &AppMetrics{
			weatherServiceCalls:  make(map[string]int64),
			weatherServiceErrors: make(map[string]int64),
		},
	}
}

// RecordSearch records the outcome of a search that reached the upstream API.
func (h *MetricsHandler) RecordSearch(ctx context.Context, success bool) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.searchesTotal++
	if !success {
		h.appMetrics.searchErrors++
	}
	h.appMetrics.mutex.Unlock()
}

// RecordWeatherServiceCall records one upstream API request.
func (h *MetricsHandler) RecordWeatherServiceCall(ctx context.Context, service string, success bool) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.weatherServiceCalls[service]++
	if !success {
		h.appMetrics.weatherServiceErrors[service]++
	}
	h.appMetrics.mutex.Unlock()
}

// ServeMetrics writes the counters in the Prometheus text format.
func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	var b strings.Builder

	if h.http != nil {
		snap := h.http.Snapshot()

		writeHeader(&b, "http_requests_total", "Total number of HTTP requests", "counter")
		for _, key := range sortedKeys(snap.RequestsTotal) {
			fmt.Fprintf(&b, "http_requests_total{route_status=%q} %d\n", key, snap.RequestsTotal[key])
		}

		writeHeader(&b, "http_request_duration_seconds_avg", "Average duration of HTTP requests", "gauge")
		fmt.Fprintf(&b, "http_request_duration_seconds_avg %.6f\n", snap.AvgDurationSeconds)

		writeHeader(&b, "http_active_requests", "Number of active HTTP requests", "gauge")
		fmt.Fprintf(&b, "http_active_requests %d\n", snap.ActiveRequests)
	}

	h.appMetrics.mutex.RLock()
	defer h.appMetrics.mutex.RUnlock()

	writeHeader(&b, "skyfetch_searches_total", "Total searches sent upstream", "counter")
	fmt.Fprintf(&b, "skyfetch_searches_total %d\n", h.appMetrics.searchesTotal)

	writeHeader(&b, "skyfetch_search_errors_total", "Total failed searches", "counter")
	fmt.Fprintf(&b, "skyfetch_search_errors_total %d\n", h.appMetrics.searchErrors)

	writeHeader(&b, "weather_service_calls_total", "Total weather service calls", "counter")
	for _, service := range sortedKeys(h.appMetrics.weatherServiceCalls) {
		fmt.Fprintf(&b, "weather_service_calls_total{endpoint=%q} %d\n", service, h.appMetrics.weatherServiceCalls[service])
	}

	writeHeader(&b, "weather_service_errors_total", "Total weather service errors", "counter")
	for _, service := range sortedKeys(h.appMetrics.weatherServiceErrors) {
		fmt.Fprintf(&b, "weather_service_errors_total{endpoint=%q} %d\n", service, h.appMetrics.weatherServiceErrors[service])
	}

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

func writeHeader(b *strings.Builder, name, help, kind string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
