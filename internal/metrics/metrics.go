// Package metrics exposes Prometheus collectors for HTTP traffic, price
// resolution, valuations and ledger activity.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "investwise_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "investwise_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	priceResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "investwise_price_resolutions_total",
			Help: "Price resolutions by winning source (cache, intraday, daily) or unavailable",
		},
		[]string{"source", "status"},
	)

	priceSourceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "investwise_price_source_duration_seconds",
			Help:    "Latency of individual price source calls",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"source", "outcome"},
	)

	valuations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "investwise_valuations_total",
			Help: "Wealth valuations persisted, by trigger and completeness",
		},
		[]string{"trigger", "status"},
	)

	ledgerEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "investwise_ledger_events_total",
			Help: "Ledger writes by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	recomputeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "investwise_recompute_events_total",
			Help: "Asynchronous recompute requests by transport and outcome",
		},
		[]string{"transport", "outcome"},
	)
)

func init() {
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	registry.MustRegister(httpRequestsTotal)
	registry.MustRegister(httpRequestDuration)
	registry.MustRegister(priceResolutions)
	registry.MustRegister(priceSourceDuration)
	registry.MustRegister(valuations)
	registry.MustRegister(ledgerEvents)
	registry.MustRegister(recomputeEvents)
}

// Registry returns the prometheus registry
func Registry() *prometheus.Registry {
	return registry
}

// Handler returns a Gin handler for the /metrics endpoint
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
	return gin.WrapH(h)
}

// Middleware records request count and latency per matched route. Requests
// that match no route are grouped under "unmatched" to bound label cardinality.
func Middleware(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordPriceResolution counts a finished resolution.
func RecordPriceResolution(source, status string) {
	priceResolutions.WithLabelValues(source, status).Inc()
}

// ObservePriceSource records the latency of one source call.
func ObservePriceSource(source string, ok bool, d time.Duration) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	priceSourceDuration.WithLabelValues(source, outcome).Observe(d.Seconds())
}

// RecordValuation counts a persisted snapshot.
func RecordValuation(trigger, status string) {
	valuations.WithLabelValues(trigger, status).Inc()
}

// RecordLedgerEvent counts a purchase or sale write attempt.
func RecordLedgerEvent(kind, outcome string) {
	ledgerEvents.WithLabelValues(kind, outcome).Inc()
}

// RecordRecompute counts a recompute request handed to a transport.
func RecordRecompute(transport, outcome string) {
	recomputeEvents.WithLabelValues(transport, outcome).Inc()
}
