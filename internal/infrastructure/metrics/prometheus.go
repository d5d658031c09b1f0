package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the grocery price service.
// Product names never go into labels: el catálogo es abierto.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_price_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grocery_price_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPResponseSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grocery_price_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path"},
	)

	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_price_cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"backend", "operation", "result"}, // result: hit/miss/success/error
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grocery_price_cache_operation_duration_seconds",
			Help:    "Cache operation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"backend", "operation"},
	)

	CacheKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "grocery_price_cache_keys",
			Help: "Number of keys currently in cache (may include unread expired entries)",
		},
		[]string{"backend"},
	)

	SourceFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_price_source_fetches_total",
			Help: "Outbound price source fetches by outcome",
		},
		[]string{"outcome"}, // outcome: ok/cached/http_error/network_error/no_rows
	)

	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grocery_price_source_fetch_duration_seconds",
			Help:    "Outbound price source fetch duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"outcome"},
	)

	SourceParserMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_price_source_parser_matches_total",
			Help: "Documents parsed, by the parser strategy that produced rows",
		},
		[]string{"parser"},
	)

	UnknownStoresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "grocery_price_source_unknown_stores_total",
			Help: "Store rows dropped because the store name was not recognized",
		},
	)

	QuotesServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_price_quotes_served_total",
			Help: "Product quotes served, by origin of the prices",
		},
		[]string{"origin"}, // origin: source/static_table/category_estimate
	)

	FallbackActivationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_price_fallback_activations_total",
			Help: "Times the aggregator fell back to estimated prices",
		},
		[]string{"reason"}, // reason: source_error/no_rows/empty
	)

	BasketOptimizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_price_basket_optimizations_total",
			Help: "Basket comparisons computed",
		},
		[]string{"result"}, // result: recommended/no_store/error
	)

	BasketSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "grocery_price_basket_items",
			Help:    "Number of items per basket comparison",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		},
	)

	ForecastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_price_forecasts_total",
			Help: "Trend forecasts computed",
		},
		[]string{"direction", "projected"},
	)

	AlertsTriggeredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "grocery_price_alerts_triggered_total",
			Help: "Price alerts whose target was reached",
		},
	)

	SnapshotRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_price_snapshot_runs_total",
			Help: "Scheduled price snapshot runs",
		},
		[]string{"result"},
	)

	RateLimitRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_price_rate_limit_requests_total",
			Help: "Total number of requests processed by rate limiter",
		},
		[]string{"result"}, // result: allowed/blocked
	)

	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "grocery_price_stream_clients",
			Help: "Connected websocket quote stream clients",
		},
	)

	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "grocery_price_application_info",
			Help: "Application information",
		},
		[]string{"version", "environment"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, path string, statusCode int, duration float64, responseSize int64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	if responseSize > 0 {
		HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordCacheOperation records one cache call and its latency
func RecordCacheOperation(backend, operation, result string, duration float64) {
	CacheOperationsTotal.WithLabelValues(backend, operation, result).Inc()
	CacheOperationDuration.WithLabelValues(backend, operation).Observe(duration)
}

func UpdateCacheKeys(backend string, n int) {
	CacheKeys.WithLabelValues(backend).Set(float64(n))
}

// RecordSourceFetch records an outbound fetch by outcome
func RecordSourceFetch(outcome string, duration float64) {
	SourceFetchesTotal.WithLabelValues(outcome).Inc()
	if duration > 0 {
		SourceFetchDuration.WithLabelValues(outcome).Observe(duration)
	}
}

func RecordParserMatch(parser string) {
	SourceParserMatches.WithLabelValues(parser).Inc()
}

func RecordUnknownStore() {
	UnknownStoresTotal.Inc()
}

func RecordQuoteServed(origin string) {
	QuotesServedTotal.WithLabelValues(origin).Inc()
}

func RecordFallbackActivation(reason string) {
	FallbackActivationsTotal.WithLabelValues(reason).Inc()
}

func RecordBasketOptimization(result string, items int) {
	BasketOptimizationsTotal.WithLabelValues(result).Inc()
	BasketSize.Observe(float64(items))
}

func RecordForecast(direction string, projected bool) {
	ForecastsTotal.WithLabelValues(direction, strconv.FormatBool(projected)).Inc()
}

func RecordAlertTriggered() {
	AlertsTriggeredTotal.Inc()
}

func RecordSnapshotRun(result string) {
	SnapshotRunsTotal.WithLabelValues(result).Inc()
}

// RecordRateLimitResult records rate limiting results
func RecordRateLimitResult(allowed bool) {
	result := "blocked"
	if allowed {
		result = "allowed"
	}
	RateLimitRequestsTotal.WithLabelValues(result).Inc()
}

func SetApplicationInfo(version, environment string) {
	ApplicationInfo.WithLabelValues(version, environment).Set(1)
}
