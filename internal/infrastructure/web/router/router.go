package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "grocery-price-service/docs"
	"grocery-price-service/internal/infrastructure/config"
	"grocery-price-service/internal/infrastructure/metrics"
	"grocery-price-service/internal/infrastructure/ratelimit"
	"grocery-price-service/internal/infrastructure/web/handlers"
	"grocery-price-service/internal/infrastructure/web/middleware"
)

// Handlers agrupa los handlers HTTP montados por el router
type Handlers struct {
	Health *handlers.HealthHandler
	Prices *handlers.PriceHandler
	Basket *handlers.BasketHandler
	Trends *handlers.TrendHandler
	Alerts *handlers.AlertHandler
	Stream *handlers.StreamHandler
}

// New arma el router con la cadena de middlewares:
// tracing -> metrics -> logging -> rate limit -> auth -> handler
func New(h Handlers, rateLimiter *ratelimit.RateLimitMiddleware, authCfg config.AuthConfig) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.HandleFunc("/docs", redirectToSwagger)
	r.HandleFunc("/docs/", redirectToSwagger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/prices", h.Prices.GetPrices).Methods(http.MethodGet)
	api.HandleFunc("/stores", h.Prices.ListStores).Methods(http.MethodGet)
	api.HandleFunc("/cache", h.Prices.ClearCache).Methods(http.MethodDelete)
	api.HandleFunc("/basket", h.Basket.CompareBasket).Methods(http.MethodPost)
	api.HandleFunc("/trends", h.Trends.GetTrend).Methods(http.MethodGet)
	api.HandleFunc("/trends/forecast", h.Trends.Forecast).Methods(http.MethodPost)
	api.HandleFunc("/alerts", h.Alerts.CreateAlert).Methods(http.MethodPost)
	api.HandleFunc("/alerts", h.Alerts.ListAlerts).Methods(http.MethodGet)
	api.HandleFunc("/alerts/evaluate", h.Alerts.EvaluateAlerts).Methods(http.MethodPost)
	api.HandleFunc("/stream", h.Stream.Stream).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	var handler http.Handler = r
	handler = middleware.NewAuthMiddleware(authCfg).Handler(handler)
	if rateLimiter != nil {
		handler = rateLimiter.Handler(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = metrics.HTTPMetricsMiddleware(handler)
	handler = middleware.RequestTracingMiddleware(handler)
	return handler
}

func redirectToSwagger(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":"NOT_FOUND","message":"route not found","code":"404"}`))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = w.Write([]byte(`{"error":"METHOD_NOT_ALLOWED","message":"method not allowed","code":"405"}`))
}
