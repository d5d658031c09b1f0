package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-price-service/internal/application/services"
	"grocery-price-service/internal/domain/entities"
	"grocery-price-service/internal/infrastructure/config"
	"grocery-price-service/internal/infrastructure/ratelimit"
	"grocery-price-service/internal/infrastructure/repositories/cache"
	"grocery-price-service/internal/infrastructure/repositories/history"
	"grocery-price-service/internal/infrastructure/web/handlers"
)

// fixedQuotes siempre responde el mismo quote autoritativo
type fixedQuotes struct{}

func (fixedQuotes) GetPrices(ctx context.Context, product string, quantity float64) (*entities.ProductQuote, error) {
	q := entities.NewProductQuote(product, []entities.StorePrice{
		{Store: entities.StoreLider, Price: 1000, InStock: true, IsAuthoritative: true},
		{Store: entities.StoreJumbo, Price: 1100, InStock: true, IsAuthoritative: true},
	}, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	return q.Scale(quantity)
}

func (fixedQuotes) ClearCache(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T, auth config.AuthConfig, rl config.RateLimitConfig) http.Handler {
	t.Helper()
	prices := fixedQuotes{}
	store := history.NewMemoryStore()

	h := Handlers{
		Health: handlers.NewHealthHandler(cache.NewMemoryCache(), store),
		Prices: handlers.NewPriceHandler(prices),
		Basket: handlers.NewBasketHandler(services.NewBasketService(prices, 2, 0)),
		Trends: handlers.NewTrendHandler(services.NewTrendService(store, 30)),
		Alerts: handlers.NewAlertHandler(services.NewAlertService(prices)),
		Stream: handlers.NewStreamHandler(prices, time.Second),
	}
	return New(h, ratelimit.NewRateLimitMiddleware(rl), auth)
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter(t, config.AuthConfig{}, config.RateLimitConfig{})

	tests := []struct {
		method       string
		target       string
		expectedCode int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/docs", http.StatusMovedPermanently},
		{http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{http.MethodGet, "/api/v1/prices?product=arroz&quantity=2", http.StatusOK},
		{http.MethodGet, "/api/v1/prices", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/stores", http.StatusOK},
		{http.MethodDelete, "/api/v1/cache", http.StatusOK},
		{http.MethodGet, "/api/v1/alerts", http.StatusOK},
		{http.MethodGet, "/api/v1/trends?product=arroz&store=lider", http.StatusNotFound},
		{http.MethodPost, "/api/v1/prices", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/v1/nada", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.expectedCode, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_PricesScaledByQuantity(t *testing.T) {
	r := newTestRouter(t, config.AuthConfig{}, config.RateLimitConfig{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prices?product=arroz&quantity=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		BestPrice struct {
			Store string  `json:"store"`
			Price float64 `json:"price"`
		} `json:"best_price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "lider", body.BestPrice.Store)
	assert.InDelta(t, 3000.0, body.BestPrice.Price, 0.001)
}

func TestRouter_AuthAndRateLimit(t *testing.T) {
	auth := config.AuthConfig{
		Enabled:     true,
		APIKey:      "k",
		HeaderName:  "X-API-Key",
		UnauthPaths: []string{"/health", "/ready", "/metrics", "/swagger/"},
	}
	r := newTestRouter(t, auth, config.RateLimitConfig{Enabled: true, Capacity: 1, RefillRate: 1})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// el bucket de 1 ya se consumió con el request sin key
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	req.Header.Set("X-API-Key", "k")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
