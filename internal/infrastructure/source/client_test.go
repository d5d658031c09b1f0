package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-price-service/internal/domain/entities"
	"grocery-price-service/internal/infrastructure/repositories/cache"
)

const duplicatedRowsDocument = `<div class="store-row"><span class="store-name">Jumbo</span><span class="price">$1.500</span></div>
<div class="store-row"><span class="store-name">JUMBO Costanera</span><span class="price">$1.350</span></div>
<div class="store-row"><span class="store-name">Walmart Lider</span><span class="price">$1.420</span></div>
<div class="store-row"><span class="store-name">Almacén Don Pepe</span><span class="price">$900</span></div>
<div class="store-row"><span class="store-name">Unimarc</span><span class="price">consultar</span></div>`

type fakeSource struct {
	server   *httptest.Server
	requests atomic.Int32
	lastPath atomic.Value
}

func newFakeSource(t *testing.T, status int, body string, delay time.Duration) *fakeSource {
	t.Helper()
	fs := &fakeSource{}
	fs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.requests.Add(1)
		fs.lastPath.Store(r.URL.Path)
		if delay > 0 {
			time.Sleep(delay)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(fs.server.Close)
	return fs
}

func newTestClient(t *testing.T, baseURL string, timeout time.Duration) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:    baseURL + "/producto",
		SlugSuffix: "-1-kg",
		Timeout:    timeout,
	}, cache.NewMemoryCache())
	require.NoError(t, err)
	return client
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	for _, base := range []string{"", "not a url", "/relative"} {
		_, err := NewClient(Config{BaseURL: base}, cache.NewMemoryCache())
		assert.Error(t, err, base)
	}
}

func TestClient_FetchStorePrices(t *testing.T) {
	fs := newFakeSource(t, http.StatusOK, duplicatedRowsDocument, 0)
	client := newTestClient(t, fs.server.URL, time.Second)

	quote, err := client.FetchStorePrices(context.Background(), "Arroz Grado 2")
	require.NoError(t, err)
	require.NotNil(t, quote)

	assert.Equal(t, "/producto/arroz-grado-2-1-kg", fs.lastPath.Load())
	assert.Equal(t, "arroz-grado-2-1-kg", quote.Slug)

	// Jumbo duplicado conserva el menor, tienda desconocida y precio inválido se descartan
	require.Len(t, quote.Prices, 2)
	assert.Equal(t, entities.StoreJumbo, quote.Prices[0].Store)
	assert.InDelta(t, 1350, quote.Prices[0].Price, 0.001)
	assert.Equal(t, entities.StoreLider, quote.Prices[1].Store)

	for _, p := range quote.Prices {
		assert.True(t, p.IsAuthoritative)
		assert.NoError(t, p.Validate())
	}

	require.NotNil(t, quote.BestPrice)
	assert.Equal(t, entities.StoreJumbo, quote.BestPrice.Store)
	assert.InDelta(t, 1385, quote.AveragePrice, 0.001)
	assert.InDelta(t, 70, quote.MaxSavings, 0.001)
}

func TestClient_CachesBySlug(t *testing.T) {
	fs := newFakeSource(t, http.StatusOK, duplicatedRowsDocument, 0)
	client := newTestClient(t, fs.server.URL, time.Second)
	ctx := context.Background()

	first, err := client.FetchStorePrices(ctx, "Aceite Girasol")
	require.NoError(t, err)

	second, err := client.FetchStorePrices(ctx, "aceite   girasol ")
	require.NoError(t, err)

	assert.Equal(t, int32(1), fs.requests.Load())
	assert.Equal(t, first.Slug, second.Slug)
	assert.Equal(t, client.Slug("Aceite Girasol"), client.Slug("aceite   girasol "))
}

func TestClient_UnitPriceFromName(t *testing.T) {
	fs := newFakeSource(t, http.StatusOK, `[Jumbo $5.000]`, 0)
	client := newTestClient(t, fs.server.URL, time.Second)

	quote, err := client.FetchStorePrices(context.Background(), "Arroz 5 kg")
	require.NoError(t, err)
	require.Len(t, quote.Prices, 1)
	require.NotNil(t, quote.Prices[0].UnitPrice)
	assert.InDelta(t, 1000, *quote.Prices[0].UnitPrice, 0.001)
	assert.Equal(t, entities.UnitKilogram, quote.Prices[0].Unit)
}

func TestClient_SoftFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		delay   time.Duration
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: ErrSourceUnavailable},
		{name: "not found", status: http.StatusNotFound, body: "", wantErr: ErrSourceUnavailable},
		{name: "zero rows", status: http.StatusOK, body: "<html><body>sin resultados</body></html>", wantErr: ErrNoRows},
		{name: "only unknown stores", status: http.StatusOK, body: "[Almacen $100]", wantErr: ErrNoRows},
		{name: "timeout", status: http.StatusOK, body: "[Jumbo $100]", delay: 300 * time.Millisecond, wantErr: ErrSourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeSource(t, tt.status, tt.body, tt.delay)
			client := newTestClient(t, fs.server.URL, 100*time.Millisecond)

			quote, err := client.FetchStorePrices(context.Background(), "leche")
			assert.Nil(t, quote)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestClient_FailuresAreNotCached(t *testing.T) {
	fs := newFakeSource(t, http.StatusBadGateway, "", 0)
	client := newTestClient(t, fs.server.URL, time.Second)
	ctx := context.Background()

	_, err := client.FetchStorePrices(ctx, "pan")
	require.Error(t, err)
	_, err = client.FetchStorePrices(ctx, "pan")
	require.Error(t, err)

	assert.Equal(t, int32(2), fs.requests.Load())
}

func TestClient_EmptySlug(t *testing.T) {
	fs := newFakeSource(t, http.StatusOK, "", 0)
	client := newTestClient(t, fs.server.URL, time.Second)

	_, err := client.FetchStorePrices(context.Background(), "¡¿?!")
	assert.ErrorIs(t, err, ErrEmptySlug)
	assert.Equal(t, int32(0), fs.requests.Load())
}

func TestClient_ResolvesRelativeLinks(t *testing.T) {
	doc := `<div class="store-row"><span class="store-name">Tottus</span><span class="price">990</span><a href="/tottus/pan">x</a></div>`
	fs := newFakeSource(t, http.StatusOK, doc, 0)
	client := newTestClient(t, fs.server.URL, time.Second)

	quote, err := client.FetchStorePrices(context.Background(), "pan")
	require.NoError(t, err)
	require.Len(t, quote.Prices, 1)
	assert.Equal(t, fs.server.URL+"/tottus/pan", quote.Prices[0].Link)
}

func TestClient_WithParsersReplacesStrategies(t *testing.T) {
	fs := newFakeSource(t, http.StatusOK, duplicatedRowsDocument, 0)
	client := newTestClient(t, fs.server.URL, time.Second).WithParsers(NewBracketParser())

	// las filas HTML existen pero sólo se intenta el escaneo por corchetes
	quote, err := client.FetchStorePrices(context.Background(), "arroz")
	assert.Nil(t, quote)
	assert.ErrorIs(t, err, ErrNoRows)
}
