package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"grocery-price-service/internal/domain/entities"
	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/logging"
	"grocery-price-service/internal/infrastructure/metrics"
	"grocery-price-service/internal/infrastructure/repositories/cache"
	"grocery-price-service/pkg/utils"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultQuoteTTL     = 15 * time.Minute
	DefaultMaxBodyBytes = 2 << 20
	DefaultUserAgent    = "grocery-price-service/1.0"
	quoteNamespace      = "quote"
)

// Config del cliente del sitio de precios
type Config struct {
	BaseURL           string
	SlugSuffix        string
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64
	Burst             int
	QuoteTTL          time.Duration
	MaxBodyBytes      int64
}

// Client implementa interfaces.PriceSource contra el sitio de comparación.
// Hace a lo más un GET por producto no cacheado y nunca reintenta.
type Client struct {
	baseURL    *url.URL
	suffix     string
	userAgent  string
	maxBody    int64
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	quotes     *cache.TypedCache[entities.ProductQuote]
	parsers    []Parser
	now        func() time.Time
}

var _ interfaces.PriceSource = (*Client)(nil)

// NewClient valida la URL base y completa defaults
func NewClient(cfg Config, backend interfaces.Cache) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid source base url %q", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.QuoteTTL <= 0 {
		cfg.QuoteTTL = DefaultQuoteTTL
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:    base,
		suffix:     cfg.SlugSuffix,
		userAgent:  cfg.UserAgent,
		maxBody:    cfg.MaxBodyBytes,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		timeout:    cfg.Timeout,
		limiter:    rate.NewLimiter(limit, burst),
		quotes:     cache.NewTypedCache[entities.ProductQuote](backend, quoteNamespace, cfg.QuoteTTL),
		parsers:    DefaultParsers(),
		now:        time.Now,
	}, nil
}

// WithParsers reemplaza la lista de estrategias (tests)
func (c *Client) WithParsers(parsers ...Parser) *Client {
	c.parsers = parsers
	return c
}

// Slug retorna la clave normalizada de un producto
func (c *Client) Slug(productName string) string {
	return utils.Slugify(productName, c.suffix)
}

// FetchStorePrices retorna los precios reales de un producto o (nil, err).
// Errores posibles: ErrEmptySlug, ErrSourceUnavailable, ErrNoRows, todos recuperables.
func (c *Client) FetchStorePrices(ctx context.Context, productName string) (*entities.ProductQuote, error) {
	slug := c.Slug(productName)
	if slug == "" {
		return nil, ErrEmptySlug
	}

	if quote, found, err := c.quotes.Get(ctx, slug); err == nil && found {
		metrics.RecordSourceFetch("cached", 0)
		return quote, nil
	}

	doc, status, err := c.fetch(ctx, slug)
	if err != nil {
		return nil, err
	}

	rows, parserName := parseDocument(c.parsers, doc)
	quote := c.buildQuote(ctx, productName, slug, rows)
	if quote.IsEmpty() {
		metrics.RecordSourceFetch("no_rows", 0)
		return nil, fmt.Errorf("%w: %s (status %d)", ErrNoRows, slug, status)
	}

	metrics.RecordParserMatch(parserName)
	logging.Source().ParserMatched(ctx, slug, parserName, len(quote.Prices))

	if err := c.quotes.Set(ctx, slug, quote); err != nil {
		logging.WarnWithError(ctx, "Failed to cache quote", err, logging.Fields{
			logging.FieldSourceSlug: slug,
		})
	}
	return quote, nil
}

// fetch hace el único GET al sitio con timeout explícito
func (c *Client) fetch(ctx context.Context, slug string) ([]byte, int, error) {
	endpoint := c.baseURL.String() + "/" + url.PathEscape(slug)

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(reqCtx); err != nil {
		metrics.RecordSourceFetch("network_error", 0)
		return nil, 0, fmt.Errorf("%w: throttle wait: %w", ErrSourceUnavailable, err)
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request: %w", ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	logging.Source().FetchStarted(ctx, slug, endpoint)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	durationMs := float64(elapsed.Nanoseconds()) / 1e6

	if err != nil {
		metrics.RecordSourceFetch("network_error", elapsed.Seconds())
		logging.Source().FetchFailed(ctx, slug, 0, err, durationMs)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, fmt.Errorf("%w: timeout after %s", ErrSourceUnavailable, c.timeout)
		}
		return nil, 0, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordSourceFetch("http_error", elapsed.Seconds())
		err := fmt.Errorf("%w: HTTP %d", ErrSourceUnavailable, resp.StatusCode)
		logging.Source().FetchFailed(ctx, slug, resp.StatusCode, err, durationMs)
		return nil, resp.StatusCode, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		metrics.RecordSourceFetch("network_error", elapsed.Seconds())
		logging.Source().FetchFailed(ctx, slug, resp.StatusCode, err, durationMs)
		return nil, resp.StatusCode, fmt.Errorf("%w: read body: %w", ErrSourceUnavailable, err)
	}

	metrics.RecordSourceFetch("ok", elapsed.Seconds())
	logging.Source().FetchCompleted(ctx, slug, resp.StatusCode, 0, durationMs)
	return body, resp.StatusCode, nil
}

// buildQuote mapea tiendas, parsea precios, deduplica y calcula agregados
func (c *Client) buildQuote(ctx context.Context, productName, slug string, rows []RawRow) *entities.ProductQuote {
	now := c.now()
	size, hasSize := entities.ParseUnitSize(productName)
	byStore := make(map[entities.Store]entities.StorePrice, len(rows))

	for _, row := range rows {
		store := entities.ParseStore(row.StoreName)
		if store == entities.StoreUnknown {
			metrics.RecordUnknownStore()
			logging.Debug(ctx, "Dropping row for unknown store", logging.Fields{
				logging.FieldSourceSlug: slug,
				"raw_store":             row.StoreName,
			})
			continue
		}

		price := row.Value
		if price <= 0 {
			parsed, err := ParsePriceToken(row.PriceText)
			if err != nil {
				continue
			}
			price = parsed
		}

		candidate := entities.StorePrice{
			Store:           store,
			Price:           price,
			InStock:         row.InStock,
			Link:            c.resolveLink(row.Link),
			IsAuthoritative: true,
			ObservedAt:      now,
		}
		if hasSize {
			candidate.UnitPrice = size.UnitPriceFor(price)
			candidate.Unit = size.Unit
		}

		if existing, ok := byStore[store]; !ok || candidate.Price < existing.Price {
			byStore[store] = candidate
		}
	}

	// orden estable entre cadenas con el mismo precio
	prices := make([]entities.StorePrice, 0, len(byStore))
	for _, store := range entities.KnownStores() {
		if sp, ok := byStore[store]; ok {
			prices = append(prices, sp)
		}
	}

	quote := entities.NewProductQuote(productName, prices, now)
	quote.Slug = slug
	return quote
}

func (c *Client) resolveLink(link string) string {
	if link == "" {
		return ""
	}
	ref, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return c.baseURL.ResolveReference(ref).String()
}
