package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"grocery-price-service/internal/domain/entities"
	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/logging"
	"grocery-price-service/internal/infrastructure/metrics"
	"grocery-price-service/internal/infrastructure/source"
)

// priceService implementa interfaces.PriceService: sitio real primero,
// estimaciones después. Nunca retorna un quote vacío para input válido.
type priceService struct {
	source    interfaces.PriceSource
	estimator *Estimator
	cache     interfaces.Cache
}

// NewPriceService arma el agregador. source puede ser nil (modo offline).
func NewPriceService(src interfaces.PriceSource, estimator *Estimator, cache interfaces.Cache) interfaces.PriceService {
	if estimator == nil {
		estimator = NewEstimator()
	}
	return &priceService{
		source:    src,
		estimator: estimator,
		cache:     cache,
	}
}

// ValidateProductRequest aplica las precondiciones de GetPrices
func ValidateProductRequest(productName string, quantity float64) (string, error) {
	name := strings.TrimSpace(productName)
	if name == "" {
		return "", ErrEmptyProductName
	}
	if !(quantity > 0) || math.IsInf(quantity, 0) {
		return "", ErrInvalidQuantity
	}
	return name, nil
}

// GetPrices retorna los precios de productName escalados por quantity
func (s *priceService) GetPrices(ctx context.Context, productName string, quantity float64) (*entities.ProductQuote, error) {
	name, err := ValidateProductRequest(productName, quantity)
	if err != nil {
		logging.Pricing().ValidationFailed(ctx, productName, err.Error())
		return nil, err
	}

	logging.Pricing().QuoteRequested(ctx, name, quantity)

	reason := "no_source"
	if s.source != nil {
		quote, fetchErr := s.source.FetchStorePrices(ctx, name)
		if fetchErr == nil && !quote.IsEmpty() {
			scaled, err := quote.Scale(quantity)
			if err != nil {
				return nil, fmt.Errorf("scale quote for %s: %w", name, err)
			}
			scaled.Product = name
			s.served(ctx, scaled, OriginSource)
			return scaled, nil
		}
		reason = fallbackReason(fetchErr)
	}

	metrics.RecordFallbackActivation(reason)
	logging.Pricing().FallbackUsed(ctx, name, reason)

	estimate, origin := s.estimator.Estimate(name, quantity)
	s.served(ctx, estimate, origin)
	return estimate, nil
}

func (s *priceService) served(ctx context.Context, quote *entities.ProductQuote, origin string) {
	metrics.RecordQuoteServed(origin)
	if quote.BestPrice != nil {
		logging.Pricing().QuoteServed(ctx, quote.Product, quote.BestPrice.Price, quote.BestPrice.Store.String(), origin == OriginSource)
	}
}

// fallbackReason traduce el error soft del sitio en un label corto
func fallbackReason(err error) string {
	switch {
	case err == nil:
		return "empty"
	case errors.Is(err, source.ErrNoRows):
		return "no_rows"
	case errors.Is(err, source.ErrEmptySlug):
		return "empty_slug"
	default:
		return "source_error"
	}
}

// ClearCache vacía el cache compartido
func (s *priceService) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	logging.Info(ctx, "Price cache cleared", nil)
	return nil
}
