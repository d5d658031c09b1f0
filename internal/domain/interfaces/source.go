package interfaces

import (
	"context"

	"grocery-price-service/internal/domain/entities"
)

// PriceSource obtiene precios reales del sitio externo.
// Cualquier falla (red, status, documento sin filas) retorna (nil, err) y el
// caller la trata como "sin datos reales", nunca como error fatal.
type PriceSource interface {
	FetchStorePrices(ctx context.Context, productName string) (*entities.ProductQuote, error)
}
