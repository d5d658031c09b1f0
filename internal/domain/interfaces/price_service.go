package interfaces

import (
	"context"

	"grocery-price-service/internal/domain/entities"
)

// PriceService agrega precios de un producto con fallback a estimaciones
type PriceService interface {
	// GetPrices nunca retorna un quote vacío para input válido
	GetPrices(ctx context.Context, productName string, quantity float64) (*entities.ProductQuote, error)
	ClearCache(ctx context.Context) error
}

// BasketService compara una lista de compras entre cadenas
type BasketService interface {
	CompareBasket(ctx context.Context, items []entities.BasketItem) (*entities.BasketPlan, error)
}

// TrendService clasifica y proyecta series históricas
type TrendService interface {
	Forecast(series []entities.PricePoint) (*entities.TrendResult, error)
	ForecastFor(ctx context.Context, product string, store entities.Store, days int) (*entities.TrendResult, error)
}

// AlertService evalúa alertas de precio objetivo
type AlertService interface {
	CreateAlert(ctx context.Context, product string, targetPrice float64) (*entities.PriceAlert, error)
	ListAlerts(ctx context.Context) []*entities.PriceAlert
	EvaluateAlerts(ctx context.Context) (int, error)
}
