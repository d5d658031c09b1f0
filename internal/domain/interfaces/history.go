package interfaces

import (
	"context"

	"grocery-price-service/internal/domain/entities"
)

// HistoryStore persiste observaciones diarias por (producto, cadena)
type HistoryStore interface {
	// GetSeries retorna los puntos de los últimos days días, ordenados por fecha
	GetSeries(ctx context.Context, product string, store entities.Store, days int) ([]entities.PricePoint, error)
	// Record guarda una observación por cadena del quote
	Record(ctx context.Context, quote *entities.ProductQuote) error
	Close() error
}
