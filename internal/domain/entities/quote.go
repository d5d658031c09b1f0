package entities

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrNonPositivePrice    = errors.New("price must be positive")
	ErrNegativeUnitPrice   = errors.New("unit price must not be negative")
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
)

// StorePrice es una observación del precio de un producto en una cadena
type StorePrice struct {
	Store           Store     `json:"store"`
	Price           float64   `json:"price"`
	UnitPrice       *float64  `json:"unit_price,omitempty"`
	Unit            string    `json:"unit,omitempty"`
	InStock         bool      `json:"in_stock"`
	Link            string    `json:"link,omitempty"`
	IsAuthoritative bool      `json:"is_authoritative"`
	ObservedAt      time.Time `json:"observed_at"`
}

// Validate chequea price > 0 y unit price >= 0
func (sp StorePrice) Validate() error {
	if sp.Price <= 0 {
		return fmt.Errorf("%s: %w", sp.Store, ErrNonPositivePrice)
	}
	if sp.UnitPrice != nil && *sp.UnitPrice < 0 {
		return fmt.Errorf("%s: %w", sp.Store, ErrNegativeUnitPrice)
	}
	return nil
}

// ProductQuote agrupa los precios de un producto en un momento dado
type ProductQuote struct {
	Product      string       `json:"product"`
	Slug         string       `json:"slug,omitempty"`
	Quantity     float64      `json:"quantity"`
	Prices       []StorePrice `json:"prices"`
	BestPrice    *StorePrice  `json:"best_price"`
	AveragePrice float64      `json:"average_price"`
	MaxSavings   float64      `json:"max_savings"`
	FetchedAt    time.Time    `json:"fetched_at"`
}

// NewProductQuote ordena los precios ascendente y calcula los agregados.
// Quantity queda en 1.
func NewProductQuote(product string, prices []StorePrice, fetchedAt time.Time) *ProductQuote {
	q := &ProductQuote{
		Product:   product,
		Quantity:  1,
		Prices:    prices,
		FetchedAt: fetchedAt,
	}
	q.Recompute()
	return q
}

// Recompute reordena Prices y recalcula BestPrice, AveragePrice y MaxSavings.
// Con Prices vacío: BestPrice nil, promedio y ahorro 0.
func (q *ProductQuote) Recompute() {
	sort.SliceStable(q.Prices, func(i, j int) bool {
		return q.Prices[i].Price < q.Prices[j].Price
	})

	if len(q.Prices) == 0 {
		q.BestPrice = nil
		q.AveragePrice = 0
		q.MaxSavings = 0
		return
	}

	sum := 0.0
	for _, p := range q.Prices {
		sum += p.Price
	}

	best := q.Prices[0]
	q.BestPrice = &best
	q.AveragePrice = sum / float64(len(q.Prices))
	q.MaxSavings = q.Prices[len(q.Prices)-1].Price - q.Prices[0].Price
}

// IsEmpty reporta si no hay ninguna observación
func (q *ProductQuote) IsEmpty() bool {
	return q == nil || len(q.Prices) == 0
}

// IsAuthoritative es true sólo si todas las observaciones vienen del sitio
func (q *ProductQuote) IsAuthoritative() bool {
	if q.IsEmpty() {
		return false
	}
	for _, p := range q.Prices {
		if !p.IsAuthoritative {
			return false
		}
	}
	return true
}

// PriceAt retorna la observación de una cadena, si existe
func (q *ProductQuote) PriceAt(store Store) (StorePrice, bool) {
	if q == nil {
		return StorePrice{}, false
	}
	for _, p := range q.Prices {
		if p.Store == store {
			return p, true
		}
	}
	return StorePrice{}, false
}

// Scale retorna una copia con cada precio multiplicado por quantity.
// El precio unitario no cambia con la cantidad.
func (q *ProductQuote) Scale(quantity float64) (*ProductQuote, error) {
	if quantity <= 0 {
		return nil, ErrNonPositiveQuantity
	}

	prices := make([]StorePrice, len(q.Prices))
	for i, p := range q.Prices {
		p.Price *= quantity
		prices[i] = p
	}

	scaled := &ProductQuote{
		Product:   q.Product,
		Slug:      q.Slug,
		Quantity:  quantity,
		Prices:    prices,
		FetchedAt: q.FetchedAt,
	}
	scaled.Recompute()
	return scaled, nil
}
