package dto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"grocery-price-service/internal/domain/entities"
)

const (
	// MaxBasketItems limita el tamaño de una canasta por request
	MaxBasketItems  = 50
	MaxSeriesPoints = 1000
	MaxTrendDays    = 365

	DefaultQuantity = 1.0
)

var ErrInvalidRequest = errors.New("invalid request")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// GetPricesRequest representa GET /api/v1/prices?product=arroz&quantity=2
type GetPricesRequest struct {
	Product  string  `json:"product"`
	Quantity float64 `json:"quantity"`
}

// NewGetPricesRequest crea la request desde query parameters.
// quantity vacío equivale a 1; se acepta coma decimal ("1,5").
func NewGetPricesRequest(productParam, quantityParam string) (*GetPricesRequest, error) {
	product := strings.TrimSpace(productParam)
	if product == "" {
		return nil, invalid("product is required")
	}

	quantity := DefaultQuantity
	if q := strings.TrimSpace(quantityParam); q != "" {
		parsed, err := strconv.ParseFloat(strings.Replace(q, ",", ".", 1), 64)
		if err != nil {
			return nil, invalid("quantity must be a number, got %q", quantityParam)
		}
		quantity = parsed
	}
	if quantity <= 0 {
		return nil, invalid("quantity must be positive")
	}

	return &GetPricesRequest{Product: product, Quantity: quantity}, nil
}

// BasketItemRequest es un producto de la canasta
// Quantity omitido vale 1; un 0 explícito se rechaza
type BasketItemRequest struct {
	Name     string   `json:"name" example:"arroz"`
	Quantity *float64 `json:"quantity,omitempty" example:"2"`
}

// BasketRequest representa el body de POST /api/v1/basket
type BasketRequest struct {
	Items []BasketItemRequest `json:"items"`
}

func (r *BasketRequest) Validate() error {
	if len(r.Items) == 0 {
		return invalid("at least one item is required")
	}
	if len(r.Items) > MaxBasketItems {
		return invalid("too many items: %d, max %d", len(r.Items), MaxBasketItems)
	}
	for i, item := range r.Items {
		if strings.TrimSpace(item.Name) == "" {
			return invalid("item %d: name is required", i)
		}
		if item.Quantity != nil && *item.Quantity <= 0 {
			return invalid("item %d: quantity must be a positive number", i)
		}
	}
	return nil
}

// ToEntities convierte la request a items del dominio
func (r *BasketRequest) ToEntities() []entities.BasketItem {
	items := make([]entities.BasketItem, len(r.Items))
	for i, item := range r.Items {
		quantity := DefaultQuantity
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		items[i] = entities.BasketItem{Name: strings.TrimSpace(item.Name), Quantity: quantity}
	}
	return items
}

// PricePointRequest es un punto de la serie a pronosticar
type PricePointRequest struct {
	Timestamp time.Time `json:"timestamp" example:"2024-03-01T00:00:00Z"`
	Price     float64   `json:"price" example:"1290"`
}

// ForecastRequest representa el body de POST /api/v1/trends/forecast
type ForecastRequest struct {
	Series []PricePointRequest `json:"series"`
}

func (r *ForecastRequest) Validate() error {
	if len(r.Series) == 0 {
		return invalid("series is required")
	}
	if len(r.Series) > MaxSeriesPoints {
		return invalid("series too long: %d points, max %d", len(r.Series), MaxSeriesPoints)
	}
	timed := !r.Series[0].Timestamp.IsZero()
	for i, p := range r.Series {
		if p.Price < 0 {
			return invalid("point %d: price must not be negative", i)
		}
		if p.Timestamp.IsZero() == timed {
			return invalid("point %d: timestamps must be set on all points or on none", i)
		}
	}
	return nil
}

// ToEntities convierte la serie; sin timestamps los puntos conservan su orden
func (r *ForecastRequest) ToEntities() []entities.PricePoint {
	base := time.Unix(0, 0).UTC()
	points := make([]entities.PricePoint, len(r.Series))
	for i, p := range r.Series {
		ts := p.Timestamp
		if ts.IsZero() {
			ts = base.AddDate(0, 0, i)
		}
		points[i] = entities.PricePoint{Timestamp: ts, Price: p.Price}
	}
	return points
}

// TrendQuery representa GET /api/v1/trends?product=arroz&store=lider&days=30
type TrendQuery struct {
	Product string
	Store   entities.Store
	Days    int
}

// NewTrendQuery valida los parámetros; days vacío queda en 0 (default del servicio)
func NewTrendQuery(productParam, storeParam, daysParam string) (*TrendQuery, error) {
	product := strings.TrimSpace(productParam)
	if product == "" {
		return nil, invalid("product is required")
	}

	store := entities.ParseStore(storeParam)
	if !store.IsKnown() {
		return nil, invalid("unknown store %q", storeParam)
	}

	days := 0
	if d := strings.TrimSpace(daysParam); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 || parsed > MaxTrendDays {
			return nil, invalid("days must be between 1-%d, got %q", MaxTrendDays, daysParam)
		}
		days = parsed
	}

	return &TrendQuery{Product: product, Store: store, Days: days}, nil
}

// CreateAlertRequest representa el body de POST /api/v1/alerts
type CreateAlertRequest struct {
	Product     string  `json:"product" example:"aceite"`
	TargetPrice float64 `json:"target_price" example:"2500"`
}

func (r *CreateAlertRequest) Validate() error {
	if strings.TrimSpace(r.Product) == "" {
		return invalid("product is required")
	}
	if r.TargetPrice <= 0 {
		return invalid("target_price must be positive")
	}
	return nil
}
