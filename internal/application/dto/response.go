package dto

import (
	"time"
)

// StorePriceData es el precio de un producto en una cadena
// @Description Price observation for one supermarket chain
type StorePriceData struct {
	Store           string    `json:"store" example:"lider"`
	StoreName       string    `json:"store_name" example:"Líder"`
	Price           float64   `json:"price" example:"1190"`
	UnitPrice       *float64  `json:"unit_price,omitempty" example:"1190"`
	Unit            string    `json:"unit,omitempty" example:"kg"`
	InStock         bool      `json:"in_stock" example:"true"`
	Link            string    `json:"link,omitempty"`
	IsAuthoritative bool      `json:"is_authoritative" example:"true"` // false si es una estimación
	EsReal          bool      `json:"es_real" example:"true"`          // alias de is_authoritative para el frontend
	ObservedAt      time.Time `json:"observed_at"`
}

// QuoteResponse es la respuesta de GET /api/v1/prices
// @Description Aggregated prices for one product across chains
type QuoteResponse struct {
	Product         string           `json:"product" example:"arroz"`
	Slug            string           `json:"slug,omitempty" example:"arroz-1-kg"`
	Quantity        float64          `json:"quantity" example:"1"`
	Prices          []StorePriceData `json:"prices"`
	BestPrice       *StorePriceData  `json:"best_price,omitempty"`
	AveragePrice    float64          `json:"average_price" example:"1260"`
	MaxSavings      float64          `json:"max_savings" example:"300"`
	IsAuthoritative bool             `json:"is_authoritative" example:"true"`
	FetchedAt       time.Time        `json:"fetched_at"`
}

// BasketLineData es el resultado de un item de la canasta
type BasketLineData struct {
	Product         string           `json:"product" example:"arroz"`
	Quantity        float64          `json:"quantity" example:"2"`
	CheapestStore   string           `json:"cheapest_store,omitempty" example:"acuenta"`
	Price           float64          `json:"price" example:"2180"`
	IsAuthoritative bool             `json:"is_authoritative"`
	EsReal          bool             `json:"es_real"`
	Alternatives    []StorePriceData `json:"alternatives"`
}

// BasketResponse es la respuesta de POST /api/v1/basket
// @Description Basket plan comparing per-item optimum against single-store totals
type BasketResponse struct {
	Items                  []BasketLineData   `json:"items"`
	TotalAtOptimalPerItem  float64            `json:"total_at_optimal_per_item" example:"5230"`
	TotalPerStore          map[string]float64 `json:"total_per_store"`
	StoreCoverage          map[string]int     `json:"store_coverage"`
	RecommendedSingleStore string             `json:"recommended_single_store,omitempty" example:"lider"`
	RecommendedStoreTotal  float64            `json:"recommended_store_total,omitempty" example:"5480"`
	EstimatedSavings       float64            `json:"estimated_savings" example:"740"`
	GeneratedAt            time.Time          `json:"generated_at"`
}

// ForecastData es la proyección a una semana
type ForecastData struct {
	NextPeriodPrice float64 `json:"next_period_price" example:"1320"`
	Confidence      float64 `json:"confidence" example:"0.87"`
}

// TrendResponse es la respuesta de los endpoints de tendencia
// @Description Trend classification and optional linear forecast
type TrendResponse struct {
	Product          string        `json:"product,omitempty" example:"arroz"`
	Store            string        `json:"store,omitempty" example:"lider"`
	Direction        string        `json:"direction" example:"increasing" enums:"increasing,decreasing,stable"`
	ChangePercentage float64       `json:"change_percentage" example:"18"`
	Points           int           `json:"points" example:"5"`
	Forecast         *ForecastData `json:"forecast,omitempty"`
}

// AlertResponse representa una alerta de precio
type AlertResponse struct {
	ID          string          `json:"id"`
	Product     string          `json:"product" example:"aceite"`
	TargetPrice float64         `json:"target_price" example:"2500"`
	Triggered   bool            `json:"triggered"`
	CurrentBest *StorePriceData `json:"current_best,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CheckedAt   time.Time       `json:"checked_at"`
}

// AlertsResponse lista las alertas registradas
type AlertsResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}

// StoreData es una cadena soportada
type StoreData struct {
	ID   string `json:"id" example:"santa_isabel"`
	Name string `json:"name" example:"Santa Isabel"`
}

type StoresResponse struct {
	Stores []StoreData `json:"stores"`
}

// MessageResponse es una respuesta simple de confirmación
type MessageResponse struct {
	Message string `json:"message" example:"cache cleared"`
}

// StreamMessage es un mensaje enviado por el websocket de /api/v1/stream
type StreamMessage struct {
	Type      string         `json:"type" example:"quote" enums:"quote,error"`
	Quote     *QuoteResponse `json:"quote,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// ErrorResponse represents a standard error response for endpoints
// @Description Standard error response for endpoints
type ErrorResponse struct {
	Error   string `json:"error" example:"INVALID_PARAMETER" validate:"required"`          // Main error message
	Message string `json:"message,omitempty" example:"quantity must be a positive number"` // Detailed error description
	Code    string `json:"code,omitempty" example:"400"`                                   // HTTP error code or internal code
}

// HealthResponse represents the health check response with service status
// @Description Health check response with service status
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy" validate:"required" enums:"healthy,degraded,unhealthy"` // Overall service status
	Timestamp time.Time         `json:"timestamp" example:"2023-12-01T10:30:00Z" validate:"required"`                    // When the health check was performed
	Services  map[string]string `json:"services,omitempty" example:"cache:healthy,history:healthy"`                      // Individual service statuses
}

// NewErrorResponseWithCode creates an error response with code
func NewErrorResponseWithCode(error string, message string, code string) *ErrorResponse {
	return &ErrorResponse{
		Error:   error,
		Message: message,
		Code:    code,
	}
}

// NewHealthResponse creates a health check response
func NewHealthResponse(status string, services map[string]string) *HealthResponse {
	return &HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
	}
}
