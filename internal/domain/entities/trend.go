package entities

import "time"

// TrendDirection clasifica la variación de una serie
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// PricePoint es un punto de la serie histórica de un (producto, cadena)
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// Forecast es la proyección a una semana y el R² del ajuste
type Forecast struct {
	NextPeriodPrice float64 `json:"next_period_price"`
	Confidence      float64 `json:"confidence"`
}

// TrendResult es la salida del forecaster. Forecast es nil con menos de 3 puntos.
type TrendResult struct {
	Direction        TrendDirection `json:"direction"`
	ChangePercentage float64        `json:"change_percentage"`
	Forecast         *Forecast      `json:"forecast,omitempty"`
	Points           int            `json:"points"`
}
