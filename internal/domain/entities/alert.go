package entities

import "time"

// PriceAlert se dispara cuando el mejor precio actual baja del objetivo
type PriceAlert struct {
	ID          string      `json:"id"`
	Product     string      `json:"product"`
	TargetPrice float64     `json:"target_price"`
	Triggered   bool        `json:"triggered"`
	CurrentBest *StorePrice `json:"current_best,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	CheckedAt   time.Time   `json:"checked_at"`
}
