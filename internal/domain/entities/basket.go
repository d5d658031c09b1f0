package entities

import "time"

// BasketItem es un renglón de la lista de compras
type BasketItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// BasketLine es el resultado por producto dentro de un BasketPlan
type BasketLine struct {
	Product       string       `json:"product"`
	Quantity      float64      `json:"quantity"`
	CheapestStore Store        `json:"cheapest_store"`
	Price         float64      `json:"price"`
	Authoritative bool         `json:"authoritative"`
	Alternatives  []StorePrice `json:"alternatives"`
}

// BasketPlan compara comprar cada producto donde está más barato contra
// comprar todo en una sola cadena. Se reportan ambas cifras.
type BasketPlan struct {
	Items                 []BasketLine      `json:"items"`
	TotalAtOptimalPerItem float64           `json:"total_at_optimal_per_item"`
	TotalPerStore         map[Store]float64 `json:"total_per_store"`
	StoreCoverage         map[Store]int     `json:"store_coverage"`
	// RecommendedSingleStore queda vacío si ninguna cadena tiene total positivo
	RecommendedSingleStore Store     `json:"recommended_single_store,omitempty"`
	EstimatedSavings       float64   `json:"estimated_savings"`
	GeneratedAt            time.Time `json:"generated_at"`
}

// HasRecommendation reporta si se pudo elegir una cadena
func (p *BasketPlan) HasRecommendation() bool {
	return p != nil && p.RecommendedSingleStore != ""
}
