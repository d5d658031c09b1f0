package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"grocery-price-service/internal/domain/entities"
	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/logging"
	"grocery-price-service/internal/infrastructure/metrics"
	"grocery-price-service/pkg/utils"
)

const (
	DefaultBatchSize  = 3
	DefaultBatchDelay = 500 * time.Millisecond
)

// basketService consulta los productos en tandas chicas para no saturar el sitio
type basketService struct {
	prices     interfaces.PriceService
	batchSize  int
	batchDelay time.Duration
	now        func() time.Time
}

func NewBasketService(prices interfaces.PriceService, batchSize int, batchDelay time.Duration) interfaces.BasketService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if batchDelay < 0 {
		batchDelay = 0
	}
	return &basketService{
		prices:     prices,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		now:        time.Now,
	}
}

// CompareBasket obtiene el quote de cada item y arma el BasketPlan.
// Cantidades no positivas se rechazan con ErrInvalidQuantity.
func (s *basketService) CompareBasket(ctx context.Context, items []entities.BasketItem) (*entities.BasketPlan, error) {
	if len(items) == 0 {
		metrics.RecordBasketOptimization("error", 0)
		return nil, ErrEmptyBasket
	}

	normalized := make([]entities.BasketItem, len(items))
	for i, item := range items {
		name, err := ValidateProductRequest(item.Name, item.Quantity)
		if err != nil {
			metrics.RecordBasketOptimization("error", len(items))
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		item.Name = name
		normalized[i] = item
	}

	quotes := make([]*entities.ProductQuote, len(normalized))
	for start := 0; start < len(normalized); start += s.batchSize {
		if start > 0 {
			if err := utils.SleepContext(ctx, s.batchDelay); err != nil {
				return nil, err
			}
		}

		end := start + s.batchSize
		if end > len(normalized) {
			end = len(normalized)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				quote, err := s.prices.GetPrices(gctx, normalized[i].Name, normalized[i].Quantity)
				if err != nil {
					return fmt.Errorf("item %q: %w", normalized[i].Name, err)
				}
				quotes[i] = quote
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			metrics.RecordBasketOptimization("error", len(items))
			return nil, err
		}
	}

	plan := BuildBasketPlan(normalized, quotes, s.now())

	result := "recommended"
	if !plan.HasRecommendation() {
		result = "no_store"
	}
	metrics.RecordBasketOptimization(result, len(items))
	logging.Info(ctx, "Basket compared", logging.Fields{
		logging.FieldItems:       len(items),
		"recommended_store":      plan.RecommendedSingleStore.String(),
		"total_optimal_per_item": plan.TotalAtOptimalPerItem,
		"estimated_savings":      plan.EstimatedSavings,
	})
	return plan, nil
}

// BuildBasketPlan calcula el plan a partir de quotes ya obtenidos, en el mismo
// orden que items. Una cadena sin ninguno de los productos no tiene entrada en
// TotalPerStore y nunca se recomienda.
func BuildBasketPlan(items []entities.BasketItem, quotes []*entities.ProductQuote, now time.Time) *entities.BasketPlan {
	plan := &entities.BasketPlan{
		Items:         make([]entities.BasketLine, 0, len(items)),
		TotalPerStore: make(map[entities.Store]float64),
		StoreCoverage: make(map[entities.Store]int),
		GeneratedAt:   now,
	}

	optimal := decimal.Zero
	totals := make(map[entities.Store]decimal.Decimal)

	for i, item := range items {
		quote := quotes[i]
		line := entities.BasketLine{
			Product:      item.Name,
			Quantity:     item.Quantity,
			Alternatives: []entities.StorePrice{},
		}

		if !quote.IsEmpty() && quote.BestPrice != nil {
			line.CheapestStore = quote.BestPrice.Store
			line.Price = quote.BestPrice.Price
			line.Authoritative = quote.IsAuthoritative()
			optimal = optimal.Add(decimal.NewFromFloat(quote.BestPrice.Price))

			bestTaken := false
			for _, sp := range quote.Prices {
				if !bestTaken && sp.Store == quote.BestPrice.Store && sp.Price == quote.BestPrice.Price {
					bestTaken = true
					continue
				}
				line.Alternatives = append(line.Alternatives, sp)
			}

			for _, sp := range quote.Prices {
				if sp.Price <= 0 {
					continue
				}
				totals[sp.Store] = totals[sp.Store].Add(decimal.NewFromFloat(sp.Price))
				plan.StoreCoverage[sp.Store]++
			}
		}
		plan.Items = append(plan.Items, line)
	}

	plan.TotalAtOptimalPerItem = toFloat(optimal)

	var (
		bestStore  entities.Store
		bestTotal  decimal.Decimal
		worstTotal decimal.Decimal
		found      bool
	)
	for _, store := range orderedStores(totals) {
		total := totals[store]
		if !total.IsPositive() {
			continue
		}
		plan.TotalPerStore[store] = toFloat(total)
		if !found || total.LessThan(bestTotal) {
			bestStore, bestTotal = store, total
		}
		if !found || total.GreaterThan(worstTotal) {
			worstTotal = total
		}
		found = true
	}

	if found {
		plan.RecommendedSingleStore = bestStore
		plan.EstimatedSavings = toFloat(worstTotal.Sub(bestTotal))
	}
	return plan
}

// orderedStores: primero las conocidas en orden fijo, después el resto
func orderedStores(totals map[entities.Store]decimal.Decimal) []entities.Store {
	out := make([]entities.Store, 0, len(totals))
	for _, store := range entities.KnownStores() {
		if _, ok := totals[store]; ok {
			out = append(out, store)
		}
	}
	for store := range totals {
		if !store.IsKnown() {
			out = append(out, store)
		}
	}
	return out
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	if math.Abs(f) < 1e-9 {
		return 0
	}
	return f
}
