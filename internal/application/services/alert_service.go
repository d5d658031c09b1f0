package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"grocery-price-service/internal/domain/entities"
	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/logging"
	"grocery-price-service/internal/infrastructure/metrics"
)

// alertService guarda alertas en memoria y las compara contra el mejor
// precio actual del agregador (cantidad 1).
type alertService struct {
	prices interfaces.PriceService
	mu     sync.RWMutex
	alerts map[string]*entities.PriceAlert
	now    func() time.Time
}

func NewAlertService(prices interfaces.PriceService) interfaces.AlertService {
	return &alertService{
		prices: prices,
		alerts: make(map[string]*entities.PriceAlert),
		now:    time.Now,
	}
}

// CreateAlert registra la alerta y la evalúa de inmediato.
// Triggered es true si el mejor precio actual es <= targetPrice.
func (s *alertService) CreateAlert(ctx context.Context, product string, targetPrice float64) (*entities.PriceAlert, error) {
	name, err := ValidateProductRequest(product, 1)
	if err != nil {
		return nil, err
	}
	if !(targetPrice > 0) || math.IsInf(targetPrice, 0) {
		return nil, ErrInvalidTargetPrice
	}

	alert := &entities.PriceAlert{
		ID:          uuid.NewString(),
		Product:     name,
		TargetPrice: targetPrice,
		CreatedAt:   s.now(),
	}
	if err := s.evaluate(ctx, alert); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.alerts[alert.ID] = alert
	s.mu.Unlock()

	snapshot := *alert
	return &snapshot, nil
}

func (s *alertService) evaluate(ctx context.Context, alert *entities.PriceAlert) error {
	quote, err := s.prices.GetPrices(ctx, alert.Product, 1)
	if err != nil {
		return fmt.Errorf("evaluate alert for %s: %w", alert.Product, err)
	}

	wasTriggered := alert.Triggered
	alert.CheckedAt = s.now()
	alert.CurrentBest = nil
	alert.Triggered = false
	if quote.BestPrice != nil {
		best := *quote.BestPrice
		alert.CurrentBest = &best
		alert.Triggered = best.Price <= alert.TargetPrice
	}

	if alert.Triggered && !wasTriggered {
		metrics.RecordAlertTriggered()
		logging.Info(ctx, "Price alert triggered", logging.Fields{
			logging.FieldProduct: alert.Product,
			"target_price":       alert.TargetPrice,
			logging.FieldPrice:   alert.CurrentBest.Price,
			logging.FieldStore:   alert.CurrentBest.Store.String(),
		})
	}
	return nil
}

// ListAlerts retorna copias ordenadas por fecha de creación
func (s *alertService) ListAlerts(ctx context.Context) []*entities.PriceAlert {
	s.mu.RLock()
	out := make([]*entities.PriceAlert, 0, len(s.alerts))
	for _, a := range s.alerts {
		snapshot := *a
		out = append(out, &snapshot)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// EvaluateAlerts reevalúa las alertas pendientes y retorna cuántas se dispararon
func (s *alertService) EvaluateAlerts(ctx context.Context) (int, error) {
	s.mu.RLock()
	pending := make([]entities.PriceAlert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if !a.Triggered {
			pending = append(pending, *a)
		}
	}
	s.mu.RUnlock()

	triggered := 0
	for i := range pending {
		alert := &pending[i]
		if err := s.evaluate(ctx, alert); err != nil {
			return triggered, err
		}
		s.mu.Lock()
		if current, ok := s.alerts[alert.ID]; ok {
			*current = *alert
		}
		s.mu.Unlock()
		if alert.Triggered {
			triggered++
		}
	}
	return triggered, nil
}
