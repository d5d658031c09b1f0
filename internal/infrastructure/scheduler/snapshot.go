package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/logging"
	"grocery-price-service/internal/infrastructure/metrics"
)

const (
	DefaultSpec       = "0 */6 * * *"
	DefaultRunTimeout = 2 * time.Minute
)

var ErrEmptyWatchlist = errors.New("snapshot watchlist is empty")

// Config del job de snapshots
type Config struct {
	Spec       string
	Watchlist  []string
	RunTimeout time.Duration
}

// RunResult resume una corrida
type RunResult struct {
	Products  int
	Recorded  int
	Estimated int
	Failed    int
	Triggered int
}

// SnapshotJob consulta la watchlist periódicamente y guarda en el histórico
// sólo los quotes que vienen del sitio. Después reevalúa las alertas.
type SnapshotJob struct {
	cfg     Config
	prices  interfaces.PriceService
	history interfaces.HistoryStore
	alerts  interfaces.AlertService

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewSnapshotJob valida el cron spec; alerts puede ser nil
func NewSnapshotJob(cfg Config, prices interfaces.PriceService, history interfaces.HistoryStore, alerts interfaces.AlertService) (*SnapshotJob, error) {
	if cfg.Spec == "" {
		cfg.Spec = DefaultSpec
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = DefaultRunTimeout
	}
	if _, err := cron.ParseStandard(cfg.Spec); err != nil {
		return nil, fmt.Errorf("invalid snapshot spec %q: %w", cfg.Spec, err)
	}

	watchlist := make([]string, 0, len(cfg.Watchlist))
	for _, p := range cfg.Watchlist {
		if p = strings.TrimSpace(p); p != "" {
			watchlist = append(watchlist, p)
		}
	}
	if len(watchlist) == 0 {
		return nil, ErrEmptyWatchlist
	}
	cfg.Watchlist = watchlist

	return &SnapshotJob{
		cfg:     cfg,
		prices:  prices,
		history: history,
		alerts:  alerts,
	}, nil
}

// Start programa el job. Corridas solapadas se saltan.
func (j *SnapshotJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.running {
		return nil
	}

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(j.cfg.Spec, j.tick); err != nil {
		return fmt.Errorf("schedule snapshot job: %w", err)
	}
	c.Start()

	j.cron = c
	j.running = true
	logging.Info(context.Background(), "Snapshot job scheduled", logging.Fields{
		"spec":      j.cfg.Spec,
		"watchlist": len(j.cfg.Watchlist),
	})
	return nil
}

// Stop espera a que termine la corrida en curso o a que ctx venza
func (j *SnapshotJob) Stop(ctx context.Context) error {
	j.mu.Lock()
	c := j.cron
	j.cron = nil
	j.running = false
	j.mu.Unlock()

	if c == nil {
		return nil
	}
	select {
	case <-c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *SnapshotJob) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), j.cfg.RunTimeout)
	defer cancel()
	ctx = logging.WithRequestID(ctx, logging.GenerateShortRequestID())

	if _, err := j.Run(ctx); err != nil {
		logging.ErrorWithError(ctx, "Snapshot run failed", err, nil)
	}
}

// Run ejecuta una corrida completa. Un producto que falla no corta la corrida.
func (j *SnapshotJob) Run(ctx context.Context) (RunResult, error) {
	start := time.Now()
	result := RunResult{Products: len(j.cfg.Watchlist)}

	for _, product := range j.cfg.Watchlist {
		if err := ctx.Err(); err != nil {
			metrics.RecordSnapshotRun("cancelled")
			return result, err
		}

		quote, err := j.prices.GetPrices(ctx, product, 1)
		if err != nil {
			result.Failed++
			logging.WarnWithError(ctx, "Snapshot quote failed", err, logging.Fields{logging.FieldProduct: product})
			continue
		}
		if !quote.IsAuthoritative() {
			result.Estimated++
			continue
		}
		if j.history == nil {
			continue
		}
		if err := j.history.Record(ctx, quote); err != nil {
			result.Failed++
			logging.WarnWithError(ctx, "Snapshot record failed", err, logging.Fields{logging.FieldProduct: product})
			continue
		}
		result.Recorded++
	}

	if j.alerts != nil {
		n, err := j.alerts.EvaluateAlerts(ctx)
		result.Triggered = n
		if err != nil {
			logging.WarnWithError(ctx, "Alert evaluation failed", err, nil)
		}
	}

	outcome := "ok"
	if result.Failed > 0 {
		outcome = "partial"
	}
	metrics.RecordSnapshotRun(outcome)
	logging.Info(ctx, "Snapshot run completed", logging.Fields{
		"products":            result.Products,
		"recorded":            result.Recorded,
		"estimated":           result.Estimated,
		"failed":              result.Failed,
		"alerts_triggered":    result.Triggered,
		logging.FieldDuration: time.Since(start).Milliseconds(),
	})
	return result, nil
}
