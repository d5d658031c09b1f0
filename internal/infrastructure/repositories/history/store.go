package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/pkg/utils"
)

const (
	DriverSQLite = "sqlite3"
	DriverMemory = "memory"

	DefaultOpenAttempts = 3
)

// Config del almacenamiento histórico
type Config struct {
	Driver       string
	DSN          string
	OpenAttempts uint
}

// New crea el HistoryStore según el driver configurado
func New(ctx context.Context, cfg Config) (interfaces.HistoryStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, "sqlite":
		return OpenSQLStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// productKey es la clave de producto en el histórico: sin tildes ni mayúsculas
func productKey(product string) string {
	return utils.FoldText(product)
}

func dayOf(t time.Time) int64 {
	return utils.StartOfDay(t).Unix()
}

func windowStart(now time.Time, days int) (int64, error) {
	if days <= 0 {
		return 0, ErrInvalidWindow
	}
	// hoy cuenta como uno de los días
	return utils.DaysAgo(now, days-1).Unix(), nil
}
