package history

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"grocery-price-service/internal/domain/entities"
	"grocery-price-service/internal/infrastructure/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS price_history (
	product     TEXT    NOT NULL,
	store       TEXT    NOT NULL,
	day         INTEGER NOT NULL,
	price       REAL    NOT NULL,
	observed_at INTEGER NOT NULL,
	PRIMARY KEY (product, store, day)
);
CREATE INDEX IF NOT EXISTS idx_price_history_lookup ON price_history (product, store, day);
`

const upsertObservation = `INSERT INTO price_history (product, store, day, price, observed_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (product, store, day) DO UPDATE SET price = excluded.price, observed_at = excluded.observed_at`

const selectSeries = `SELECT observed_at, price FROM price_history
WHERE product = ? AND store = ? AND day >= ?
ORDER BY day ASC`

type seriesRow struct {
	ObservedAt int64   `db:"observed_at"`
	Price      float64 `db:"price"`
}

// SQLStore guarda una observación por (producto, cadena, día); la última del día gana
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// OpenSQLStore abre la base, reintenta el ping y crea el esquema
func OpenSQLStore(ctx context.Context, cfg Config) (*SQLStore, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = "file:price_history.db?_journal_mode=WAL&_timeout=5000"
	}
	attempts := cfg.OpenAttempts
	if attempts == 0 {
		attempts = DefaultOpenAttempts
	}

	var db *sqlx.DB
	err := retry.Do(
		func() error {
			conn, err := sqlx.Open(DriverSQLite, dsn)
			if err != nil {
				return err
			}
			if err := conn.PingContext(ctx); err != nil {
				_ = conn.Close()
				return err
			}
			db = conn
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logging.Warn(ctx, "History store not ready, retrying", logging.Fields{
				"attempt": n + 1,
				"error":   err.Error(),
			})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	// sqlite no soporta escrituras concurrentes
	db.SetMaxOpenConns(1)

	store := NewSQLStore(db)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLStore envuelve una conexión existente (sin migrar)
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate history schema: %w", err)
	}
	return nil
}

// Record guarda las observaciones autoritativas del quote. Las estimaciones no
// se guardan para no contaminar la serie.
func (s *SQLStore) Record(ctx context.Context, quote *entities.ProductQuote) error {
	if quote.IsEmpty() {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	product := productKey(quote.Product)
	for _, p := range quote.Prices {
		if !p.IsAuthoritative || !p.Store.IsKnown() {
			continue
		}
		observed := p.ObservedAt
		if observed.IsZero() {
			observed = s.now()
		}
		if _, err := tx.ExecContext(ctx, upsertObservation,
			product, string(p.Store), dayOf(observed), p.Price, observed.UnixMilli(),
		); err != nil {
			return fmt.Errorf("record %s@%s: %w", product, p.Store, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	return nil
}

// GetSeries retorna la serie de los últimos days días, ordenada por fecha
func (s *SQLStore) GetSeries(ctx context.Context, product string, store entities.Store, days int) ([]entities.PricePoint, error) {
	since, err := windowStart(s.now(), days)
	if err != nil {
		return nil, err
	}

	var rows []seriesRow
	if err := s.db.SelectContext(ctx, &rows, selectSeries, productKey(product), string(store), since); err != nil {
		return nil, fmt.Errorf("load series %s@%s: %w", product, store, err)
	}

	points := make([]entities.PricePoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, entities.PricePoint{
			Timestamp: time.UnixMilli(r.ObservedAt).UTC(),
			Price:     r.Price,
		})
	}
	return points, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
