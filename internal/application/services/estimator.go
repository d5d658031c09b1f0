package services

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"grocery-price-service/internal/domain/entities"
	"grocery-price-service/pkg/utils"
)

// Orígenes de un quote, también usados como label de métricas
const (
	OriginSource           = "source"
	OriginStaticTable      = "static_table"
	OriginCategoryEstimate = "category_estimate"
)

const (
	DefaultJitterMin = 0.90
	DefaultJitterMax = 1.15
)

// RandomSource permite inyectar aleatoriedad determinística en tests
type RandomSource interface {
	Float64() float64
}

// StaticPriceTable: nombre normalizado (sin tildes, minúsculas) -> precio por cadena
type StaticPriceTable map[string]map[entities.Store]float64

// Category es un rubro con su precio base y las palabras que lo identifican
type Category struct {
	Name      string
	BasePrice float64
	Keywords  []string
}

// PantryCategory es el rubro por defecto; siempre matchea
var PantryCategory = Category{Name: "despensa", BasePrice: 1990}

// DefaultCategories se evalúan en orden, el primero que matchea gana
func DefaultCategories() []Category {
	return []Category{
		{Name: "carnes", BasePrice: 7990, Keywords: []string{"carne", "pollo", "cerdo", "vacuno", "posta", "lomo", "pechuga", "trutro", "molida", "chuleta", "pescado", "salmon", "jamon", "salchicha", "longaniza"}},
		{Name: "lacteos", BasePrice: 1290, Keywords: []string{"leche", "yogur", "queso", "mantequilla", "crema", "quesillo", "manjar"}},
		{Name: "frutas_verduras", BasePrice: 1490, Keywords: []string{"manzana", "platano", "naranja", "limon", "palta", "tomate", "lechuga", "papa", "cebolla", "zanahoria", "zapallo", "pepino", "fruta", "verdura"}},
		{Name: "bebidas", BasePrice: 1590, Keywords: []string{"bebida", "jugo", "agua mineral", "cerveza", "vino", "gaseosa", "nectar", "cafe", "te en bolsa"}},
		{Name: "panaderia", BasePrice: 1890, Keywords: []string{"pan ", "hallulla", "marraqueta", "queque", "galleta", "tortilla"}},
		{Name: "limpieza", BasePrice: 2490, Keywords: []string{"detergente", "cloro", "lavaloza", "jabon", "papel higienico", "suavizante", "shampoo"}},
	}
}

// DefaultStaticTable son precios de referencia cargados a mano
func DefaultStaticTable() StaticPriceTable {
	return StaticPriceTable{
		"arroz":           {entities.StoreJumbo: 1390, entities.StoreLider: 1190, entities.StoreSantaIsabel: 1350, entities.StoreUnimarc: 1290, entities.StoreTottus: 1250, entities.StoreAcuenta: 1090},
		"leche":           {entities.StoreJumbo: 1150, entities.StoreLider: 990, entities.StoreSantaIsabel: 1090, entities.StoreUnimarc: 1050, entities.StoreTottus: 1020},
		"pan":             {entities.StoreJumbo: 2290, entities.StoreLider: 1990, entities.StoreSantaIsabel: 2190, entities.StoreUnimarc: 2090},
		"huevos":          {entities.StoreJumbo: 4290, entities.StoreLider: 3890, entities.StoreSantaIsabel: 4190, entities.StoreTottus: 3990, entities.StoreAcuenta: 3690},
		"aceite":          {entities.StoreJumbo: 2990, entities.StoreLider: 2590, entities.StoreUnimarc: 2790, entities.StoreTottus: 2690, entities.StoreAcuenta: 2490},
		"azucar":          {entities.StoreJumbo: 1290, entities.StoreLider: 1090, entities.StoreSantaIsabel: 1250, entities.StoreUnimarc: 1190, entities.StoreAcuenta: 990},
		"fideos":          {entities.StoreJumbo: 990, entities.StoreLider: 850, entities.StoreSantaIsabel: 950, entities.StoreTottus: 890},
		"pollo entero":    {entities.StoreJumbo: 3990, entities.StoreLider: 3490, entities.StoreTottus: 3590},
		"tomate":          {entities.StoreJumbo: 1790, entities.StoreLider: 1490, entities.StoreSantaIsabel: 1690, entities.StoreUnimarc: 1590},
		"papa":            {entities.StoreJumbo: 1290, entities.StoreLider: 990, entities.StoreSantaIsabel: 1190, entities.StoreTottus: 1090},
		"cafe":            {entities.StoreJumbo: 5490, entities.StoreLider: 4890, entities.StoreUnimarc: 5190, entities.StoreTottus: 4990},
		"papel higienico": {entities.StoreJumbo: 6990, entities.StoreLider: 5990, entities.StoreSantaIsabel: 6490, entities.StoreAcuenta: 5490},
	}
}

// lockedRand hace seguro a *rand.Rand para uso concurrente
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

// NewRandomSource retorna una fuente segura para goroutines
func NewRandomSource(seed int64) RandomSource {
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

// Estimator produce precios no autoritativos: primero la tabla estática y
// si el producto no está, el precio base del rubro con variación por cadena.
type Estimator struct {
	table      StaticPriceTable
	categories []Category
	rnd        RandomSource
	jitterMin  float64
	jitterMax  float64
	now        func() time.Time
}

// EstimatorOption configura un Estimator
type EstimatorOption func(*Estimator)

func WithStaticTable(table StaticPriceTable) EstimatorOption {
	return func(e *Estimator) {
		normalized := make(StaticPriceTable, len(table))
		for name, prices := range table {
			normalized[utils.FoldText(name)] = prices
		}
		e.table = normalized
	}
}

func WithCategories(categories []Category) EstimatorOption {
	return func(e *Estimator) { e.categories = categories }
}

func WithRandomSource(rnd RandomSource) EstimatorOption {
	return func(e *Estimator) { e.rnd = rnd }
}

// WithJitter fija el rango del multiplicador por cadena; rangos inválidos se ignoran
func WithJitter(min, max float64) EstimatorOption {
	return func(e *Estimator) {
		if min > 0 && max >= min {
			e.jitterMin, e.jitterMax = min, max
		}
	}
}

func WithClock(now func() time.Time) EstimatorOption {
	return func(e *Estimator) { e.now = now }
}

func NewEstimator(opts ...EstimatorOption) *Estimator {
	e := &Estimator{
		categories: DefaultCategories(),
		rnd:        NewRandomSource(time.Now().UnixNano()),
		jitterMin:  DefaultJitterMin,
		jitterMax:  DefaultJitterMax,
		now:        time.Now,
	}
	WithStaticTable(DefaultStaticTable())(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate siempre retorna un quote no vacío, escalado por quantity, y el
// origen usado (OriginStaticTable u OriginCategoryEstimate).
func (e *Estimator) Estimate(productName string, quantity float64) (*entities.ProductQuote, string) {
	key := utils.FoldText(productName)
	now := e.now()
	size, hasSize := entities.ParseUnitSize(productName)

	build := func(store entities.Store, unitPrice float64) entities.StorePrice {
		sp := entities.StorePrice{
			Store:      store,
			Price:      unitPrice * quantity,
			InStock:    true,
			ObservedAt: now,
		}
		if hasSize {
			sp.UnitPrice = size.UnitPriceFor(unitPrice)
			sp.Unit = size.Unit
		}
		return sp
	}

	origin := OriginStaticTable
	var prices []entities.StorePrice

	if row, ok := e.table[key]; ok && len(row) > 0 {
		for _, store := range entities.KnownStores() {
			if price, ok := row[store]; ok && price > 0 {
				prices = append(prices, build(store, price))
			}
		}
		// cadenas fuera de KnownStores (tablas inyectadas) van al final
		for store, price := range row {
			if !store.IsKnown() && price > 0 {
				prices = append(prices, build(store, price))
			}
		}
	}

	if len(prices) == 0 {
		origin = OriginCategoryEstimate
		base := e.Classify(productName).BasePrice
		for _, store := range entities.KnownStores() {
			prices = append(prices, build(store, math.Round(base*e.multiplier())))
		}
	}

	quote := entities.NewProductQuote(productName, prices, now)
	quote.Quantity = quantity
	return quote, origin
}

// Classify retorna el primer rubro cuyo keyword aparece en el nombre; PantryCategory si ninguno
func (e *Estimator) Classify(productName string) Category {
	// espacio final para que keywords como "pan " matcheen al final del nombre
	name := utils.FoldText(productName) + " "
	for _, c := range e.categories {
		if utils.ContainsAny(name, c.Keywords...) {
			return c
		}
	}
	return PantryCategory
}

func (e *Estimator) multiplier() float64 {
	return e.jitterMin + e.rnd.Float64()*(e.jitterMax-e.jitterMin)
}
