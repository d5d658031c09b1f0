package entities

import (
	"regexp"
	"strconv"
	"strings"

	"grocery-price-service/pkg/utils"
)

// Unidades normalizadas para precio unitario
const (
	UnitKilogram = "kg"
	UnitLitre    = "l"
	UnitEach     = "un"
)

// UnitSize es el tamaño de un envase ya convertido a la unidad normalizada
type UnitSize struct {
	Amount float64
	Unit   string
}

var unitSizePattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(kg|kilos?|grs?|g|gramos|lts?|litros?|l|ml|cc|un|unidades|u)\b`)

// ParseUnitSize busca un tamaño en el nombre del producto ("arroz 5 kg", "leche 1 l").
// 500 g se reporta como 0.5 kg, 750 ml como 0.75 l.
func ParseUnitSize(name string) (UnitSize, bool) {
	m := unitSizePattern.FindStringSubmatch(utils.FoldText(name))
	if m == nil {
		return UnitSize{}, false
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || amount <= 0 {
		return UnitSize{}, false
	}

	switch m[2] {
	case "kg", "kilo", "kilos":
		return UnitSize{Amount: amount, Unit: UnitKilogram}, true
	case "g", "gr", "grs", "gramos":
		return UnitSize{Amount: amount / 1000, Unit: UnitKilogram}, true
	case "l", "lt", "lts", "litro", "litros":
		return UnitSize{Amount: amount, Unit: UnitLitre}, true
	case "ml", "cc":
		return UnitSize{Amount: amount / 1000, Unit: UnitLitre}, true
	default:
		return UnitSize{Amount: amount, Unit: UnitEach}, true
	}
}

// UnitPriceFor divide price por el tamaño; nil si no hay tamaño válido
func (u UnitSize) UnitPriceFor(price float64) *float64 {
	if u.Amount <= 0 || price <= 0 {
		return nil
	}
	v := price / u.Amount
	return &v
}
