package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var errInvalidPrice = errors.New("invalid price token")

// ParsePriceToken convierte "$1.290", "1.290,50", "$1,290.50" o "CLP 990" en un número.
// Ver normalizeSeparators para la regla de separadores.
func ParsePriceToken(token string) (float64, error) {
	s := strings.TrimSpace(token)
	s = strings.TrimPrefix(strings.ToUpper(s), "CLP")
	s = strings.NewReplacer("$", "", " ", "", "\u00a0", "").Replace(s)
	s = normalizeSeparators(s)
	if s == "" {
		return 0, fmt.Errorf("%w: %q", errInvalidPrice, token)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", errInvalidPrice, token, err)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: %q is not positive", errInvalidPrice, token)
	}

	f, _ := d.Round(2).Float64()
	return f, nil
}

// normalizeSeparators deja el número con punto decimal y sin separador de miles.
// Con ambos separadores presentes, el de más a la derecha es el decimal.
// Con uno solo, es de miles si se repite o si lo siguen exactamente 3 dígitos.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	case lastDot >= 0:
		return singleSeparator(s, ".", lastDot)
	case lastComma >= 0:
		return singleSeparator(s, ",", lastComma)
	}
	return s
}

func singleSeparator(s, sep string, last int) string {
	if strings.Count(s, sep) > 1 || len(s)-last-1 == 3 {
		return strings.ReplaceAll(s, sep, "")
	}
	return strings.Replace(s, sep, ".", 1)
}
