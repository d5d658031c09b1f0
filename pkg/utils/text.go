package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSlugSuffix es el sufijo que usa el sitio de precios para productos por peso
const DefaultSlugSuffix = "-1-kg"

// FoldText pasa a minúsculas y quita diacríticos ("Plátano" -> "platano").
// Espacios internos se colapsan a uno solo.
func FoldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Slugify normaliza un nombre de producto al identificador del sitio:
// fold, sólo [a-z0-9 ], espacios a guiones y el sufijo al final.
// Retorna "" si no queda ningún caracter válido.
func Slugify(name, suffix string) string {
	folded := FoldText(name)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}

	base := strings.Join(strings.Fields(b.String()), "-")
	if base == "" {
		return ""
	}
	return base + suffix
}

// ContainsAny reporta si s contiene alguna de las subcadenas
func ContainsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
