package source

import "errors"

// Todos estos errores son "soft": el agregador los convierte en fallback
var (
	ErrSourceUnavailable = errors.New("price source unavailable")
	ErrNoRows            = errors.New("price source returned no store rows")
	ErrEmptySlug         = errors.New("product name normalizes to an empty identifier")
)
