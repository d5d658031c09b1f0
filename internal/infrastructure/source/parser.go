package source

// RawRow es una fila tal cual sale del documento, antes de mapear la cadena
// y parsear el precio.
type RawRow struct {
	StoreName string
	PriceText string
	// Value > 0 indica que el parser ya trae el precio numérico (JSON-LD)
	Value   float64
	InStock bool
	Link    string
}

// Parser es una estrategia de extracción. Un parser que no reconoce el
// documento retorna nil, nunca error.
type Parser interface {
	Name() string
	Parse(doc []byte) []RawRow
}

// DefaultParsers es el orden en que se prueban las estrategias:
// filas HTML, JSON-LD embebido y por último el escaneo de "[Tienda $precio]".
func DefaultParsers() []Parser {
	return []Parser{
		NewRowParser(),
		NewJSONLDParser(),
		NewBracketParser(),
	}
}

// parseDocument retorna las filas del primer parser que encuentre alguna
func parseDocument(parsers []Parser, doc []byte) ([]RawRow, string) {
	for _, p := range parsers {
		if rows := p.Parse(doc); len(rows) > 0 {
			return rows, p.Name()
		}
	}
	return nil, ""
}
