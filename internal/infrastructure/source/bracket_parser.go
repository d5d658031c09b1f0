package source

import (
	"regexp"
)

// BracketParser es el último recurso: escanea el documento crudo buscando
// tokens "[Tienda $1.290]".
type BracketParser struct {
	pattern *regexp.Regexp
}

func NewBracketParser() *BracketParser {
	return &BracketParser{
		pattern: regexp.MustCompile(`\[\s*([\p{L}][\p{L}\d .'&-]*?)\s*\$\s*([\d][\d.,]*)\s*\]`),
	}
}

func (p *BracketParser) Name() string {
	return "bracket_scan"
}

func (p *BracketParser) Parse(doc []byte) []RawRow {
	matches := p.pattern.FindAllSubmatch(doc, -1)
	if len(matches) == 0 {
		return nil
	}
	rows := make([]RawRow, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, RawRow{
			StoreName: string(m[1]),
			PriceText: string(m[2]),
			InStock:   true,
		})
	}
	return rows
}
