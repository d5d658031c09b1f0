package source

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
)

// JSONLDParser lee los bloques <script type="application/ld+json"> de tipo
// Product y toma una fila por cada offer con vendedor y precio.
type JSONLDParser struct{}

func NewJSONLDParser() *JSONLDParser {
	return &JSONLDParser{}
}

func (p *JSONLDParser) Name() string {
	return "json_ld"
}

func (p *JSONLDParser) Parse(doc []byte) []RawRow {
	var rows []RawRow
	for _, block := range ldJSONBlocks(doc) {
		if !gjson.Valid(block) {
			continue
		}
		rows = append(rows, offersFrom(gjson.Parse(block))...)
	}
	return rows
}

// offersFrom recorre arrays, @graph y Product -> offers (simple o AggregateOffer)
func offersFrom(v gjson.Result) []RawRow {
	if v.IsArray() {
		var rows []RawRow
		v.ForEach(func(_, item gjson.Result) bool {
			rows = append(rows, offersFrom(item)...)
			return true
		})
		return rows
	}
	if graph := v.Get("@graph"); graph.Exists() {
		return offersFrom(graph)
	}

	offers := v.Get("offers")
	if nested := offers.Get("offers"); nested.Exists() {
		offers = nested
	}
	if !offers.Exists() {
		return nil
	}

	var rows []RawRow
	collect := func(offer gjson.Result) {
		store := offer.Get("seller.name").String()
		if store == "" {
			store = offer.Get("seller").String()
		}
		price := offer.Get("price")
		if store == "" || price.String() == "" {
			return
		}
		availability := strings.ToLower(offer.Get("availability").String())
		rows = append(rows, RawRow{
			StoreName: store,
			PriceText: price.String(),
			Value:     schemaPrice(price),
			InStock:   availability == "" || !strings.Contains(availability, "outofstock"),
			Link:      offer.Get("url").String(),
		})
	}

	if offers.IsArray() {
		offers.ForEach(func(_, offer gjson.Result) bool {
			collect(offer)
			return true
		})
	} else {
		collect(offers)
	}
	return rows
}

func ldJSONBlocks(doc []byte) []string {
	var blocks []string
	z := html.NewTokenizer(bytes.NewReader(doc))
	inLD := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return blocks
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			inLD = false
			if string(name) != "script" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "type" && strings.EqualFold(string(val), "application/ld+json") {
					inLD = true
				}
				if !more {
					break
				}
			}
		case html.TextToken:
			if inLD {
				blocks = append(blocks, string(z.Text()))
				inLD = false
			}
		case html.EndTagToken:
			inLD = false
		}
	}
}

// schemaPrice: schema.org usa punto decimal, a diferencia del HTML local.
// Retorna 0 si el valor no es numérico.
func schemaPrice(v gjson.Result) float64 {
	if v.Type == gjson.Number {
		return v.Float()
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v.String()))
	if err != nil || !d.IsPositive() {
		return 0
	}
	f, _ := d.Float64()
	return f
}
