package source

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// RowParser busca estructuras repetidas de "fila de tienda" en el HTML: un
// elemento con clase de fila que contiene un nombre de tienda y un precio.
type RowParser struct {
	rowClasses   []string
	storeClasses []string
	priceClasses []string
}

func NewRowParser() *RowParser {
	return &RowParser{
		rowClasses:   []string{"store-row", "price-row", "fila-tienda", "tienda-row"},
		storeClasses: []string{"store-name", "store", "tienda", "supermercado"},
		priceClasses: []string{"price", "precio", "store-price"},
	}
}

func (p *RowParser) Name() string {
	return "html_rows"
}

func (p *RowParser) Parse(doc []byte) []RawRow {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil
	}

	var rows []RawRow
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasAnyClass(n, p.rowClasses) {
			if row, ok := p.extractRow(n); ok {
				rows = append(rows, row)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return rows
}

func (p *RowParser) extractRow(row *html.Node) (RawRow, bool) {
	out := RawRow{InStock: true}

	if attr(row, "data-store") != "" {
		out.StoreName = attr(row, "data-store")
	}
	if attr(row, "data-price") != "" {
		out.PriceText = attr(row, "data-price")
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case out.StoreName == "" && hasAnyClass(n, p.storeClasses):
				out.StoreName = textContent(n)
				if out.StoreName == "" {
					out.StoreName = findImgAlt(n)
				}
			case out.PriceText == "" && hasAnyClass(n, p.priceClasses):
				out.PriceText = textContent(n)
			}
			if out.Link == "" && n.Data == "a" {
				out.Link = attr(n, "href")
			}
			if hasAnyClass(n, []string{"out-of-stock", "agotado", "sin-stock"}) {
				out.InStock = false
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(row)

	if hasAnyClass(row, []string{"out-of-stock", "agotado", "sin-stock"}) {
		out.InStock = false
	}
	if text := strings.ToLower(textContent(row)); strings.Contains(text, "agotado") || strings.Contains(text, "sin stock") {
		out.InStock = false
	}

	if out.StoreName == "" || out.PriceText == "" {
		return RawRow{}, false
	}
	return out, true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func hasAnyClass(n *html.Node, classes []string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		for _, want := range classes {
			if c == want {
				return true
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func findImgAlt(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "img" {
		return attr(n, "alt")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if alt := findImgAlt(c); alt != "" {
			return alt
		}
	}
	return ""
}
