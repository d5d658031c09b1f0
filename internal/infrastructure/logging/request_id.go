package logging

import (
	"strings"

	"github.com/google/uuid"
)

// RequestIDGenerator genera ids de request con prefijo
type RequestIDGenerator struct {
	prefix string
}

func NewRequestIDGenerator(prefix string) *RequestIDGenerator {
	if prefix == "" {
		prefix = "req"
	}
	return &RequestIDGenerator{prefix: prefix}
}

// Generate retorna {prefix}_{uuid}
func (g *RequestIDGenerator) Generate() string {
	return g.prefix + "_" + uuid.NewString()
}

// GenerateShort usa sólo el primer bloque del uuid
func (g *RequestIDGenerator) GenerateShort() string {
	id := uuid.NewString()
	if i := strings.IndexByte(id, '-'); i > 0 {
		id = id[:i]
	}
	return g.prefix + "_" + id
}

var defaultGenerator = NewRequestIDGenerator("req")

func GenerateRequestID() string {
	return defaultGenerator.Generate()
}

func GenerateShortRequestID() string {
	return defaultGenerator.GenerateShort()
}
