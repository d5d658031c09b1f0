package interfaces

import (
	"context"
	"time"
)

// Cache es el almacenamiento clave/valor con TTL por entrada.
// Get sobre una entrada vencida la elimina en ese mismo momento.
type Cache interface {
	// Set guarda value; ttl <= 0 usa el TTL por defecto del backend
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get retorna (valor, true) o ("", false) si no existe o venció
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	// Size puede contar entradas vencidas todavía no leídas
	Size(ctx context.Context) (int, error)
}
