package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTTL es cuánto vive el limiter de un cliente sin actividad
const DefaultIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiters mantiene un token bucket por cliente.
// capacity es el burst y refillRate los tokens por segundo.
type ClientLimiters struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	capacity   int
	refillRate rate.Limit
	idleTTL    time.Duration
	now        func() time.Time
}

// NewClientLimiters crea la colección; valores no positivos caen a los defaults
func NewClientLimiters(capacity, refillRate int) *ClientLimiters {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if refillRate <= 0 {
		refillRate = DefaultRefillRate
	}
	return &ClientLimiters{
		clients:    make(map[string]*clientLimiter),
		capacity:   capacity,
		refillRate: rate.Limit(refillRate),
		idleTTL:    DefaultIdleTTL,
		now:        time.Now,
	}
}

func (c *ClientLimiters) get(clientID string) *clientLimiter {
	cl, ok := c.clients[clientID]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(c.refillRate, c.capacity)}
		c.clients[clientID] = cl
	}
	cl.lastSeen = c.now()
	return cl
}

// Allow consume un token del cliente y retorna los tokens que quedan
func (c *ClientLimiters) Allow(clientID string) (bool, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cl := c.get(clientID)
	now := c.now()
	allowed := cl.limiter.AllowN(now, 1)
	remaining := int(cl.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining
}

// Cleanup elimina clientes inactivos por más de idleTTL
func (c *ClientLimiters) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.idleTTL)
	removed := 0
	for id, cl := range c.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(c.clients, id)
			removed++
		}
	}
	return removed
}

// Len retorna la cantidad de clientes con limiter activo
func (c *ClientLimiters) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}

// Stats expone la configuración efectiva para /ready
func (c *ClientLimiters) Stats() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return map[string]interface{}{
		"clients":     len(c.clients),
		"capacity":    c.capacity,
		"refill_rate": float64(c.refillRate),
	}
}
