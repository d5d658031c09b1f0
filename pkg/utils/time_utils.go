package utils

import (
	"context"
	"time"
)

// StartOfDay trunca a medianoche UTC; el histórico guarda una observación por día
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysAgo retorna el inicio del día de hace n días
func DaysAgo(now time.Time, days int) time.Time {
	return StartOfDay(now).AddDate(0, 0, -days)
}

// IsExpired: vencido una vez que now - storedAt > ttl
func IsExpired(storedAt time.Time, ttl time.Duration, now time.Time) bool {
	return now.Sub(storedAt) > ttl
}

// SleepContext espera d o hasta que ctx se cancele
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
