package emergency

import (
	"context"

	"github.com/R0UTS/Animal-Hospitalty/internal/notify"
)

const (
	DefaultAuthorLimit = 10
	DefaultVetLimit    = 20
	MaxLimit           = 100
)

// Notifier hands events to the relay without waiting for delivery.
type Notifier interface {
	Emit(rooms []string, ev notify.Event)
}

// Thumbnails renders previews for stored image keys.
type Thumbnails interface {
	GenerateAll(ctx context.Context, keys []string)
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
