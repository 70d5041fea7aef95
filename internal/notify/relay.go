package notify

import (
	"context"
	"log/slog"
	"time"
)

// Publisher moves an event to every instance's hub.
type Publisher interface {
	Publish(ctx context.Context, rooms []string, ev Event) error
}

// Relay emits events in the background so a slow or failed backplane never
// holds up the request that caused them.
type Relay struct {
	pub     Publisher
	log     *slog.Logger
	timeout time.Duration
}

func NewRelay(pub Publisher, log *slog.Logger) *Relay {
	if log == nil {
		log = slog.Default()
	}
	return &Relay{pub: pub, log: log, timeout: 3 * time.Second}
}

func (r *Relay) Emit(rooms []string, ev Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.pub.Publish(ctx, rooms, ev); err != nil {
			r.log.Warn("relay publish failed",
				slog.String("event", ev.Name),
				slog.String("error", err.Error()),
			)
		}
	}()
}
