package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

type envelope struct {
	Rooms []string `json:"rooms"`
	Event Event    `json:"event"`
}

// RedisBackplane fans events out through a redis pub/sub channel so every
// API instance delivers them to its own hub.
type RedisBackplane struct {
	rdb     *redis.Client
	channel string
	hub     *Hub
	log     *slog.Logger
}

func NewRedisBackplane(ctx context.Context, url, channel string, hub *Hub, log *slog.Logger) (*RedisBackplane, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if log == nil {
		log = slog.Default()
	}
	return &RedisBackplane{rdb: rdb, channel: channel, hub: hub, log: log}, nil
}

func (b *RedisBackplane) Publish(ctx context.Context, rooms []string, ev Event) error {
	payload, err := json.Marshal(envelope{Rooms: rooms, Event: ev})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, payload).Err()
}

// Run delivers subscribed events to the local hub until ctx is done.
func (b *RedisBackplane) Run(ctx context.Context) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.log.Warn("relay envelope dropped", slog.String("error", err.Error()))
				continue
			}
			b.hub.Deliver(env.Rooms, env.Event)
		}
	}
}

func (b *RedisBackplane) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

func (b *RedisBackplane) Close() error {
	return b.rdb.Close()
}
