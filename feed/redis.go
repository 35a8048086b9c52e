// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes events as JSON on "<prefix>:<contest_id>".
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

// NewRedisPublisher connects to the Redis server at url (redis://...) and
// verifies the connection.
func NewRedisPublisher(ctx context.Context, url, prefix string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisPublisher{client: client, prefix: prefix}, nil
}

// Channel returns the channel a contest's events are published on.
func (p *RedisPublisher) Channel(contestID string) string {
	return ChannelName(p.prefix, contestID)
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return p.client.Publish(ctx, p.Channel(ev.ContestID), payload).Err()
}

// Subscribe delivers decoded events for one contest until ctx is done.
func (p *RedisPublisher) Subscribe(ctx context.Context, contestID string) <-chan Event {
	out := make(chan Event, 16)
	sub := p.client.Subscribe(ctx, p.Channel(contestID))

	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					slog.Warn("dropping malformed change event", "error", err, "channel", msg.Channel)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// ChannelName builds "<prefix>:<contest_id>", using "global" for events
// without a contest.
func ChannelName(prefix, contestID string) string {
	if contestID == "" {
		contestID = "global"
	}
	return prefix + ":" + contestID
}
