// Package redis implements the event publisher port over Redis pub/sub.
// Each logical audience channel maps to one Redis channel under a common
// prefix; delivery is at-most-once, matching the engine's fire-and-forget
// notification contract.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Publisher publishes status-changed events to Redis channels.
type Publisher struct {
	rdb    *goredis.Client
	prefix string
}

// NewPublisher connects to Redis and verifies the connection with a ping.
// The prefix namespaces every published channel ("fulfillment" gives
// "fulfillment:order:<id>" and so on).
func NewPublisher(addr, prefix string) (*Publisher, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Publisher{
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

// Publish marshals the event once and publishes it to each channel. The
// event is identical on every channel; audiences differ only in what they
// subscribe to.
func (p *Publisher) Publish(ctx context.Context, channels []string, event ports.StatusChangedEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var errPublish error
	for _, channel := range channels {
		if err = p.rdb.Publish(ctx, p.channelName(channel), raw).Err(); err != nil {
			errPublish = errors.Join(errPublish, fmt.Errorf("publish to %s: %w", channel, err))
		}
	}

	return errPublish
}

// Close releases the underlying Redis connection.
func (p *Publisher) Close() error {
	return p.rdb.Close()
}

func (p *Publisher) channelName(channel string) string {
	if p.prefix == "" {
		return channel
	}
	return p.prefix + ":" + channel
}
