// Package bus is the booking event channel: Redis pub/sub carrying JSON
// messages with at-most-once delivery and no persistence.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message is a single data message received from the channel.
type Message struct {
	Channel string
	Payload string
}

// Subscription is a live channel subscription. Receive blocks until a data
// message arrives, the context is canceled, or the connection drops.
type Subscription interface {
	Receive(ctx context.Context) (*Message, error)
	Close() error
}

// NewClient builds a Redis client for the event channel and search cache.
func NewClient(addr string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  0, // subscriptions block until a message arrives
		WriteTimeout: 3 * time.Second,
	})
}

// Publisher publishes JSON events on a named channel.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

func NewPublisher(rdb *redis.Client, channel string) *Publisher {
	return &Publisher{rdb: rdb, channel: channel}
}

func (p *Publisher) PublishJSON(ctx context.Context, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, p.channel, b).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", p.channel, err)
	}
	return nil
}

// Channel dials subscriptions on a named pub/sub channel.
type Channel struct {
	rdb  *redis.Client
	name string
}

func NewChannel(rdb *redis.Client, name string) *Channel {
	return &Channel{rdb: rdb, name: name}
}

func (c *Channel) Name() string { return c.name }

// Subscribe opens a subscription and waits for the server confirmation, so a
// nil error means the channel is actually being listened on.
func (c *Channel) Subscribe(ctx context.Context) (Subscription, error) {
	ps := c.rdb.Subscribe(ctx, c.name)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", c.name, err)
	}
	return &redisSubscription{ps: ps}, nil
}

type redisSubscription struct {
	ps *redis.PubSub
}

func (s *redisSubscription) Receive(ctx context.Context) (*Message, error) {
	for {
		m, err := s.ps.Receive(ctx)
		if err != nil {
			return nil, err
		}
		// Only data messages reach the caller; subscription confirmations
		// and pongs are control traffic.
		if msg, ok := m.(*redis.Message); ok {
			return &Message{Channel: msg.Channel, Payload: msg.Payload}, nil
		}
	}
}

func (s *redisSubscription) Close() error { return s.ps.Close() }
