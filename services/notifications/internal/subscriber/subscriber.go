package subscriber

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kormo-mela/kormo-services/pkg/bus"
)

// State of the reconnect loop. Modeled explicitly so the backoff-reset and
// error-isolation rules are testable on their own.
type State int

const (
	StateConnecting State = iota
	StateListening
	StateHandling
	StateReconnecting
)

// Channel dials a subscription; *bus.Channel satisfies it.
type Channel interface {
	Subscribe(ctx context.Context) (bus.Subscription, error)
}

// Handler processes one event payload. It must not panic; parse failures are
// its own concern and never break the loop.
type Handler func(ctx context.Context, payload []byte)

// Subscriber consumes the booking event channel for the lifetime of the
// process, reconnecting with capped exponential backoff on any channel
// failure.
type Subscriber struct {
	channel Channel
	handle  Handler
	logger  zerolog.Logger

	baseBackoff time.Duration
	maxBackoff  time.Duration

	// sleep is injectable for tests
	sleep func(ctx context.Context, d time.Duration) error
}

type Option func(*Subscriber)

// WithBackoff overrides the base/cap intervals.
func WithBackoff(base, max time.Duration) Option {
	return func(s *Subscriber) {
		s.baseBackoff = base
		s.maxBackoff = max
	}
}

// WithSleep replaces the backoff timer.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Subscriber) { s.sleep = fn }
}

func New(channel Channel, handle Handler, logger zerolog.Logger, opts ...Option) *Subscriber {
	s := &Subscriber{
		channel:     channel,
		handle:      handle,
		logger:      logger,
		baseBackoff: time.Second,
		maxBackoff:  30 * time.Second,
		sleep:       sleepCtx,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run blocks until ctx is canceled. Channel failures are never fatal: the
// loop logs, waits, and re-enters connecting.
func (s *Subscriber) Run(ctx context.Context) error {
	backoff := s.baseBackoff
	state := StateConnecting
	var sub bus.Subscription
	var msg *bus.Message

	defer func() {
		if sub != nil {
			_ = sub.Close()
		}
	}()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		switch state {
		case StateConnecting:
			next, err := s.channel.Subscribe(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn().Err(err).Msg("subscribe failed")
				state = StateReconnecting
				continue
			}
			sub = next
			s.logger.Info().Msg("listening on event channel")
			state = StateListening

		case StateListening:
			m, err := sub.Receive(ctx)
			if err != nil {
				_ = sub.Close()
				sub = nil
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn().Err(err).Msg("receive failed")
				state = StateReconnecting
				continue
			}
			// one full listen cycle after a reconnect resets the backoff
			backoff = s.baseBackoff
			msg = m
			state = StateHandling

		case StateHandling:
			s.handle(ctx, []byte(msg.Payload))
			state = StateListening

		case StateReconnecting:
			s.logger.Info().Dur("backoff", backoff).Msg("reconnecting")
			if err := s.sleep(ctx, backoff); err != nil {
				return err
			}
			backoff *= 2
			if backoff > s.maxBackoff {
				backoff = s.maxBackoff
			}
			state = StateConnecting
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
