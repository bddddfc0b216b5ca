// Package chaos wraps a transport with seeded fault injection for tests and
// soak tooling. It never reorders records; ordering is a delivery guarantee
// chaos is not allowed to break.
package chaos

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"marketwire/internal/native"
)

// Config controls fault injection.
type Config struct {
	Seed int64

	// PanicRate is the probability [0,1] that a NextRecord call fails
	// catastrophically instead of returning.
	PanicRate float64

	// MaxDelay is the upper bound of a uniform random delay added to each
	// NextRecord call. Zero disables delays.
	MaxDelay time.Duration
}

// Validate ensures the config is within supported ranges.
func (c Config) Validate() error {
	if c.PanicRate < 0 || c.PanicRate > 1 {
		return fmt.Errorf("panicRate must be between 0 and 1")
	}
	if c.MaxDelay < 0 {
		return fmt.Errorf("maxDelay must be >= 0")
	}
	return nil
}

// Transport decorates an inner transport with fault injection.
type Transport struct {
	inner native.Transport
	cfg   Config
	rng   *rand.Rand
}

// Wrap decorates inner with chaos behavior.
func Wrap(inner native.Transport, cfg Config) (*Transport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UTC().UnixNano()
	}
	return &Transport{
		inner: inner,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

func (t *Transport) Start() (native.Metadata, error) {
	return t.inner.Start()
}

func (t *Transport) Subscribe(sub native.Subscription) error {
	return t.inner.Subscribe(sub)
}

func (t *Transport) NextRecord(ctx context.Context) ([]byte, error) {
	if t.cfg.PanicRate > 0 && t.rng.Float64() < t.cfg.PanicRate {
		panic("chaos: injected catastrophic failure")
	}
	if t.cfg.MaxDelay > 0 {
		delay := time.Duration(t.rng.Int63n(int64(t.cfg.MaxDelay) + 1))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return t.inner.NextRecord(ctx)
}

func (t *Transport) Reconnect() error {
	return t.inner.Reconnect()
}

func (t *Transport) Close() error {
	return t.inner.Close()
}
