// Package pacer spaces out automated plays so a human can follow them. It
// only delays the call into the engine; the engine itself never waits.
package pacer

import (
	"context"
	"time"

	"github.com/coder/quartz"
)

// DefaultDelay is the pause before each bot play
const DefaultDelay = 600 * time.Millisecond

// Pacer delays bot turns using an injectable clock
type Pacer struct {
	clock quartz.Clock
	delay time.Duration
}

// New creates a pacer. A non-positive delay disables pacing.
func New(clock quartz.Clock, delay time.Duration) *Pacer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Pacer{clock: clock, delay: delay}
}

// Delay returns the configured pause
func (p *Pacer) Delay() time.Duration {
	return p.delay
}

// After starts the pause and returns a channel closed when it elapses,
// along with a function that cancels it.
func (p *Pacer) After() (<-chan struct{}, func() bool) {
	done := make(chan struct{})
	if p.delay <= 0 {
		close(done)
		return done, func() bool { return false }
	}
	timer := p.clock.AfterFunc(p.delay, func() {
		close(done)
	}, "pacer")
	return done, timer.Stop
}

// Wait blocks for the configured delay or until ctx is done
func (p *Pacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done, stop := p.After()
	defer stop()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Schedule runs fn once the delay has elapsed. The returned function cancels
// it and reports whether fn was prevented from running.
func (p *Pacer) Schedule(fn func()) func() bool {
	if p.delay <= 0 {
		fn()
		return func() bool { return false }
	}
	timer := p.clock.AfterFunc(p.delay, fn, "pacer")
	return timer.Stop
}
