// Package extensibility provides pluggable input and output adapters around
// the core: pointer event sources, a clock, and sinks that log or filter
// records.
package extensibility

import (
	"context"
	"time"

	"github.com/comalice/gesturex/internal/primitives"
)

// PointerSource supplies raw pointer events. The channel is closed when the
// source is exhausted.
type PointerSource interface {
	Events() <-chan primitives.PointerEvent
}

// ChannelEventSource is a PointerSource backed by a Go channel.
type ChannelEventSource struct {
	ch chan primitives.PointerEvent
}

// NewChannelEventSource creates a ChannelEventSource with the given channel.
// The channel should be buffered if backpressure handling is needed.
func NewChannelEventSource(ch chan primitives.PointerEvent) *ChannelEventSource {
	return &ChannelEventSource{ch: ch}
}

// Events returns the receive-only channel for events.
func (s *ChannelEventSource) Events() <-chan primitives.PointerEvent {
	return s.ch
}

// Send queues ev without blocking and reports whether it was accepted.
func (s *ChannelEventSource) Send(ev primitives.PointerEvent) bool {
	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

// Close marks the source as exhausted.
func (s *ChannelEventSource) Close() {
	close(s.ch)
}

// ClockSource emits the time elapsed since it started, every period. It
// drives the time-based recognizers when no pointer events arrive.
type ClockSource struct {
	ch     chan time.Duration
	start  time.Time
	ticker *time.Ticker
	stop   chan struct{}
}

// NewClockSource starts a ClockSource ticking every d.
func NewClockSource(d time.Duration) *ClockSource {
	c := &ClockSource{
		ch:     make(chan time.Duration, 10),
		start:  time.Now(),
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *ClockSource) run() {
	for {
		select {
		case now := <-c.ticker.C:
			select {
			case c.ch <- now.Sub(c.start):
			default:
				// drop if full
			}
		case <-c.stop:
			c.ticker.Stop()
			close(c.ch)
			return
		}
	}
}

// Ticks returns the tick channel.
func (c *ClockSource) Ticks() <-chan time.Duration {
	return c.ch
}

// Now returns the time elapsed since the clock started, on the same base as
// the ticks.
func (c *ClockSource) Now() time.Duration {
	return time.Since(c.start)
}

// Stop stops the ticker and closes the channel.
func (c *ClockSource) Stop() {
	close(c.stop)
}

// Pump feeds pointer events and ticks until ctx is done or src is
// exhausted. ticks may be nil. It returns the number of events fed.
func Pump(ctx context.Context, src PointerSource, ticks <-chan time.Duration, feed func(primitives.PointerEvent), tick func(time.Duration)) int {
	n := 0
	events := src.Events()
	for {
		select {
		case <-ctx.Done():
			return n
		case ev, ok := <-events:
			if !ok {
				return n
			}
			feed(ev)
			n++
		case now, ok := <-ticks:
			if !ok {
				ticks = nil
				continue
			}
			if tick != nil {
				tick(now)
			}
		}
	}
}
