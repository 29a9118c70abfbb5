package production

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/comalice/gesturex/internal/core"
	"github.com/comalice/gesturex/internal/primitives"
)

// PublishedEvent bundles a record with its Root metadata for publishing.
// Exactly one of StateChange and Gesture is set.
type PublishedEvent struct {
	StateChange *primitives.StateChangeEvent
	Gesture     *primitives.GestureEvent
	Metadata    core.RootMetadata
}

// ChannelPublisher is a Sink that forwards records to a Go channel.
// Publishing never blocks: records are dropped on backpressure.
type ChannelPublisher struct {
	ch      chan<- PublishedEvent
	rootID  string
	seq     atomic.Uint64
	dropped atomic.Uint64
}

// NewChannelPublisher creates a ChannelPublisher for the Root rootID with
// the given output channel.
func NewChannelPublisher(rootID string, ch chan<- PublishedEvent) *ChannelPublisher {
	return &ChannelPublisher{ch: ch, rootID: rootID}
}

// OnStateChange implements core.Sink.
func (p *ChannelPublisher) OnStateChange(ev primitives.StateChangeEvent) {
	p.Publish(context.Background(), core.Emission{StateChange: &ev})
}

// OnGesture implements core.Sink.
func (p *ChannelPublisher) OnGesture(ev primitives.GestureEvent) {
	p.Publish(context.Background(), core.Emission{Gesture: &ev})
}

// Publish sends one record. Every record gets the next sequence number,
// whether it is delivered or dropped.
func (p *ChannelPublisher) Publish(ctx context.Context, e core.Emission) error {
	out := PublishedEvent{
		StateChange: e.StateChange,
		Gesture:     e.Gesture,
		Metadata: core.RootMetadata{
			RootID:    p.rootID,
			Sequence:  p.seq.Add(1),
			Timestamp: time.Now(),
		},
	}
	select {
	case p.ch <- out:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.dropped.Add(1)
		return nil
	}
}

// Dropped returns the number of records lost to backpressure.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
