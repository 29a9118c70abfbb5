// Tests for ChannelPublisher delivery and Root integration.
package production

import (
	"context"
	"testing"
	"time"

	"github.com/comalice/gesturex/internal/core"
	"github.com/comalice/gesturex/internal/primitives"
)

func TestChannelPublisher_Delivery(t *testing.T) {
	ch := make(chan PublishedEvent, 10)
	p := NewChannelPublisher("root-1", ch)

	p.OnStateChange(primitives.StateChangeEvent{HandlerTag: 3, OldState: primitives.Began, State: primitives.Active})
	p.OnGesture(primitives.GestureEvent{HandlerTag: 3, State: primitives.Active})

	for i, wantSeq := range []uint64{1, 2} {
		select {
		case got := <-ch:
			if got.Metadata.RootID != "root-1" {
				t.Errorf("RootID mismatch: got %q", got.Metadata.RootID)
			}
			if got.Metadata.Sequence != wantSeq {
				t.Errorf("Sequence = %d, want %d", got.Metadata.Sequence, wantSeq)
			}
			if i == 0 && (got.StateChange == nil || got.StateChange.State != primitives.Active) {
				t.Errorf("first record should be the state change, got %+v", got)
			}
			if i == 1 && got.Gesture == nil {
				t.Errorf("second record should be the gesture, got %+v", got)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("No event delivered")
		}
	}
}

func TestChannelPublisher_BackpressureDrop(t *testing.T) {
	ch := make(chan PublishedEvent, 1)
	p := NewChannelPublisher("root-1", ch)
	ch <- PublishedEvent{} // Fill buffer

	err := p.Publish(context.Background(), core.Emission{Gesture: &primitives.GestureEvent{}})
	if err != nil {
		t.Errorf("Publish should drop silently, got %v", err)
	}
	if p.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", p.Dropped())
	}
}

func TestChannelPublisher_CancelledContext(t *testing.T) {
	ch := make(chan PublishedEvent)
	p := NewChannelPublisher("root-1", ch)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Unbuffered channel without reader: either the context or the drop wins.
	err := p.Publish(ctx, core.Emission{Gesture: &primitives.GestureEvent{}})
	if err != nil && err != context.Canceled {
		t.Errorf("unexpected error %v", err)
	}
}

// Registry records flow through the publisher in emission order.
func TestChannelPublisher_RegistryIntegration(t *testing.T) {
	ch := make(chan PublishedEvent, 16)
	p := NewChannelPublisher("root-1", ch)

	reg := core.NewRegistry()
	if _, err := reg.Create(primitives.Tap, 1, nil); err != nil {
		t.Fatal(err)
	}
	if err := reg.Attach(1, 1); err != nil {
		t.Fatal(err)
	}
	reg.Dispatch(primitives.PointerEvent{Type: primitives.PointerDown, PointerID: 1})
	reg.Dispatch(primitives.PointerEvent{Type: primitives.PointerUp, PointerID: 1, Time: 50 * time.Millisecond})
	for _, e := range reg.Drain() {
		e.Deliver(p)
	}
	p.Close()

	var states []primitives.State
	for got := range ch {
		if got.StateChange != nil {
			states = append(states, got.StateChange.State)
		}
	}
	want := []primitives.State{primitives.Began, primitives.Active, primitives.End}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("states[%d] = %v, want %v", i, states[i], want[i])
		}
	}
}
