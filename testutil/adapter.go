package testutil

import (
	"context"
	"errors"
	"time"

	"github.com/comalice/gesturex"
	"github.com/comalice/gesturex/realtime"
)

// RuntimeAdapter provides a common interface for feeding a Root directly and
// through the tick runtime, so the same test can run against both.
type RuntimeAdapter interface {
	Start(ctx context.Context) error
	Stop() error
	SendEvent(ev gesturex.PointerEvent) error
	HandlerState(tag gesturex.HandlerTag) gesturex.State
	WaitForStability(timeout time.Duration) error
}

// DirectAdapter feeds every event to the Root as it is sent.
type DirectAdapter struct {
	root *gesturex.Root
}

// NewDirectAdapter creates an adapter that feeds root synchronously.
func NewDirectAdapter(root *gesturex.Root) *DirectAdapter {
	return &DirectAdapter{root: root}
}

func (a *DirectAdapter) Start(ctx context.Context) error { return nil }

func (a *DirectAdapter) Stop() error { return nil }

func (a *DirectAdapter) SendEvent(ev gesturex.PointerEvent) error {
	a.root.FeedPointerEvent(ev)
	return nil
}

func (a *DirectAdapter) HandlerState(tag gesturex.HandlerTag) gesturex.State {
	s, _ := a.root.HandlerState(tag)
	return s
}

// WaitForStability returns at once: events are processed synchronously.
func (a *DirectAdapter) WaitForStability(timeout time.Duration) error {
	return nil
}

// TickBasedAdapter wraps the tick runtime.
type TickBasedAdapter struct {
	rt *realtime.RealtimeRuntime
}

// NewTickBasedAdapter creates an adapter running root on a tick runtime.
func NewTickBasedAdapter(root *gesturex.Root, tickRate time.Duration) *TickBasedAdapter {
	return &TickBasedAdapter{
		rt: realtime.NewRuntime(root, realtime.Config{TickRate: tickRate}),
	}
}

func (a *TickBasedAdapter) Start(ctx context.Context) error { return a.rt.Start(ctx) }

func (a *TickBasedAdapter) Stop() error { return a.rt.Stop() }

func (a *TickBasedAdapter) SendEvent(ev gesturex.PointerEvent) error { return a.rt.SendEvent(ev) }

func (a *TickBasedAdapter) HandlerState(tag gesturex.HandlerTag) gesturex.State {
	s, _ := a.rt.HandlerState(tag)
	return s
}

// WaitForStability waits until two more ticks have completed, so every event
// sent before the call has been processed.
func (a *TickBasedAdapter) WaitForStability(timeout time.Duration) error {
	target := a.rt.GetTickNumber() + 2
	deadline := time.Now().Add(timeout)
	for a.rt.GetTickNumber() < target {
		if time.Now().After(deadline) {
			return errors.New("runtime did not tick before timeout")
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}
