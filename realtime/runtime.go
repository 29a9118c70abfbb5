package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/comalice/gesturex"
	"github.com/comalice/gesturex/internal/core"
)

// ErrQueueFull is returned when a tick already holds MaxEventsPerTick events.
var ErrQueueFull = errors.New("event queue full")

// RealtimeRuntime feeds a Root at fixed tick boundaries. Pointer events may
// be sent from any goroutine; they are batched and delivered in a
// deterministic order once per tick, after which the Root's time-based
// recognizers are advanced to the runtime clock.
type RealtimeRuntime struct {
	root *gesturex.Root

	tickRate time.Duration
	ticker   *time.Ticker
	tickNum  uint64
	// clock is the gesture time of the last tick, on the PointerEvent.Time
	// base.
	clock time.Duration

	eventBatch  []EventWithMeta
	batchMu     sync.Mutex
	sequenceNum uint64
	maxEvents   int

	stepMu     sync.Mutex
	tickCtx    context.Context
	tickCancel context.CancelFunc
	stopped    chan struct{}
}

// Config configures the real-time runtime.
type Config struct {
	TickRate         time.Duration // fixed tick rate, default 16.67ms (60 FPS)
	MaxEventsPerTick int           // queue capacity per tick, default 1000
}

// NewRuntime creates a tick-based runtime feeding root.
func NewRuntime(root *gesturex.Root, cfg Config) *RealtimeRuntime {
	if cfg.MaxEventsPerTick == 0 {
		cfg.MaxEventsPerTick = 1000
	}
	if cfg.TickRate == 0 {
		cfg.TickRate = 16667 * time.Microsecond
	}
	return &RealtimeRuntime{
		root:       root,
		tickRate:   cfg.TickRate,
		maxEvents:  cfg.MaxEventsPerTick,
		eventBatch: make([]EventWithMeta, 0, cfg.MaxEventsPerTick),
		stopped:    make(chan struct{}),
	}
}

// Root returns the Root the runtime feeds.
func (rt *RealtimeRuntime) Root() *gesturex.Root {
	return rt.root
}

// Start begins ticking until ctx is done or Stop is called.
func (rt *RealtimeRuntime) Start(ctx context.Context) error {
	if rt.ticker != nil {
		return errors.New("runtime already started")
	}
	rt.tickCtx, rt.tickCancel = context.WithCancel(ctx)
	rt.ticker = time.NewTicker(rt.tickRate)
	go rt.tickLoop()
	return nil
}

// Stop stops the tick loop and waits for it to exit. Events still queued
// are discarded.
func (rt *RealtimeRuntime) Stop() error {
	if rt.tickCancel == nil {
		return nil
	}
	rt.tickCancel()
	rt.ticker.Stop()
	<-rt.stopped
	return nil
}

func (rt *RealtimeRuntime) tickLoop() {
	defer close(rt.stopped)
	for {
		select {
		case <-rt.tickCtx.Done():
			return
		case <-rt.ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						core.Logf("realtime: tick %d panicked: %v", rt.GetTickNumber(), r)
					}
				}()
				rt.Step()
			}()
		}
	}
}

// SendEvent queues a pointer event for the next tick. It is safe for
// concurrent use.
func (rt *RealtimeRuntime) SendEvent(ev gesturex.PointerEvent) error {
	return rt.SendEventWithPriority(ev, 0)
}

// SendEventWithPriority queues a pointer event; within a tick, higher
// priorities are delivered first.
func (rt *RealtimeRuntime) SendEventWithPriority(ev gesturex.PointerEvent, priority int) error {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	if len(rt.eventBatch) >= rt.maxEvents {
		return ErrQueueFull
	}
	rt.eventBatch = append(rt.eventBatch, EventWithMeta{
		Event:       ev,
		SequenceNum: rt.sequenceNum,
		Priority:    priority,
	})
	rt.sequenceNum++
	return nil
}

// GetTickNumber returns the number of ticks processed.
func (rt *RealtimeRuntime) GetTickNumber() uint64 {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()
	return rt.tickNum
}

// Now returns the runtime clock. Producers may stamp events with it.
func (rt *RealtimeRuntime) Now() time.Duration {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()
	return rt.clock
}

// HandlerState returns the state of tag in the fed Root.
func (rt *RealtimeRuntime) HandlerState(tag gesturex.HandlerTag) (gesturex.State, bool) {
	return rt.root.HandlerState(tag)
}
