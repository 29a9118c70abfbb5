package realtime

import "time"

// Step processes one tick synchronously: the queued events are collected,
// sorted and fed to the Root, then the clock advances by the tick rate (or
// to the latest event time when that is later) and the Root is ticked.
// The tick loop calls Step; tests and replays may call it directly instead
// of starting the loop.
func (rt *RealtimeRuntime) Step() {
	rt.stepMu.Lock()
	defer rt.stepMu.Unlock()

	events := rt.collectEvents()
	rt.sortEvents(events)

	latest := rt.processEvents(events)

	rt.batchMu.Lock()
	now := rt.clock + rt.tickRate
	if latest > now {
		now = latest
	}
	rt.clock = now
	rt.batchMu.Unlock()

	rt.root.Tick(now)

	rt.batchMu.Lock()
	rt.tickNum++
	rt.batchMu.Unlock()
}

// collectEvents atomically retrieves and clears the event batch.
func (rt *RealtimeRuntime) collectEvents() []EventWithMeta {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	events := rt.eventBatch
	rt.eventBatch = make([]EventWithMeta, 0, rt.maxEvents)
	return events
}

// processEvents feeds the events to the Root and returns the latest event
// time seen.
func (rt *RealtimeRuntime) processEvents(events []EventWithMeta) time.Duration {
	var latest time.Duration
	for _, e := range events {
		rt.root.FeedPointerEvent(e.Event)
		if e.Event.Time > latest {
			latest = e.Event.Time
		}
	}
	return latest
}
