package realtime

import (
	"sort"

	"github.com/comalice/gesturex"
)

// EventWithMeta adds sequencing metadata for deterministic ordering.
type EventWithMeta struct {
	Event       gesturex.PointerEvent
	SequenceNum uint64
	Priority    int
}

// sortEvents orders a tick's events: higher priority first, then earlier
// event time, then submission order.
func (rt *RealtimeRuntime) sortEvents(events []EventWithMeta) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Priority != events[j].Priority {
			return events[i].Priority > events[j].Priority
		}
		if events[i].Event.Time != events[j].Event.Time {
			return events[i].Event.Time < events[j].Event.Time
		}
		return events[i].SequenceNum < events[j].SequenceNum
	})
}
