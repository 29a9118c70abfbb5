package extensibility

import (
	"github.com/comalice/gesturex/internal/core"
	"github.com/comalice/gesturex/internal/primitives"
)

// LoggingSink wraps a Sink and logs every record before forwarding it.
type LoggingSink struct {
	inner core.Sink
}

// NewLoggingSink creates a LoggingSink. inner may be nil to only log.
func NewLoggingSink(inner core.Sink) *LoggingSink {
	return &LoggingSink{inner: inner}
}

// OnStateChange implements core.Sink.
func (s *LoggingSink) OnStateChange(ev primitives.StateChangeEvent) {
	core.Logf("LOG: handler %d (%s) on view %d: %s -> %s [key %d]",
		ev.HandlerTag, ev.Kind, ev.ViewTag, ev.OldState, ev.State, ev.CoalescingKey)
	if s.inner != nil {
		s.inner.OnStateChange(ev)
	}
}

// OnGesture implements core.Sink.
func (s *LoggingSink) OnGesture(ev primitives.GestureEvent) {
	d := ev.Data
	core.Logf("LOG: handler %d (%s) %s pointers=%d pos=(%.1f,%.1f) translation=(%.1f,%.1f) scale=%.3f rotation=%.3f [key %d]",
		ev.HandlerTag, ev.Kind, ev.State, d.NumberOfPointers, d.Position.X, d.Position.Y,
		d.Translation.X, d.Translation.Y, d.Scale, d.Rotation, ev.CoalescingKey)
	if s.inner != nil {
		s.inner.OnGesture(ev)
	}
}
