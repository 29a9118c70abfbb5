// Package gesturex recognizes pointer gestures on behalf of a UI tree.
//
// A Root owns a set of gesture handlers (pan, tap, long press, pinch,
// rotation, fling, native view and manual). Raw pointer events are fed to
// the Root, which fans them out to the handlers bound to the event's views.
// Each handler runs its own recognition state machine:
//
//	UNDETERMINED -> BEGAN -> ACTIVE -> END
//	                  |        |
//	                  |        +-----> CANCELLED
//	                  +--> FAILED / CANCELLED
//
// Handlers negotiate over shared input with relations: a handler may wait
// for others to fail, block others, or run simultaneously with them.
// Transitions and continuous measurements are delivered to a Sink.
//
// Time never comes from a clock: every PointerEvent carries its timestamp
// and Tick advances time-based recognizers. The realtime package batches
// events from several goroutines onto a fixed tick.
//
// Example:
//
//	root := gesturex.NewRoot(gesturex.WithSink(mySink))
//	root.CreateHandler(gesturex.Pan, 1, gesturex.Config{"minDist": 20})
//	root.AttachHandler(1, 100)
//	root.FeedPointerEvent(gesturex.PointerEvent{Type: gesturex.PointerDown, PointerID: 1})
package gesturex
