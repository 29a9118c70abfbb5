// Package realtime provides a tick-based deterministic runtime for gesturex.
//
// The runtime differs from feeding a Root directly in event dispatch:
//   - Pointer events are batched and processed at fixed tick boundaries
//   - Deterministic ordering via priority, event time and sequence number
//   - Time-based recognizers (long press, tap and fling timeouts) advance
//     once per tick without any pointer event
//
// # Example Usage
//
//	root := gesturex.NewRoot(gesturex.WithSink(sink))
//	rt := realtime.NewRuntime(root, realtime.Config{
//		TickRate: 16667 * time.Microsecond, // 60 FPS
//	})
//	rt.Start(ctx)
//	rt.SendEvent(gesturex.PointerEvent{Type: gesturex.PointerDown, PointerID: 1, Time: rt.Now()})
//
// # Clock
//
// The runtime clock starts at zero and advances by TickRate per tick. A tick
// whose events carry a later Time moves the clock forward to that time, so
// events stamped by the platform and events stamped with Now share one
// time base.
//
// # Event Ordering Guarantees
//
// Within one tick events are ordered by:
//  1. Priority (higher priority processed first)
//  2. Event time (earlier first)
//  3. Sequence number (FIFO for equal times)
//
// Given the same sequence of SendEvent calls, the Root sees the same input
// regardless of timing or concurrency.
package realtime
