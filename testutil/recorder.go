// Package testutil provides helpers for testing code built on gesturex:
// a recording sink, pointer scripts and adapters that run the same test
// against a Root fed directly and against the tick runtime.
package testutil

import (
	"sync"

	"github.com/comalice/gesturex"
)

// Record is one delivered record. Exactly one field is set.
type Record struct {
	StateChange *gesturex.StateChangeEvent
	Gesture     *gesturex.GestureEvent
}

// Recorder is a Sink that keeps every record it receives. It is safe for
// concurrent use.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OnStateChange implements gesturex.Sink.
func (r *Recorder) OnStateChange(ev gesturex.StateChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, Record{StateChange: &ev})
}

// OnGesture implements gesturex.Sink.
func (r *Recorder) OnGesture(ev gesturex.GestureEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, Record{Gesture: &ev})
}

// Records returns a copy of everything recorded so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// StateChanges returns the state change records of tag.
func (r *Recorder) StateChanges(tag gesturex.HandlerTag) []gesturex.StateChangeEvent {
	var out []gesturex.StateChangeEvent
	for _, rec := range r.Records() {
		if rec.StateChange != nil && rec.StateChange.HandlerTag == tag {
			out = append(out, *rec.StateChange)
		}
	}
	return out
}

// States returns the sequence of new states reported for tag.
func (r *Recorder) States(tag gesturex.HandlerTag) []gesturex.State {
	var out []gesturex.State
	for _, c := range r.StateChanges(tag) {
		out = append(out, c.State)
	}
	return out
}

// Gestures returns the gesture records of tag.
func (r *Recorder) Gestures(tag gesturex.HandlerTag) []gesturex.GestureEvent {
	var out []gesturex.GestureEvent
	for _, rec := range r.Records() {
		if rec.Gesture != nil && rec.Gesture.HandlerTag == tag {
			out = append(out, *rec.Gesture)
		}
	}
	return out
}

// Len returns the number of records.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Reset forgets every record.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
}
