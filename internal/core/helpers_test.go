package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/comalice/gesturex/internal/primitives"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func pointer(typ primitives.EventType, id int, x, y float64, at int) primitives.PointerEvent {
	p := primitives.Pt(x, y)
	return primitives.PointerEvent{Type: typ, PointerID: id, Position: p, Absolute: p, Time: ms(at)}
}

func down(id int, x, y float64, at int) primitives.PointerEvent {
	return pointer(primitives.PointerDown, id, x, y, at)
}

func move(id int, x, y float64, at int) primitives.PointerEvent {
	return pointer(primitives.PointerMove, id, x, y, at)
}

func up(id int, x, y float64, at int) primitives.PointerEvent {
	return pointer(primitives.PointerUp, id, x, y, at)
}

func cancelPointer(id int, at int) primitives.PointerEvent {
	return pointer(primitives.PointerCancel, id, 0, 0, at)
}

// fixture drives a Registry and keeps every record it emitted.
type fixture struct {
	t       *testing.T
	reg     *Registry
	records []Emission
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	return &fixture{t: t, reg: NewRegistry(opts...)}
}

// add creates a handler bound to view 1.
func (f *fixture) add(kind primitives.Kind, tag primitives.HandlerTag, cfg primitives.Config) *Handler {
	f.t.Helper()
	h, err := f.reg.Create(kind, tag, cfg)
	require.NoError(f.t, err)
	require.NoError(f.t, f.reg.Attach(tag, 1))
	return h
}

func (f *fixture) feed(evs ...primitives.PointerEvent) Result {
	var res Result
	for _, ev := range evs {
		res = f.reg.Dispatch(ev)
		f.records = append(f.records, f.reg.Drain()...)
	}
	return res
}

func (f *fixture) tick(at int) {
	f.reg.Tick(ms(at))
	f.records = append(f.records, f.reg.Drain()...)
}

func (f *fixture) setState(tag primitives.HandlerTag, s primitives.State) {
	require.NoError(f.t, f.reg.SetState(tag, s))
	f.records = append(f.records, f.reg.Drain()...)
}

// states returns the sequence of new states reported for tag.
func (f *fixture) states(tag primitives.HandlerTag) []primitives.State {
	var out []primitives.State
	for _, e := range f.records {
		if e.StateChange != nil && e.StateChange.HandlerTag == tag {
			out = append(out, e.StateChange.State)
		}
	}
	return out
}

func (f *fixture) stateChanges(tag primitives.HandlerTag) []primitives.StateChangeEvent {
	var out []primitives.StateChangeEvent
	for _, e := range f.records {
		if e.StateChange != nil && e.StateChange.HandlerTag == tag {
			out = append(out, *e.StateChange)
		}
	}
	return out
}

func (f *fixture) gestures(tag primitives.HandlerTag) []primitives.GestureEvent {
	var out []primitives.GestureEvent
	for _, e := range f.records {
		if e.Gesture != nil && e.Gesture.HandlerTag == tag {
			out = append(out, *e.Gesture)
		}
	}
	return out
}

func (f *fixture) last(tag primitives.HandlerTag) primitives.StateChangeEvent {
	f.t.Helper()
	changes := f.stateChanges(tag)
	require.NotEmpty(f.t, changes)
	return changes[len(changes)-1]
}

func states(s ...primitives.State) []primitives.State {
	return s
}
