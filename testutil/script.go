package testutil

import (
	"time"

	"github.com/comalice/gesturex"
)

// Script builds a sequence of pointer events. Times are in milliseconds.
type Script struct {
	events []gesturex.PointerEvent
	views  []gesturex.ViewTag
}

// NewScript starts an empty script. Events are restricted to views when
// any are given.
func NewScript(views ...gesturex.ViewTag) *Script {
	return &Script{views: views}
}

func (s *Script) add(typ gesturex.EventType, id int, x, y float64, atMs int) *Script {
	p := gesturex.Pt(x, y)
	s.events = append(s.events, gesturex.PointerEvent{
		Type:      typ,
		PointerID: id,
		Position:  p,
		Absolute:  p,
		Time:      time.Duration(atMs) * time.Millisecond,
		Views:     s.views,
	})
	return s
}

// Down presses pointer id at (x, y).
func (s *Script) Down(id int, x, y float64, atMs int) *Script {
	return s.add(gesturex.PointerDown, id, x, y, atMs)
}

// Move moves pointer id to (x, y).
func (s *Script) Move(id int, x, y float64, atMs int) *Script {
	return s.add(gesturex.PointerMove, id, x, y, atMs)
}

// Up releases pointer id at (x, y).
func (s *Script) Up(id int, x, y float64, atMs int) *Script {
	return s.add(gesturex.PointerUp, id, x, y, atMs)
}

// Cancel cancels pointer id.
func (s *Script) Cancel(id int, atMs int) *Script {
	return s.add(gesturex.PointerCancel, id, 0, 0, atMs)
}

// Drag moves pointer id from its last position to (x, y) in steps moves
// spread evenly until atMs.
func (s *Script) Drag(id int, x, y float64, atMs, steps int) *Script {
	from, fromMs := s.last(id)
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		t := fromMs + (atMs-fromMs)*i/steps
		s.Move(id, from.X+(x-from.X)*f, from.Y+(y-from.Y)*f, t)
	}
	return s
}

func (s *Script) last(id int) (gesturex.Point, int) {
	for i := len(s.events) - 1; i >= 0; i-- {
		if ev := s.events[i]; ev.PointerID == id {
			return ev.Absolute, int(ev.Time / time.Millisecond)
		}
	}
	return gesturex.Point{}, 0
}

// Events returns the script.
func (s *Script) Events() []gesturex.PointerEvent {
	out := make([]gesturex.PointerEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Feed plays the script into root and returns the combined result.
func (s *Script) Feed(root *gesturex.Root) gesturex.ProcessingResult {
	var res gesturex.ProcessingResult
	for _, ev := range s.events {
		r := root.FeedPointerEvent(ev)
		res.Delivered += r.Delivered
		res.Records += r.Records
		res.Dropped = res.Dropped || r.Dropped
	}
	return res
}
