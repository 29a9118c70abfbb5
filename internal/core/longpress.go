package core

import (
	"time"

	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/tracker"
)

type longPress struct {
	minDuration      time.Duration
	maxDistSq        float64
	numberOfPointers int

	start     primitives.Point
	startTime time.Duration
	now       time.Duration
}

func (l *longPress) configure(cfg primitives.Config) {
	l.minDuration = cfg.Millis("minDurationMs", 500*time.Millisecond)
	d := cfg.Float("maxDist", 10)
	l.maxDistSq = d * d
	l.numberOfPointers = maxInt(1, cfg.Int("numberOfPointers", 1))
}

func (l *longPress) reset() {
	l.start = primitives.Point{}
	l.startTime, l.now = 0, 0
}

func (l *longPress) down(h *Handler, ev primitives.PointerEvent, set tracker.Set, first bool) {
	l.now = ev.Time
	if first {
		l.start = ev.Absolute
		l.startTime = ev.Time
		h.begin()
	} else {
		l.start = h.tracker.AbsoluteAverage()
	}
	if set.Count() > l.numberOfPointers {
		h.fail()
		return
	}
	l.check(h, ev.Time, set.Count())
}

func (l *longPress) move(h *Handler, ev primitives.PointerEvent, set tracker.Set) {
	l.now = ev.Time
	if h.tracker.AbsoluteAverage().Sub(l.start).LenSq() > l.maxDistSq {
		h.fail()
		return
	}
	l.check(h, ev.Time, set.Count())
}

func (l *longPress) up(h *Handler, ev primitives.PointerEvent, set tracker.Set, last bool) {
	l.now = ev.Time
	// The release timestamp may be the first proof that the hold was long enough.
	l.check(h, ev.Time, set.Count()+1)
	if last {
		if h.state == primitives.Active {
			h.end()
		} else {
			h.fail()
		}
		return
	}
	if h.state == primitives.Began && set.Count() < l.numberOfPointers {
		h.fail()
	}
}

func (l *longPress) tick(h *Handler, now time.Duration) {
	if h.state == primitives.Began {
		l.now = now
	}
	l.check(h, now, h.tracker.Count())
}

func (l *longPress) check(h *Handler, now time.Duration, pointers int) {
	if h.state != primitives.Began || pointers != l.numberOfPointers {
		return
	}
	if now-l.startTime >= l.minDuration {
		h.activate(false)
	}
}

func (l *longPress) measure(h *Handler, m *primitives.Measurements) {
	m.Duration = l.now - l.startTime
}

func (l *longPress) continuous() bool { return false }
