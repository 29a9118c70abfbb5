package core

import (
	"math"
	"time"

	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/tracker"
)

type tap struct {
	maxDeltaX    float64
	maxDeltaY    float64
	maxDistSq    float64
	maxDuration  time.Duration
	maxDelay     time.Duration
	numberOfTaps int
	minPointers  int

	start     primitives.Point
	last      primitives.Point
	offset    primitives.Point
	tapsSoFar int
	maxSeen   int
	downAt    time.Duration
	upAt      time.Duration
}

func (t *tap) configure(cfg primitives.Config) {
	t.maxDeltaX = cfg.Float("maxDeltaX", math.Inf(1))
	t.maxDeltaY = cfg.Float("maxDeltaY", math.Inf(1))
	d := cfg.Float("maxDist", math.Inf(1))
	t.maxDistSq = d * d
	t.maxDuration = cfg.Millis("maxDurationMs", 500*time.Millisecond)
	t.maxDelay = cfg.Millis("maxDelayMs", 500*time.Millisecond)
	t.numberOfTaps = maxInt(1, cfg.Int("numberOfTaps", 1))
	t.minPointers = maxInt(1, cfg.Int("minPointers", 1))
}

func (t *tap) reset() {
	t.start, t.last, t.offset = primitives.Point{}, primitives.Point{}, primitives.Point{}
	t.tapsSoFar, t.maxSeen = 0, 0
	t.downAt, t.upAt = 0, 0
}

func (t *tap) delta() primitives.Point {
	return t.last.Sub(t.start).Add(t.offset)
}

func (t *tap) shouldFail() bool {
	d := t.delta()
	return math.Abs(d.X) > t.maxDeltaX || math.Abs(d.Y) > t.maxDeltaY || d.LenSq() > t.maxDistSq
}

func (t *tap) down(h *Handler, ev primitives.PointerEvent, set tracker.Set, first bool) {
	if first {
		switch h.state {
		case primitives.Undetermined:
			t.reset()
			h.begin()
		case primitives.Began:
			if t.tapsSoFar > 0 && ev.Time-t.upAt > t.maxDelay {
				h.fail()
				return
			}
		}
		// Each tap's travel is measured from its own press.
		t.start = ev.Absolute
		t.offset = primitives.Point{}
		t.downAt = ev.Time
		t.last = ev.Absolute
	} else {
		t.offset = t.offset.Add(t.last.Sub(t.start))
		t.start = h.tracker.AbsoluteAverage()
		t.last = t.start
	}
	t.maxSeen = maxInt(t.maxSeen, set.Count())
	if h.state == primitives.Began && t.shouldFail() {
		h.fail()
	}
}

func (t *tap) move(h *Handler, ev primitives.PointerEvent, set tracker.Set) {
	t.last = h.tracker.AbsoluteAverage()
	if h.state != primitives.Began {
		return
	}
	if t.shouldFail() || ev.Time-t.downAt > t.maxDuration {
		h.fail()
	}
}

func (t *tap) up(h *Handler, ev primitives.PointerEvent, set tracker.Set, last bool) {
	if last {
		t.last = ev.Absolute
	} else {
		t.offset = t.offset.Add(t.last.Sub(t.start))
		t.start = h.tracker.AbsoluteAverage()
		t.last = t.start
	}
	if h.state != primitives.Began || h.awaiting {
		return
	}
	if t.shouldFail() || ev.Time-t.downAt > t.maxDuration {
		h.fail()
		return
	}
	if !last {
		return
	}
	t.tapsSoFar++
	t.upAt = ev.Time
	if t.tapsSoFar == t.numberOfTaps && t.maxSeen >= t.minPointers {
		h.activateAndEnd(false)
	}
}

// tick enforces the press and inter-tap timeouts.
func (t *tap) tick(h *Handler, now time.Duration) {
	if h.state != primitives.Began || h.awaiting {
		return
	}
	if h.tracker.Count() > 0 {
		if now-t.downAt > t.maxDuration {
			h.fail()
		}
		return
	}
	if t.tapsSoFar > 0 && now-t.upAt > t.maxDelay {
		h.fail()
	}
}

func (t *tap) measure(h *Handler, m *primitives.Measurements) {}

func (t *tap) continuous() bool { return false }
