package core

import (
	"time"

	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/tracker"
)

// fling recognizes a fast, aligned swipe. While Began it is in the
// cross-slide phase; a qualifying velocity during the move makes it Active
// in the dragging phase, and a qualifying release during cross-slide ends it
// directly.
type fling struct {
	direction        primitives.Direction
	numberOfPointers int
	maxDuration      time.Duration
	minVelocity      float64
	axialCos         float64
	diagonalCos      float64

	keyPointer int
	startTime  time.Duration
	maxSeen    int
	phase      primitives.FlingPhase
	velocity   primitives.Point
}

func (f *fling) configure(cfg primitives.Config) {
	f.direction = cfg.Direction("direction", primitives.Right)
	f.numberOfPointers = maxInt(1, cfg.Int("numberOfPointers", 1))
	f.maxDuration = cfg.Millis("maxDurationMs", 800*time.Millisecond)
	f.minVelocity = cfg.Float("minVelocity", 700)
	cone := cfg.Float("alignmentCone", 30)
	f.axialCos = primitives.ConeToDeviation(cone)
	f.diagonalCos = primitives.ConeToDeviation(90 - cone)
}

func (f *fling) reset() {
	f.keyPointer = -1
	f.startTime = 0
	f.maxSeen = 0
	f.phase = primitives.CrossSlide
	f.velocity = primitives.Point{}
}

func (f *fling) qualifies() bool {
	if f.maxSeen != f.numberOfPointers {
		return false
	}
	if f.velocity.LenSq() <= f.minVelocity*f.minVelocity {
		return false
	}
	return primitives.AlignedWith(primitives.VectorFromPoint(f.velocity), f.direction, f.axialCos, f.diagonalCos)
}

func (f *fling) timedOut(now time.Duration) bool {
	return now-f.startTime > f.maxDuration
}

func (f *fling) down(h *Handler, ev primitives.PointerEvent, set tracker.Set, first bool) {
	if first && h.state == primitives.Undetermined {
		f.reset()
		f.keyPointer = ev.PointerID
		f.startTime = ev.Time
		h.begin()
	}
	f.maxSeen = maxInt(f.maxSeen, set.Count())
}

func (f *fling) move(h *Handler, ev primitives.PointerEvent, set tracker.Set) {
	if ev.PointerID == f.keyPointer && len(set.Changed) > 0 {
		f.velocity = set.Changed[0].Velocity
	}
	if h.state != primitives.Began {
		return
	}
	if f.timedOut(ev.Time) {
		h.fail()
		return
	}
	if f.qualifies() {
		f.phase = primitives.Dragging
		h.activate(false)
		if h.state != primitives.Active {
			f.phase = primitives.CrossSlide
		}
	}
}

func (f *fling) up(h *Handler, ev primitives.PointerEvent, set tracker.Set, last bool) {
	if ev.PointerID == f.keyPointer && len(set.Changed) > 0 {
		f.velocity = set.Changed[0].Velocity
	}
	if !last {
		return
	}
	switch h.state {
	case primitives.Active:
		h.end()
	case primitives.Began:
		if !f.timedOut(ev.Time) && f.qualifies() {
			h.activateAndEnd(false)
			return
		}
		h.fail()
	}
}

func (f *fling) tick(h *Handler, now time.Duration) {
	if h.state == primitives.Began && !h.awaiting && f.timedOut(now) {
		h.fail()
	}
}

func (f *fling) measure(h *Handler, m *primitives.Measurements) {
	m.Velocity = f.velocity
	m.FlingPhase = f.phase
}

func (f *fling) continuous() bool { return true }
