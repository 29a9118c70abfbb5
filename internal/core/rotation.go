package core

import (
	"math"
	"time"

	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/tracker"
)

// RotationThreshold is the rotation in radians that activates a rotation handler.
const RotationThreshold = math.Pi / 36

type rotation struct {
	rotation  float64
	velocity  float64
	prevAngle float64
	anchor    primitives.Point
	lastTime  time.Duration
}

func (r *rotation) configure(cfg primitives.Config) {}

func (r *rotation) reset() {
	r.rotation, r.velocity, r.prevAngle = 0, 0, 0
	r.anchor = primitives.Point{}
	r.lastTime = 0
}

func angle(ps []tracker.Pointer) (float64, primitives.Point, bool) {
	a, b, ok := pairOf(ps)
	if !ok {
		return 0, primitives.Point{}, false
	}
	d := b.Absolute.Sub(a.Absolute)
	return math.Atan2(d.Y, d.X), primitives.Midpoint(a.Position, b.Position), true
}

func (r *rotation) down(h *Handler, ev primitives.PointerEvent, set tracker.Set, first bool) {
	if h.state != primitives.Undetermined {
		return
	}
	a, anchor, ok := angle(set.Pointers)
	if !ok {
		return
	}
	r.reset()
	r.prevAngle = a
	r.anchor = anchor
	r.lastTime = ev.Time
	h.begin()
}

func (r *rotation) move(h *Handler, ev primitives.PointerEvent, set tracker.Set) {
	if h.state != primitives.Began && h.state != primitives.Active {
		return
	}
	a, anchor, ok := angle(set.Pointers)
	if !ok {
		return
	}
	delta := primitives.NormalizeAngle(a - r.prevAngle)
	r.prevAngle = a
	r.rotation += delta
	if dt := (ev.Time - r.lastTime).Seconds(); dt > 0 {
		r.velocity = delta / dt
	}
	r.anchor = anchor
	r.lastTime = ev.Time
	if h.state == primitives.Began && math.Abs(r.rotation) >= RotationThreshold {
		h.activate(false)
	}
}

func (r *rotation) up(h *Handler, ev primitives.PointerEvent, set tracker.Set, last bool) {
	if set.Count() < 2 {
		if h.state == primitives.Active {
			h.end()
		} else {
			h.fail()
		}
		return
	}
	if a, anchor, ok := angle(set.Pointers); ok {
		r.prevAngle = a
		r.anchor = anchor
	}
}

func (r *rotation) tick(h *Handler, now time.Duration) {}

func (r *rotation) measure(h *Handler, m *primitives.Measurements) {
	m.Rotation = r.rotation
	m.Anchor = r.anchor
	m.RotationVelocity = r.velocity
}

func (r *rotation) continuous() bool { return true }
