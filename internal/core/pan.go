package core

import (
	"math"
	"time"

	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/tracker"
)

// offsetRange is an activation or failure window on one axis. A value
// outside [start, end] triggers it; unset bounds are infinite.
type offsetRange struct {
	start, end float64
}

func readRange(cfg primitives.Config, key string) offsetRange {
	r := offsetRange{start: math.Inf(-1), end: math.Inf(1)}
	if s, e, ok := cfg.Range(key); ok {
		r.start, r.end = s, e
	}
	r.start = cfg.Float(key+"Start", r.start)
	r.end = cfg.Float(key+"End", r.end)
	return r
}

func (o offsetRange) set() bool {
	return !math.IsInf(o.start, -1) || !math.IsInf(o.end, 1)
}

func (o offsetRange) outside(v float64) bool {
	return v < o.start || v > o.end
}

type pan struct {
	minDistSq    float64
	activeX      offsetRange
	activeY      offsetRange
	failX        offsetRange
	failY        offsetRange
	minVelocity  float64
	minVelocityX float64
	minVelocityY float64
	minPointers  int
	maxPointers  int
	direction    primitives.Direction
	axialCos     float64
	diagonalCos  float64
	longPress    time.Duration

	start    primitives.Point
	last     primitives.Point
	offset   primitives.Point
	velocity primitives.Point
	beganAt  time.Duration
}

func (p *pan) configure(cfg primitives.Config) {
	p.activeX = readRange(cfg, "activeOffsetX")
	p.activeY = readRange(cfg, "activeOffsetY")
	p.failX = readRange(cfg, "failOffsetX")
	p.failY = readRange(cfg, "failOffsetY")
	p.minVelocity = cfg.Float("minVelocity", math.NaN())
	p.minVelocityX = cfg.Float("minVelocityX", math.NaN())
	p.minVelocityY = cfg.Float("minVelocityY", math.NaN())

	custom := p.activeX.set() || p.activeY.set() || p.failX.set() || p.failY.set() ||
		!math.IsNaN(p.minVelocity) || !math.IsNaN(p.minVelocityX) || !math.IsNaN(p.minVelocityY)
	p.minDistSq = math.Inf(1)
	switch {
	case cfg.Has("minDist"):
		d := cfg.Float("minDist", DefaultMinDist)
		p.minDistSq = d * d
	case !custom:
		p.minDistSq = DefaultMinDist * DefaultMinDist
	}

	p.minPointers = maxInt(1, cfg.Int("minPointers", 1))
	p.maxPointers = maxInt(p.minPointers, cfg.Int("maxPointers", tracker.MaxPointers))
	p.direction = cfg.Direction("direction", 0)
	cone := cfg.Float("alignmentCone", 90)
	p.axialCos = primitives.ConeToDeviation(cone)
	p.diagonalCos = primitives.ConeToDeviation(90 - cone)
	p.longPress = cfg.Millis("activateAfterLongPress", 0)
}

func (p *pan) reset() {
	p.start, p.last, p.offset, p.velocity = primitives.Point{}, primitives.Point{}, primitives.Point{}, primitives.Point{}
	p.beganAt = 0
}

func (p *pan) translation() primitives.Point {
	return p.last.Sub(p.start).Add(p.offset)
}

// rebase folds the current translation into the offset so that adding or
// removing a pointer does not make the average jump.
func (p *pan) rebase(h *Handler) {
	p.offset = p.offset.Add(p.last.Sub(p.start))
	p.start = h.tracker.AbsoluteAverage()
	p.last = p.start
}

func (p *pan) down(h *Handler, ev primitives.PointerEvent, set tracker.Set, first bool) {
	if first {
		p.reset()
		p.start = h.tracker.AbsoluteAverage()
		p.last = p.start
	} else {
		p.rebase(h)
	}
	if set.Count() > p.maxPointers {
		h.fail()
		return
	}
	if set.Count() >= p.minPointers && h.state == primitives.Undetermined {
		p.beganAt = ev.Time
		h.begin()
	}
	p.check(h, ev.Time)
}

func (p *pan) move(h *Handler, ev primitives.PointerEvent, set tracker.Set) {
	p.last = h.tracker.AbsoluteAverage()
	if len(set.Changed) > 0 {
		p.velocity = set.Changed[0].Velocity
	}
	p.check(h, ev.Time)
}

func (p *pan) up(h *Handler, ev primitives.PointerEvent, set tracker.Set, last bool) {
	if last {
		p.last = ev.Absolute
		if h.state == primitives.Active {
			h.end()
		} else {
			h.fail()
		}
		return
	}
	p.rebase(h)
	if h.state == primitives.Active && set.Count() < p.minPointers {
		h.end()
		return
	}
	p.check(h, ev.Time)
}

func (p *pan) tick(h *Handler, now time.Duration) {
	if p.longPress > 0 {
		p.check(h, now)
	}
}

func (p *pan) check(h *Handler, now time.Duration) {
	if h.state != primitives.Began {
		return
	}
	if p.shouldFail() {
		h.fail()
		return
	}
	if p.shouldActivate(now) {
		h.activate(false)
	}
}

func (p *pan) aligned(d primitives.Point) bool {
	return primitives.AlignedWith(primitives.VectorFromPoint(d), p.direction, p.axialCos, p.diagonalCos)
}

func (p *pan) shouldActivate(now time.Duration) bool {
	if p.longPress > 0 {
		return now-p.beganAt >= p.longPress
	}
	d := p.translation()
	if p.direction != 0 && !p.aligned(d) {
		return false
	}
	if p.activeX.outside(d.X) || p.activeY.outside(d.Y) {
		return true
	}
	if d.LenSq() >= p.minDistSq {
		return true
	}
	v := p.velocity
	if exceeds(v.X, p.minVelocityX) || exceeds(v.Y, p.minVelocityY) {
		return true
	}
	if !math.IsNaN(p.minVelocity) && v.LenSq() >= p.minVelocity*p.minVelocity {
		return true
	}
	return false
}

// exceeds compares a velocity against a signed threshold: negative
// thresholds require movement in the negative direction.
func exceeds(v, threshold float64) bool {
	if math.IsNaN(threshold) {
		return false
	}
	if threshold < 0 {
		return v <= threshold
	}
	return v >= threshold
}

func (p *pan) shouldFail() bool {
	d := p.translation()
	if p.longPress > 0 {
		return d.LenSq() > TouchSlop*TouchSlop
	}
	if p.failX.outside(d.X) || p.failY.outside(d.Y) {
		return true
	}
	if p.direction != 0 {
		gate := p.minDistSq
		if math.IsInf(gate, 1) {
			gate = DefaultMinDist * DefaultMinDist
		}
		if d.LenSq() >= gate && !p.aligned(d) {
			return true
		}
	}
	return false
}

func (p *pan) measure(h *Handler, m *primitives.Measurements) {
	m.Translation = p.translation()
	m.Velocity = p.velocity
}

func (p *pan) continuous() bool { return true }
