package core

import (
	"math"
	"time"

	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/tracker"
)

type pinch struct {
	spanSlop float64

	startSpan float64
	scale     float64
	velocity  float64
	focal     primitives.Point
	lastTime  time.Duration
}

func (p *pinch) configure(cfg primitives.Config) {
	p.spanSlop = cfg.Float("spanSlop", TouchSlop)
}

func (p *pinch) reset() {
	p.startSpan, p.velocity = 0, 0
	p.scale = 1
	p.focal = primitives.Point{}
	p.lastTime = 0
}

func span(ps []tracker.Pointer) (float64, primitives.Point, bool) {
	a, b, ok := pairOf(ps)
	if !ok {
		return 0, primitives.Point{}, false
	}
	return b.Absolute.Sub(a.Absolute).Len(), primitives.Midpoint(a.Position, b.Position), true
}

func (p *pinch) down(h *Handler, ev primitives.PointerEvent, set tracker.Set, first bool) {
	if h.state != primitives.Undetermined {
		return
	}
	s, focal, ok := span(set.Pointers)
	if !ok {
		return
	}
	p.reset()
	p.startSpan = s
	p.focal = focal
	p.lastTime = ev.Time
	h.begin()
}

func (p *pinch) move(h *Handler, ev primitives.PointerEvent, set tracker.Set) {
	if h.state != primitives.Began && h.state != primitives.Active {
		return
	}
	s, focal, ok := span(set.Pointers)
	if !ok {
		return
	}
	if p.startSpan == 0 {
		p.startSpan = s
	}
	scale := 1.0
	if p.startSpan > 0 {
		scale = s / p.startSpan
	}
	if dt := (ev.Time - p.lastTime).Seconds(); dt > 0 {
		p.velocity = (scale - p.scale) / dt
	}
	p.scale = scale
	p.focal = focal
	p.lastTime = ev.Time
	if h.state == primitives.Began && math.Abs(s-p.startSpan) >= p.spanSlop {
		h.activate(false)
	}
}

func (p *pinch) up(h *Handler, ev primitives.PointerEvent, set tracker.Set, last bool) {
	if set.Count() < 2 {
		if h.state == primitives.Active {
			h.end()
		} else {
			h.fail()
		}
		return
	}
	// The pair may have changed; keep the scale continuous.
	if s, focal, ok := span(set.Pointers); ok && p.scale > 0 {
		p.startSpan = s / p.scale
		p.focal = focal
	}
}

func (p *pinch) tick(h *Handler, now time.Duration) {}

func (p *pinch) measure(h *Handler, m *primitives.Measurements) {
	m.Scale = p.scale
	m.Focal = p.focal
	m.ScaleVelocity = p.velocity
}

func (p *pinch) continuous() bool { return true }
