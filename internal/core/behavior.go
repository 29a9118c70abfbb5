package core

import (
	"time"

	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/tracker"
)

const (
	// DefaultMinDist is the pan activation distance when nothing else is configured.
	DefaultMinDist = 10
	// TouchSlop is the movement a finger may make before it counts as moved.
	TouchSlop = 15
)

// behavior is the per-kind part of a handler: it reads the configuration,
// updates measurements from tracked pointer updates and drives the handler's
// state through begin/activate/end/fail.
type behavior interface {
	configure(cfg primitives.Config)
	reset()
	down(h *Handler, ev primitives.PointerEvent, set tracker.Set, first bool)
	move(h *Handler, ev primitives.PointerEvent, set tracker.Set)
	up(h *Handler, ev primitives.PointerEvent, set tracker.Set, last bool)
	tick(h *Handler, now time.Duration)
	measure(h *Handler, m *primitives.Measurements)
	// continuous reports whether every update while Active is reported.
	continuous() bool
}

var behaviors = map[primitives.Kind]func() behavior{
	primitives.Pan:        func() behavior { return &pan{} },
	primitives.Tap:        func() behavior { return &tap{} },
	primitives.LongPress:  func() behavior { return &longPress{} },
	primitives.Pinch:      func() behavior { return &pinch{} },
	primitives.Rotation:   func() behavior { return &rotation{} },
	primitives.Fling:      func() behavior { return &fling{} },
	primitives.NativeView: func() behavior { return &nativeView{} },
	primitives.Manual:     func() behavior { return &manual{} },
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// pairOf returns the first two tracked pointers.
func pairOf(ps []tracker.Pointer) (a, b tracker.Pointer, ok bool) {
	if len(ps) < 2 {
		return a, b, false
	}
	return ps[0], ps[1], true
}
