package core

import (
	"time"

	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/tracker"
)

// nativeView stands in for a platform component (a scroll view, a button)
// that recognizes its own gestures. It activates on start or once the
// finger leaves the touch slop.
type nativeView struct {
	activateOnStart      bool
	disallowInterruption bool
	isButton             bool

	start primitives.Point
}

func (n *nativeView) configure(cfg primitives.Config) {
	n.activateOnStart = cfg.Bool("shouldActivateOnStart", false)
	n.disallowInterruption = cfg.Bool("disallowInterruption", false)
	n.isButton = cfg.Bool("isButton", false)
}

func (n *nativeView) reset() {
	n.start = primitives.Point{}
}

func (n *nativeView) down(h *Handler, ev primitives.PointerEvent, set tracker.Set, first bool) {
	if !first || h.state != primitives.Undetermined {
		return
	}
	n.start = ev.Absolute
	h.begin()
	if n.activateOnStart {
		h.activate(false)
	}
}

func (n *nativeView) move(h *Handler, ev primitives.PointerEvent, set tracker.Set) {
	if h.state != primitives.Began {
		return
	}
	if h.tracker.AbsoluteAverage().Sub(n.start).LenSq() <= TouchSlop*TouchSlop {
		return
	}
	if n.isButton {
		// A finger sliding off a button is not a press.
		h.fail()
		return
	}
	h.activate(false)
}

func (n *nativeView) up(h *Handler, ev primitives.PointerEvent, set tracker.Set, last bool) {
	if last {
		h.end()
	}
}

func (n *nativeView) tick(h *Handler, now time.Duration) {}

func (n *nativeView) measure(h *Handler, m *primitives.Measurements) {}

func (n *nativeView) continuous() bool { return true }
