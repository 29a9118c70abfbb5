// Package core provides the runtime tier of the gesture engine: the handler
// state machine, the per-kind recognition behaviors, the registry that
// resolves relations between handlers and the composer of emitted records.
//
// Nothing in this package is safe for concurrent use; the Root facade
// serializes every call.
package core

import (
	"time"

	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/tracker"
)

// Handler is one gesture recognizer bound to a Registry. Its kind's behavior
// consumes tracked pointer updates and asks the handler to change state; the
// handler consults the registry before activating.
type Handler struct {
	tag      primitives.HandlerTag
	kind     primitives.Kind
	view     primitives.ViewTag
	attached bool

	config           primitives.Config
	enabled          bool
	manualActivation bool

	state         primitives.State
	coalescingKey uint32
	// awaiting is set while activation is deferred by a wait relation.
	awaiting bool
	// pendingEnd makes a deferred activation end right away once allowed.
	pendingEnd bool

	pointerType primitives.PointerType
	stylus      *primitives.StylusData
	position    primitives.Point
	absolute    primitives.Point

	tracker  *tracker.Tracker
	behavior behavior
	reg      *Registry
}

func newHandler(reg *Registry, kind primitives.Kind, tag primitives.HandlerTag, cfg primitives.Config) *Handler {
	h := &Handler{
		tag:      tag,
		kind:     kind,
		tracker:  tracker.New(reg.maxPointers),
		behavior: behaviors[kind](),
		reg:      reg,
	}
	h.configure(cfg)
	h.behavior.reset()
	return h
}

func (h *Handler) configure(cfg primitives.Config) {
	cfg = cfg.Portable()
	h.config = cfg
	h.enabled = cfg.Bool("enabled", true)
	h.manualActivation = cfg.Bool("manualActivation", false)
	h.behavior.configure(cfg)
}

// Tag returns the handler tag.
func (h *Handler) Tag() primitives.HandlerTag { return h.tag }

// Kind returns the handler kind.
func (h *Handler) Kind() primitives.Kind { return h.kind }

// View returns the view the handler is bound to.
func (h *Handler) View() primitives.ViewTag { return h.view }

// Attached reports whether the handler is bound to a view.
func (h *Handler) Attached() bool { return h.attached }

// State returns the current lifecycle state.
func (h *Handler) State() primitives.State { return h.state }

// Enabled reports whether the handler reacts to input.
func (h *Handler) Enabled() bool { return h.enabled }

// CoalescingKey returns the key of the current or most recent activation.
func (h *Handler) CoalescingKey() uint32 { return h.coalescingKey }

// Awaiting reports whether activation is deferred by a wait relation.
func (h *Handler) Awaiting() bool { return h.awaiting }

// Config returns a copy of the handler configuration.
func (h *Handler) Config() primitives.Config { return h.config.Clone() }

// PointerIDs returns the ids of the pointers the handler tracks.
func (h *Handler) PointerIDs() []int { return h.tracker.IDs() }

func (h *Handler) disallowsInterruption() bool {
	nv, ok := h.behavior.(*nativeView)
	return ok && nv.disallowInterruption
}

// handlePointer feeds one raw event through the tracker and the behavior.
// It reports whether the handler took the event and whether the event was
// dropped because the tracker is full.
func (h *Handler) handlePointer(ev primitives.PointerEvent) (delivered, dropped bool) {
	if !h.enabled {
		return false, false
	}
	wasActive := h.state == primitives.Active

	switch ev.Type {
	case primitives.PointerDown:
		first := h.tracker.Count() == 0
		set, ok := h.tracker.Down(ev)
		if !ok {
			return false, h.tracker.Full()
		}
		h.pointerType = ev.PointerType
		h.track(ev)
		h.behavior.down(h, ev, set, first)
	case primitives.PointerMove:
		set, ok := h.tracker.Move(ev)
		if !ok {
			return false, false
		}
		h.track(ev)
		h.behavior.move(h, ev, set)
	case primitives.PointerUp:
		set, ok := h.tracker.Up(ev)
		if !ok {
			return false, false
		}
		h.track(ev)
		h.behavior.up(h, ev, set, set.Count() == 0)
	case primitives.PointerCancel:
		if _, ok := h.tracker.Pointer(ev.PointerID); !ok && h.state == primitives.Undetermined {
			return false, false
		}
		h.tracker.Cancel()
		h.cancel()
		return true, false
	default:
		return false, false
	}

	if wasActive && h.state == primitives.Active && h.behavior.continuous() {
		h.reg.emitUpdate(h)
	}
	return true, false
}

func (h *Handler) track(ev primitives.PointerEvent) {
	h.stylus = ev.Stylus
	if h.tracker.Count() > 0 {
		h.position = h.tracker.Average()
		h.absolute = h.tracker.AbsoluteAverage()
		return
	}
	h.position = ev.Position
	h.absolute = ev.Absolute
}

func (h *Handler) tick(now time.Duration) {
	if !h.enabled || h.state == primitives.Undetermined || h.state.Finished() {
		return
	}
	h.behavior.tick(h, now)
}

func (h *Handler) measure() primitives.Measurements {
	m := primitives.Measurements{
		NumberOfPointers: h.tracker.Count(),
		PointerType:      h.pointerType,
		Position:         h.position,
		Absolute:         h.absolute,
		Stylus:           h.stylus,
	}
	h.behavior.measure(h, &m)
	return m
}

func (h *Handler) begin() {
	if !h.enabled || h.state != primitives.Undetermined {
		return
	}
	h.moveToState(primitives.Began)
}

// activate asks the registry for permission and moves to Active. With
// manualActivation only a forced call activates.
func (h *Handler) activate(force bool) {
	if h.manualActivation && !force {
		return
	}
	if h.state != primitives.Began {
		return
	}
	switch h.reg.canActivate(h) {
	case Defer:
		h.reg.await(h)
		return
	case Deny:
		h.fail()
		return
	}
	h.reg.makeActive(h)
	h.moveToState(primitives.Active)
}

// activateAndEnd is the path of discrete gestures: once allowed the handler
// goes from Began straight to End and the composer reports the Active in
// between.
func (h *Handler) activateAndEnd(force bool) {
	if h.manualActivation && !force {
		return
	}
	switch h.state {
	case primitives.Active:
		h.moveToState(primitives.End)
		return
	case primitives.Began:
	default:
		return
	}
	h.pendingEnd = true
	switch h.reg.canActivate(h) {
	case Defer:
		h.reg.await(h)
		return
	case Deny:
		h.fail()
		return
	}
	h.pendingEnd = false
	h.reg.makeActive(h)
	h.moveToState(primitives.End)
}

func (h *Handler) end() {
	switch h.state {
	case primitives.Active:
		h.moveToState(primitives.End)
	case primitives.Began:
		h.activateAndEnd(false)
	}
}

// fail rejects the gesture. An Active handler cannot fail and is cancelled.
func (h *Handler) fail() {
	switch h.state {
	case primitives.Began:
		h.moveToState(primitives.Failed)
	case primitives.Active:
		h.moveToState(primitives.Cancelled)
	}
}

// cancel is a no-op outside Began and Active.
func (h *Handler) cancel() {
	if h.state == primitives.Began || h.state == primitives.Active {
		h.moveToState(primitives.Cancelled)
	}
}

func (h *Handler) moveToState(s primitives.State) {
	if h.state == s {
		return
	}
	old := h.state
	h.state = s
	if s == primitives.Active || (s == primitives.End && old != primitives.Active) {
		h.coalescingKey++
	}
	if s.Finished() {
		h.awaiting = false
		h.pendingEnd = false
	}
	h.reg.onStateChange(h, old, s)
}

// reset returns a finished handler to Undetermined. It is silent: the
// terminal state has already been reported.
func (h *Handler) reset() {
	h.state = primitives.Undetermined
	h.awaiting = false
	h.pendingEnd = false
	h.tracker.Reset()
	h.behavior.reset()
}
