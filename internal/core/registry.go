package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/tracker"
)

var (
	ErrNotFound    = errors.New("handler not found")
	ErrTagInUse    = errors.New("handler tag already in use")
	ErrUnknownKind = errors.New("unknown handler kind")
)

// Emission is one composed record waiting for delivery. Exactly one field
// is set.
type Emission struct {
	StateChange *primitives.StateChangeEvent
	Gesture     *primitives.GestureEvent
}

// Deliver hands the record to s.
func (e Emission) Deliver(s Sink) {
	switch {
	case e.StateChange != nil:
		s.OnStateChange(*e.StateChange)
	case e.Gesture != nil:
		s.OnGesture(*e.Gesture)
	}
}

// Result summarizes the processing of one raw pointer event.
type Result struct {
	// Delivered is the number of handlers that took the event.
	Delivered int
	// Dropped is set when a handler ignored a down because it already
	// tracks the maximum number of pointers.
	Dropped bool
}

// Registry owns the handlers of one Root, the relations between them and
// the records they emit. Records accumulate in an outbox until Drain.
type Registry struct {
	handlers    []*Handler
	byTag       map[primitives.HandlerTag]*Handler
	relations   map[primitives.HandlerTag]primitives.Relations
	awaiting    []*Handler
	composer    *Composer
	outbox      []Emission
	maxPointers int
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byTag:       make(map[primitives.HandlerTag]*Handler),
		relations:   make(map[primitives.HandlerTag]primitives.Relations),
		composer:    &Composer{},
		maxPointers: tracker.MaxPointers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create registers a new handler. Malformed configuration values fall back
// to defaults and never fail creation.
func (r *Registry) Create(kind primitives.Kind, tag primitives.HandlerTag, cfg primitives.Config) (*Handler, error) {
	if _, ok := behaviors[kind]; !ok {
		return nil, fmt.Errorf("kind %d: %w", kind, ErrUnknownKind)
	}
	if _, ok := r.byTag[tag]; ok {
		return nil, fmt.Errorf("tag %d: %w", tag, ErrTagInUse)
	}
	h := newHandler(r, kind, tag, cfg)
	r.handlers = append(r.handlers, h)
	r.byTag[tag] = h
	return h, nil
}

// Update merges cfg into the handler configuration. Disabling a handler
// fails it when Began, cancels it when Active and forgets its pointers: a
// disabled handler never sees their release.
func (r *Registry) Update(tag primitives.HandlerTag, cfg primitives.Config) error {
	h, ok := r.byTag[tag]
	if !ok {
		return fmt.Errorf("tag %d: %w", tag, ErrNotFound)
	}
	h.configure(h.config.Merge(cfg))
	if !h.enabled {
		h.fail()
		if !h.state.Finished() {
			r.unawait(h)
			h.reset()
		}
	}
	r.cleanup()
	return nil
}

// Drop cancels and removes a handler. Its relations stay declared and are
// ignored until a handler with the same tag is created again.
func (r *Registry) Drop(tag primitives.HandlerTag) {
	h, ok := r.byTag[tag]
	if !ok {
		return
	}
	h.cancel()
	r.unawait(h)
	delete(r.byTag, tag)
	for i, o := range r.handlers {
		if o == h {
			r.handlers = append(r.handlers[:i:i], r.handlers[i+1:]...)
			break
		}
	}
	r.cleanup()
}

// DropAll cancels and removes every handler and forgets all relations.
func (r *Registry) DropAll() {
	for _, h := range r.Handlers() {
		r.Drop(h.tag)
	}
	r.relations = make(map[primitives.HandlerTag]primitives.Relations)
}

// Attach binds a handler to a view. Only attached handlers receive input.
func (r *Registry) Attach(tag primitives.HandlerTag, view primitives.ViewTag) error {
	h, ok := r.byTag[tag]
	if !ok {
		return fmt.Errorf("tag %d: %w", tag, ErrNotFound)
	}
	if h.attached && h.view != view {
		h.cancel()
		r.cleanup()
	}
	h.view = view
	h.attached = true
	return nil
}

// Detach unbinds a handler, cancelling a gesture in progress.
func (r *Registry) Detach(tag primitives.HandlerTag) {
	h, ok := r.byTag[tag]
	if !ok {
		return
	}
	h.cancel()
	h.attached = false
	r.cleanup()
}

// SetRelations replaces the relations declared by tag. Tags need not exist.
func (r *Registry) SetRelations(tag primitives.HandlerTag, rel primitives.Relations) {
	if rel.Empty() {
		delete(r.relations, tag)
		return
	}
	r.relations[tag] = rel
}

// Relations returns the relations declared by tag.
func (r *Registry) Relations(tag primitives.HandlerTag) primitives.Relations {
	return r.relations[tag]
}

// Handler returns the handler with the given tag.
func (r *Registry) Handler(tag primitives.HandlerTag) (*Handler, bool) {
	h, ok := r.byTag[tag]
	return h, ok
}

// Handlers returns the handlers in creation order.
func (r *Registry) Handlers() []*Handler {
	out := make([]*Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}

// Dispatch fans one raw pointer event out to the handlers bound to its
// views, in creation order, then resets the handlers that finished.
func (r *Registry) Dispatch(ev primitives.PointerEvent) Result {
	var res Result
	for _, h := range r.targets(ev) {
		delivered, dropped := h.handlePointer(ev)
		if delivered {
			res.Delivered++
		}
		if dropped {
			res.Dropped = true
			Logf("gesturex: handler %d dropped pointer %d: %d pointers already tracked", h.tag, ev.PointerID, h.tracker.Count())
		}
	}
	r.cleanup()
	return res
}

func (r *Registry) targets(ev primitives.PointerEvent) []*Handler {
	out := make([]*Handler, 0, len(r.handlers))
	for _, h := range r.handlers {
		if !h.attached {
			continue
		}
		if len(ev.Views) > 0 && !containsView(ev.Views, h.view) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func containsView(views []primitives.ViewTag, v primitives.ViewTag) bool {
	for _, w := range views {
		if w == v {
			return true
		}
	}
	return false
}

// Tick lets time-based handlers advance to now without a pointer event.
func (r *Registry) Tick(now time.Duration) {
	for _, h := range r.Handlers() {
		if h.attached {
			h.tick(now)
		}
	}
	r.cleanup()
}

// SetState drives a handler from outside, the way a manual gesture is
// driven. Activation through SetState ignores manualActivation but still
// obeys relations.
func (r *Registry) SetState(tag primitives.HandlerTag, s primitives.State) error {
	h, ok := r.byTag[tag]
	if !ok {
		return fmt.Errorf("tag %d: %w", tag, ErrNotFound)
	}
	switch s {
	case primitives.Began:
		h.begin()
	case primitives.Active:
		h.begin()
		h.activate(true)
	case primitives.End:
		if h.state == primitives.Began {
			h.activateAndEnd(true)
		} else {
			h.end()
		}
	case primitives.Failed:
		h.fail()
	case primitives.Cancelled:
		h.cancel()
	}
	r.cleanup()
	return nil
}

// Drain returns and clears the pending records.
func (r *Registry) Drain() []Emission {
	out := r.outbox
	r.outbox = nil
	return out
}

// Frame snapshots the registry for relation resolution.
func (r *Registry) Frame() Frame {
	f := Frame{
		Entries:   make([]Entry, 0, len(r.handlers)),
		Relations: make(map[primitives.HandlerTag]primitives.Relations, len(r.relations)),
	}
	for _, h := range r.handlers {
		f.Entries = append(f.Entries, Entry{
			Tag:                  h.tag,
			Kind:                 h.kind,
			State:                h.state,
			View:                 h.view,
			Attached:             h.attached,
			Awaiting:             h.awaiting,
			Pointers:             h.tracker.IDs(),
			DisallowInterruption: h.disallowsInterruption(),
		})
	}
	for tag, rel := range r.relations {
		f.Relations[tag] = rel
	}
	for _, h := range r.awaiting {
		f.Queue = append(f.Queue, h.tag)
	}
	return f
}

func (r *Registry) canActivate(h *Handler) Decision {
	return Resolve(r.Frame(), h.tag)
}

func (r *Registry) await(h *Handler) {
	if h.awaiting {
		return
	}
	h.awaiting = true
	r.awaiting = append(r.awaiting, h)
}

func (r *Registry) unawait(h *Handler) {
	for i, o := range r.awaiting {
		if o == h {
			r.awaiting = append(r.awaiting[:i:i], r.awaiting[i+1:]...)
			return
		}
	}
}

// makeActive applies the side effects of h activating.
func (r *Registry) makeActive(h *Handler) {
	h.awaiting = false
	r.unawait(h)
	fail, cancel := Conflicts(r.Frame(), h.tag)
	for _, tag := range fail {
		if o, ok := r.byTag[tag]; ok {
			o.fail()
		}
	}
	for _, tag := range cancel {
		if o, ok := r.byTag[tag]; ok {
			o.cancel()
		}
	}
}

func (r *Registry) onStateChange(h *Handler, old, s primitives.State) {
	r.outbox = append(r.outbox, r.composer.Compose(h, old, s)...)
	if !s.Finished() {
		return
	}
	r.unawait(h)
	// Handlers waiting for h may proceed when it failed or was cancelled,
	// and lose when it ended.
	waiting := make([]*Handler, len(r.awaiting))
	copy(waiting, r.awaiting)
	frame := r.Frame()
	for _, a := range waiting {
		if !a.awaiting || !frame.Waits(a.tag, h.tag) {
			continue
		}
		if s == primitives.End {
			a.fail()
			continue
		}
		if a.pendingEnd {
			a.activateAndEnd(true)
		} else {
			a.activate(true)
		}
	}
}

func (r *Registry) emitUpdate(h *Handler) {
	if e, ok := r.composer.Update(h); ok {
		r.outbox = append(r.outbox, e)
	}
}

// cleanup resets every finished handler to Undetermined.
func (r *Registry) cleanup() {
	for _, h := range r.handlers {
		if h.state.Finished() {
			h.reset()
		}
	}
}
