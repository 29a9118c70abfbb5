package gesturex

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comalice/gesturex/internal/core"
	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/production"
)

// ProcessingResult summarizes one FeedPointerEvent call.
type ProcessingResult struct {
	// Delivered is the number of handlers that took the event.
	Delivered int
	// Dropped is set when at least one handler ignored a down because it
	// already tracks the maximum number of pointers.
	Dropped bool
	// Records is the number of records delivered to the sink.
	Records int
}

// Root is the entry point of the recognizer: it owns the handlers of one
// input source and serializes every call. Records produced by a call are
// delivered to the sink after the Root lock is released, in emission order,
// so sinks may call back into the Root.
type Root struct {
	mu         sync.Mutex
	id         string
	reg        *core.Registry
	regOpts    []core.Option
	sink       Sink
	persister  Persister
	visualizer Visualizer
}

// NewRoot creates an empty Root.
func NewRoot(opts ...Option) *Root {
	r := &Root{
		id:         uuid.NewString(),
		visualizer: &production.DefaultVisualizer{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.reg = core.NewRegistry(r.regOpts...)
	return r
}

// ID returns the Root identifier used for persistence.
func (r *Root) ID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id
}

// do runs fn under the lock and then hands the records it produced to the
// sink. It returns the number of records delivered.
func (r *Root) do(fn func() error) (int, error) {
	r.mu.Lock()
	err := fn()
	out := r.reg.Drain()
	sink := r.sink
	r.mu.Unlock()

	if sink == nil {
		return 0, err
	}
	for _, e := range out {
		e.Deliver(sink)
	}
	return len(out), err
}

// CreateHandler registers a handler of the given kind. The handler receives
// no input until it is attached to a view.
func (r *Root) CreateHandler(kind Kind, tag HandlerTag, cfg Config) (*Handle, error) {
	_, err := r.do(func() error {
		_, err := r.reg.Create(kind, tag, cfg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Handle{root: r, tag: tag}, nil
}

// Handler returns a handle to an existing handler.
func (r *Root) Handler(tag HandlerTag) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reg.Handler(tag); !ok {
		return nil, false
	}
	return &Handle{root: r, tag: tag}, true
}

// UpdateHandler merges cfg into the configuration of tag. Setting
// "enabled" to false stops a gesture in progress.
func (r *Root) UpdateHandler(tag HandlerTag, cfg Config) error {
	_, err := r.do(func() error { return r.reg.Update(tag, cfg) })
	return err
}

// DropHandler cancels and removes a handler. Unknown tags are ignored.
func (r *Root) DropHandler(tag HandlerTag) {
	r.do(func() error {
		r.reg.Drop(tag)
		return nil
	})
}

// DropAll removes every handler and relation.
func (r *Root) DropAll() {
	r.do(func() error {
		r.reg.DropAll()
		return nil
	})
}

// AttachHandler binds a handler to a view. Rebinding an attached handler to
// another view cancels its gesture in progress.
func (r *Root) AttachHandler(tag HandlerTag, view ViewTag) error {
	_, err := r.do(func() error { return r.reg.Attach(tag, view) })
	return err
}

// DetachHandler unbinds a handler from its view.
func (r *Root) DetachHandler(tag HandlerTag) {
	r.do(func() error {
		r.reg.Detach(tag)
		return nil
	})
}

// DeclareRelations replaces the relations declared by tag. The tag and the
// tags it references need not exist yet.
func (r *Root) DeclareRelations(tag HandlerTag, rel Relations) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reg.SetRelations(tag, rel)
}

// FeedPointerEvent processes one raw pointer callback.
func (r *Root) FeedPointerEvent(ev PointerEvent) ProcessingResult {
	var res core.Result
	n, _ := r.do(func() error {
		res = r.reg.Dispatch(ev)
		return nil
	})
	return ProcessingResult{Delivered: res.Delivered, Dropped: res.Dropped, Records: n}
}

// Tick advances time-based recognizers to now, on the same time base as
// PointerEvent.Time.
func (r *Root) Tick(now time.Duration) {
	r.do(func() error {
		r.reg.Tick(now)
		return nil
	})
}

// SetState drives a handler from outside. Activation still obeys relations.
func (r *Root) SetState(tag HandlerTag, s State) error {
	_, err := r.do(func() error { return r.reg.SetState(tag, s) })
	return err
}

// HandlerState returns the current state of tag.
func (r *Root) HandlerState(tag HandlerTag) (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.reg.Handler(tag)
	if !ok {
		return Undetermined, false
	}
	return h.State(), true
}

// Config returns the serializable configuration of the Root.
func (r *Root) Config() RootConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.config()
}

func (r *Root) config() RootConfig {
	cfg := RootConfig{ID: r.id}
	for _, h := range r.reg.Handlers() {
		spec := HandlerSpec{
			Tag:       h.Tag(),
			Kind:      h.Kind(),
			Config:    h.Config(),
			Relations: r.reg.Relations(h.Tag()),
		}
		if h.Attached() {
			spec.View = h.View()
		}
		cfg.Handlers = append(cfg.Handlers, spec)
	}
	cfg.Version = primitives.ComputeVersion(&cfg)
	return cfg
}

func (r *Root) statuses() []HandlerStatus {
	var out []HandlerStatus
	for _, h := range r.reg.Handlers() {
		out = append(out, HandlerStatus{Tag: h.Tag(), State: h.State(), Attached: h.Attached()})
	}
	return out
}

// Apply replaces every handler with the ones described by cfg. Handlers
// with a non-zero view are attached to it. Gestures in progress are
// cancelled.
func (r *Root) Apply(cfg RootConfig) error {
	if cfg.ID == "" {
		cfg.ID = r.ID()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("apply config: %w", err)
	}
	_, err := r.do(func() error {
		r.reg.DropAll()
		r.id = cfg.ID
		for _, spec := range cfg.Handlers {
			if _, err := r.reg.Create(spec.Kind, spec.Tag, spec.Config); err != nil {
				return fmt.Errorf("apply config: %w", err)
			}
			if spec.View != 0 {
				if err := r.reg.Attach(spec.Tag, spec.View); err != nil {
					return fmt.Errorf("apply config: %w", err)
				}
			}
			r.reg.SetRelations(spec.Tag, spec.Relations)
		}
		return nil
	})
	return err
}

// Snapshot captures the configuration and the handler states.
func (r *Root) Snapshot() RootSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RootSnapshot{
		RootID:    r.id,
		Config:    r.config(),
		States:    r.statuses(),
		Timestamp: time.Now().UTC(),
	}
}

// Save persists a snapshot of the Root.
func (r *Root) Save(ctx context.Context) error {
	if r.persister == nil {
		return ErrNoPersister
	}
	snap := r.Snapshot()
	if err := r.persister.Save(ctx, snap); err != nil {
		return fmt.Errorf("save root %s: %w", snap.RootID, err)
	}
	return nil
}

// Restore loads the snapshot stored under id and applies its configuration.
// Handler states are not restored: a gesture cannot resume without its
// pointers, so every handler starts Undetermined.
func (r *Root) Restore(ctx context.Context, id string) error {
	if r.persister == nil {
		return ErrNoPersister
	}
	snap, err := r.persister.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("restore root %s: %w", id, err)
	}
	if snap.Config.ID == "" {
		snap.Config.ID = id
	}
	return r.Apply(snap.Config)
}

// Visualize renders the relation graph in Graphviz DOT, colored by the
// current handler states.
func (r *Root) Visualize() string {
	r.mu.Lock()
	cfg, states := r.config(), r.statuses()
	r.mu.Unlock()
	return r.visualizer.ExportDOT(cfg, states)
}

// Handle is a reference to one handler of a Root.
type Handle struct {
	root *Root
	tag  HandlerTag
}

// Tag returns the handler tag.
func (h *Handle) Tag() HandlerTag { return h.tag }

// State returns the current state, or Undetermined when the handler was
// dropped.
func (h *Handle) State() State {
	s, _ := h.root.HandlerState(h.tag)
	return s
}

// Attach binds the handler to view.
func (h *Handle) Attach(view ViewTag) error { return h.root.AttachHandler(h.tag, view) }

// Update merges cfg into the handler configuration.
func (h *Handle) Update(cfg Config) error { return h.root.UpdateHandler(h.tag, cfg) }

// Relate replaces the relations declared by the handler.
func (h *Handle) Relate(rel Relations) { h.root.DeclareRelations(h.tag, rel) }

// SetState drives the handler from outside.
func (h *Handle) SetState(s State) error { return h.root.SetState(h.tag, s) }

// Drop removes the handler.
func (h *Handle) Drop() { h.root.DropHandler(h.tag) }
