package core

import (
	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/tracker"
)

// Decision is the outcome of an activation request.
type Decision int

const (
	// Allow lets the requester become Active.
	Allow Decision = iota
	// Defer keeps the requester Began until a handler it waits for finishes.
	Defer
	// Deny fails the requester.
	Deny
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Defer:
		return "defer"
	}
	return "deny"
}

// Entry is the state of one handler inside a Frame.
type Entry struct {
	Tag                  primitives.HandlerTag
	Kind                 primitives.Kind
	State                primitives.State
	View                 primitives.ViewTag
	Attached             bool
	Awaiting             bool
	Pointers             []int
	DisallowInterruption bool
}

// Frame is an immutable snapshot of the registry taken when a handler asks
// to activate. Resolution is a pure function of a Frame.
type Frame struct {
	Entries   []Entry
	Relations map[primitives.HandlerTag]primitives.Relations
	// Queue lists the awaiting handlers in the order they were deferred.
	Queue     []primitives.HandlerTag
}

func (f Frame) entry(tag primitives.HandlerTag) (Entry, bool) {
	for _, e := range f.Entries {
		if e.Tag == tag {
			return e, true
		}
	}
	return Entry{}, false
}

func containsTag(tags []primitives.HandlerTag, tag primitives.HandlerTag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Waits reports whether a must wait for b: a lists b in WaitFor or b lists a
// in Blocks.
func (f Frame) Waits(a, b primitives.HandlerTag) bool {
	return containsTag(f.Relations[a].WaitFor, b) || containsTag(f.Relations[b].Blocks, a)
}

// queuedBefore reports whether a was deferred before b.
func (f Frame) queuedBefore(a, b primitives.HandlerTag) bool {
	for _, t := range f.Queue {
		switch t {
		case a:
			return true
		case b:
			return false
		}
	}
	return false
}

// Simultaneous reports whether a and b may be Active together. Both sides
// have to declare it.
func (f Frame) Simultaneous(a, b primitives.HandlerTag) bool {
	return containsTag(f.Relations[a].SimultaneousWith, b) && containsTag(f.Relations[b].SimultaneousWith, a)
}

// Overlap reports whether two handlers compete for the same input: they
// track a common pointer or are bound to the same view.
func Overlap(a, b Entry) bool {
	if tracker.ShareCommonPointers(a.Pointers, b.Pointers) {
		return true
	}
	return a.Attached && b.Attached && a.View == b.View
}

// Resolve decides whether the handler tag may become Active now.
//
// A handler in a wait relation with the requester that is already Active
// denies it. A handler the requester waits for that is still Began defers
// it, except when the two wait for each other: then the one that asked
// first goes ahead and the other fails when it activates. An overlapping
// Active handler without mutual simultaneity denies it,
// so the first handler to activate wins, unless the requester disallows
// interruption. An Active handler that disallows interruption denies every
// overlapping requester. Tags without an entry are ignored.
func Resolve(f Frame, tag primitives.HandlerTag) Decision {
	req, ok := f.entry(tag)
	if !ok {
		return Deny
	}
	decision := Allow
	for _, o := range f.Entries {
		if o.Tag == tag {
			continue
		}
		reqWaits := f.Waits(tag, o.Tag)
		if reqWaits || f.Waits(o.Tag, tag) {
			if o.State == primitives.Active {
				return Deny
			}
			if reqWaits && o.State == primitives.Began && !yields(f, req, o) {
				decision = Defer
			}
			continue
		}
		if o.State != primitives.Active || !Overlap(req, o) {
			continue
		}
		if o.DisallowInterruption {
			return Deny
		}
		if !f.Simultaneous(tag, o.Tag) && !req.DisallowInterruption {
			return Deny
		}
	}
	return decision
}

// yields reports whether req goes ahead of o in a mutual wait: o has not
// asked to activate yet, or asked after req.
func yields(f Frame, req, o Entry) bool {
	if !f.Waits(o.Tag, req.Tag) {
		return false
	}
	if !o.Awaiting {
		return true
	}
	return req.Awaiting && f.queuedBefore(req.Tag, o.Tag)
}

// Conflicts lists what activating tag does to the other handlers: Began
// handlers waiting for it fail, overlapping Began handlers it cannot run
// with are cancelled, and so are overlapping Active ones when it disallows
// interruption. Both lists are in frame order.
func Conflicts(f Frame, tag primitives.HandlerTag) (fail, cancel []primitives.HandlerTag) {
	req, ok := f.entry(tag)
	if !ok {
		return nil, nil
	}
	for _, o := range f.Entries {
		if o.Tag == tag {
			continue
		}
		if f.Waits(o.Tag, tag) {
			if o.State == primitives.Began {
				fail = append(fail, o.Tag)
			}
			continue
		}
		if f.Waits(tag, o.Tag) || !Overlap(req, o) || f.Simultaneous(tag, o.Tag) {
			continue
		}
		switch {
		case o.State == primitives.Began:
			cancel = append(cancel, o.Tag)
		case o.State == primitives.Active && req.DisallowInterruption:
			cancel = append(cancel, o.Tag)
		}
	}
	return fail, cancel
}
