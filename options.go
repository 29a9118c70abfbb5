package gesturex

import "github.com/comalice/gesturex/internal/core"

// Option configures a Root via the functional options pattern.
type Option func(*Root)

// WithID sets the Root identifier. The default is a random UUID.
func WithID(id string) Option {
	return func(r *Root) {
		if id != "" {
			r.id = id
		}
	}
}

// WithSink sets the receiver of state change and gesture records.
func WithSink(s Sink) Option {
	return func(r *Root) {
		r.sink = s
	}
}

// WithMaxPointers caps the pointers each handler tracks (at most 12).
func WithMaxPointers(n int) Option {
	return func(r *Root) {
		r.regOpts = append(r.regOpts, core.WithMaxPointers(n))
	}
}

// WithPersister enables Save and Restore.
func WithPersister(p Persister) Option {
	return func(r *Root) {
		r.persister = p
	}
}

// WithVisualizer replaces the DOT renderer used by Visualize.
func WithVisualizer(v Visualizer) Option {
	return func(r *Root) {
		if v != nil {
			r.visualizer = v
		}
	}
}
