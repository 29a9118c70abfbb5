package core

import "github.com/comalice/gesturex/internal/tracker"

// Option configures a Registry via the functional options pattern.
type Option func(*Registry)

// WithMaxPointers caps the pointers tracked per handler. Values outside
// 1..tracker.MaxPointers keep the default.
func WithMaxPointers(n int) Option {
	return func(r *Registry) {
		if n > 0 && n <= tracker.MaxPointers {
			r.maxPointers = n
		}
	}
}

// WithComposer replaces the record composer.
func WithComposer(c *Composer) Option {
	return func(r *Registry) {
		if c != nil {
			r.composer = c
		}
	}
}
