package primitives

import (
	"errors"
	"fmt"
)

// Relations are the negotiated links from one handler to others.
//
// SimultaneousWith lets the handler stay Active together with the listed
// handlers; only mutual declarations take effect. WaitFor defers activation
// until the listed handlers have failed. Blocks is the inverse of WaitFor:
// the listed handlers wait for this one.
type Relations struct {
	SimultaneousWith []HandlerTag `json:"simultaneousWith,omitempty" yaml:"simultaneousWith,omitempty" toml:"simultaneousWith,omitempty"`
	WaitFor          []HandlerTag `json:"waitFor,omitempty" yaml:"waitFor,omitempty" toml:"waitFor,omitempty"`
	Blocks           []HandlerTag `json:"blocks,omitempty" yaml:"blocks,omitempty" toml:"blocks,omitempty"`
}

// Empty reports whether r declares nothing.
func (r Relations) Empty() bool {
	return len(r.SimultaneousWith) == 0 && len(r.WaitFor) == 0 && len(r.Blocks) == 0
}

// HandlerSpec is the serializable description of one handler.
type HandlerSpec struct {
	Tag       HandlerTag `json:"tag" yaml:"tag" toml:"tag"`
	Kind      Kind       `json:"kind" yaml:"kind" toml:"kind"`
	View      ViewTag    `json:"view,omitempty" yaml:"view,omitempty" toml:"view,omitempty"`
	Config    Config     `json:"config,omitempty" yaml:"config,omitempty" toml:"config,omitempty"`
	Relations `yaml:",inline"`
}

// RootConfig is the serializable configuration of a Root: its handlers, in
// creation order, with their configuration bags and relations.
type RootConfig struct {
	Version  string        `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	ID       string        `json:"id" yaml:"id" toml:"id"`
	Handlers []HandlerSpec `json:"handlers" yaml:"handlers" toml:"handlers"`
}

// Validate checks that every handler has a known kind and a unique tag.
// Relations may reference tags that are not declared; those are ignored at
// resolution time.
func (c *RootConfig) Validate() error {
	if c.ID == "" {
		return errors.New("root ID is required")
	}
	seen := make(map[HandlerTag]bool, len(c.Handlers))
	for i, h := range c.Handlers {
		if !h.Kind.Valid() {
			return fmt.Errorf("handler %d (tag %d): unknown kind %d", i, h.Tag, h.Kind)
		}
		if seen[h.Tag] {
			return fmt.Errorf("handler %d: duplicate tag %d", i, h.Tag)
		}
		seen[h.Tag] = true
	}
	return nil
}

// Handler returns the spec with the given tag.
func (c *RootConfig) Handler(tag HandlerTag) (HandlerSpec, bool) {
	for _, h := range c.Handlers {
		if h.Tag == tag {
			return h, true
		}
	}
	return HandlerSpec{}, false
}
