package gesturex

import (
	"fmt"
	"sort"
)

// Builder provides a fluent API for describing a gesture set with names
// instead of hand-picked tags, and for composing gestures the way a UI
// declares them: exclusive, simultaneous or racing.
type Builder struct {
	id        string
	view      ViewTag
	nextTag   HandlerTag
	nameToTag map[string]HandlerTag
	tagToName map[HandlerTag]string
	specs     map[HandlerTag]*HandlerSpec
	order     []HandlerTag
}

// GestureBuilder configures one named gesture.
type GestureBuilder struct {
	b    *Builder
	spec *HandlerSpec
	name string
}

// NewBuilder creates a builder for a Root with the given id whose gestures
// are bound to view unless a gesture says otherwise.
func NewBuilder(id string, view ViewTag) *Builder {
	return &Builder{
		id:        id,
		view:      view,
		nextTag:   1,
		nameToTag: make(map[string]HandlerTag),
		tagToName: make(map[HandlerTag]string),
		specs:     make(map[HandlerTag]*HandlerSpec),
	}
}

// Gesture declares or retrieves the gesture called name. Redeclaring a
// gesture with another kind changes its kind.
func (b *Builder) Gesture(name string, kind Kind) *GestureBuilder {
	tag := b.assignTag(name)
	spec, ok := b.specs[tag]
	if !ok {
		spec = &HandlerSpec{Tag: tag, View: b.view}
		b.specs[tag] = spec
	}
	if !ok || spec.Kind == -1 {
		b.order = append(b.order, tag)
	}
	spec.Kind = kind
	return &GestureBuilder{b: b, spec: spec, name: name}
}

// Exclusive gives the gestures decreasing priority: each one waits for all
// the gestures listed before it to fail.
func (b *Builder) Exclusive(names ...string) *Builder {
	for i, name := range names {
		spec := b.ref(name)
		for _, prev := range names[:i] {
			spec.WaitFor = appendTag(spec.WaitFor, b.assignTag(prev))
		}
	}
	return b
}

// Simultaneous lets every listed gesture be active together with the
// others.
func (b *Builder) Simultaneous(names ...string) *Builder {
	for _, name := range names {
		spec := b.ref(name)
		for _, other := range names {
			if other != name {
				spec.SimultaneousWith = appendTag(spec.SimultaneousWith, b.assignTag(other))
			}
		}
	}
	return b
}

// Race declares gestures that compete without extra relations: the first
// one to activate cancels the others.
func (b *Builder) Race(names ...string) *Builder {
	for _, name := range names {
		b.ref(name)
	}
	return b
}

// Build validates the description and returns the RootConfig. Every name
// used in a composition must have been declared with Gesture.
func (b *Builder) Build() (RootConfig, error) {
	if err := b.validate(); err != nil {
		return RootConfig{}, err
	}
	cfg := RootConfig{ID: b.id}
	for _, tag := range b.order {
		spec := *b.specs[tag]
		spec.Config = spec.Config.Clone()
		cfg.Handlers = append(cfg.Handlers, spec)
	}
	if err := cfg.Validate(); err != nil {
		return RootConfig{}, err
	}
	return cfg, nil
}

// GetTag returns the tag assigned to name, or 0 when the name is unknown.
func (b *Builder) GetTag(name string) HandlerTag {
	return b.nameToTag[name]
}

// GetName returns the name of tag.
func (b *Builder) GetName(tag HandlerTag) string {
	return b.tagToName[tag]
}

// assignTag returns the tag of name, assigning the next free tag to a new
// name. Forward references are allowed.
func (b *Builder) assignTag(name string) HandlerTag {
	if tag, ok := b.nameToTag[name]; ok {
		return tag
	}
	tag := b.nextTag
	b.nextTag++
	b.nameToTag[name] = tag
	b.tagToName[tag] = name
	return tag
}

// ref returns the spec of name, creating a placeholder that validate
// reports if it is never declared.
func (b *Builder) ref(name string) *HandlerSpec {
	tag := b.assignTag(name)
	if spec, ok := b.specs[tag]; ok {
		return spec
	}
	spec := &HandlerSpec{Tag: tag, Kind: -1, View: b.view}
	b.specs[tag] = spec
	return spec
}

func (b *Builder) validate() error {
	var missing []string
	for tag, spec := range b.specs {
		if spec.Kind == -1 {
			missing = append(missing, b.tagToName[tag])
		}
	}
	for tag := range b.tagToName {
		if _, ok := b.specs[tag]; !ok {
			missing = append(missing, b.tagToName[tag])
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("gestures referenced but never declared: %v", missing)
	}
	return nil
}

func appendTag(tags []HandlerTag, tag HandlerTag) []HandlerTag {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

// GestureBuilder fluent methods

// Config merges cfg into the gesture configuration.
func (gb *GestureBuilder) Config(cfg Config) *GestureBuilder {
	gb.spec.Config = gb.spec.Config.Merge(cfg)
	return gb
}

// Set sets one configuration key.
func (gb *GestureBuilder) Set(key string, value any) *GestureBuilder {
	return gb.Config(Config{key: value})
}

// View binds the gesture to another view than the builder default.
func (gb *GestureBuilder) View(v ViewTag) *GestureBuilder {
	gb.spec.View = v
	return gb
}

// WaitFor makes the gesture wait for the named gestures to fail.
func (gb *GestureBuilder) WaitFor(names ...string) *GestureBuilder {
	for _, n := range names {
		gb.spec.WaitFor = appendTag(gb.spec.WaitFor, gb.b.assignTag(n))
	}
	return gb
}

// Blocks makes the named gestures wait for this one to fail.
func (gb *GestureBuilder) Blocks(names ...string) *GestureBuilder {
	for _, n := range names {
		gb.spec.Blocks = appendTag(gb.spec.Blocks, gb.b.assignTag(n))
	}
	return gb
}

// SimultaneousWith allows the gesture to be active together with the named
// ones. The other side has to declare it too.
func (gb *GestureBuilder) SimultaneousWith(names ...string) *GestureBuilder {
	for _, n := range names {
		gb.spec.SimultaneousWith = appendTag(gb.spec.SimultaneousWith, gb.b.assignTag(n))
	}
	return gb
}

// Tag returns the tag assigned to the gesture.
func (gb *GestureBuilder) Tag() HandlerTag {
	return gb.spec.Tag
}
