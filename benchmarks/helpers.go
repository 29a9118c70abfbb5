// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"
	"time"

	"github.com/comalice/gesturex"
	"gopkg.in/yaml.v3"
)

// GenExclusiveConfig creates n pan handlers on view 1 where every handler
// waits for all handlers created before it.
func GenExclusiveConfig(n int) gesturex.RootConfig {
	if n < 1 {
		n = 1
	}
	b := gesturex.NewBuilder(fmt.Sprintf("exclusive_%d", n), 1)
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("pan%d", i)
		b.Gesture(names[i], gesturex.Pan)
	}
	b.Exclusive(names...)
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}

// GenSimultaneousConfig creates n pan handlers on view 1 that are all
// simultaneous with each other.
func GenSimultaneousConfig(n int) gesturex.RootConfig {
	if n < 1 {
		n = 1
	}
	b := gesturex.NewBuilder(fmt.Sprintf("simultaneous_%d", n), 1)
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("pan%d", i)
		b.Gesture(names[i], gesturex.Pan)
	}
	b.Simultaneous(names...)
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}

// GenFlatConfig creates n pan handlers on view 1 with no relations.
func GenFlatConfig(n int) gesturex.RootConfig {
	cfg := gesturex.RootConfig{ID: fmt.Sprintf("flat_%d", n)}
	for i := 0; i < n; i++ {
		cfg.Handlers = append(cfg.Handlers, gesturex.HandlerSpec{
			Tag:  gesturex.HandlerTag(i + 1),
			Kind: gesturex.Pan,
			View: 1,
		})
	}
	return cfg
}

// GenMixedConfig creates one handler of every kind on view 1 with no
// relations.
func GenMixedConfig() gesturex.RootConfig {
	kinds := []gesturex.Kind{
		gesturex.Pan, gesturex.Tap, gesturex.LongPress, gesturex.Pinch,
		gesturex.Rotation, gesturex.Fling, gesturex.NativeView, gesturex.Manual,
	}
	cfg := gesturex.RootConfig{ID: "mixed"}
	for i, k := range kinds {
		cfg.Handlers = append(cfg.Handlers, gesturex.HandlerSpec{
			Tag:  gesturex.HandlerTag(i + 1),
			Kind: k,
			View: 1,
		})
	}
	return cfg
}

// NewRoot creates a Root with cfg applied.
func NewRoot(cfg gesturex.RootConfig, opts ...gesturex.Option) *gesturex.Root {
	root := gesturex.NewRoot(opts...)
	if err := root.Apply(cfg); err != nil {
		panic(err)
	}
	return root
}

// GenDrag returns one complete gesture of a single pointer: a down, moves
// of 5px every 8ms and an up, starting at start.
func GenDrag(moves int, start time.Duration) []gesturex.PointerEvent {
	at := start
	p := gesturex.Pt(0, 0)
	events := []gesturex.PointerEvent{{Type: gesturex.PointerDown, PointerID: 1, Position: p, Absolute: p, Time: at}}
	for i := 1; i <= moves; i++ {
		at += 8 * time.Millisecond
		p = gesturex.Pt(float64(5*i), 0)
		events = append(events, gesturex.PointerEvent{Type: gesturex.PointerMove, PointerID: 1, Position: p, Absolute: p, Time: at})
	}
	at += 8 * time.Millisecond
	events = append(events, gesturex.PointerEvent{Type: gesturex.PointerUp, PointerID: 1, Position: p, Absolute: p, Time: at})
	return events
}

// GenConfigYAML generates YAML bytes for an exclusive configuration of n
// handlers.
func GenConfigYAML(n int) []byte {
	data, err := yaml.Marshal(GenExclusiveConfig(n))
	if err != nil {
		panic(err)
	}
	return data
}
