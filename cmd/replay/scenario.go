package main

import (
	"fmt"
	"os"
	"time"

	"github.com/comalice/gesturex"
	"gopkg.in/yaml.v3"
)

// Scenario is a recorded input session: the handlers of a Root and the
// raw pointer events fed to it.
type Scenario struct {
	Root  gesturex.RootConfig `yaml:"root"`
	Steps []Step              `yaml:"steps"`
}

// Step is one pointer event or, with type "tick", a clock advance. At is
// in milliseconds.
type Step struct {
	At      float64            `yaml:"at"`
	Type    string             `yaml:"type"`
	Pointer int                `yaml:"pointer"`
	X       float64            `yaml:"x"`
	Y       float64            `yaml:"y"`
	Views   []gesturex.ViewTag `yaml:"views,omitempty"`
}

// Time returns At as a duration.
func (s Step) Time() time.Duration {
	return time.Duration(s.At * float64(time.Millisecond))
}

// Tick reports whether the step only advances the clock.
func (s Step) Tick() bool { return s.Type == "tick" }

// Event converts the step to a pointer event.
func (s Step) Event() (gesturex.PointerEvent, error) {
	var typ gesturex.EventType
	if err := typ.UnmarshalText([]byte(s.Type)); err != nil {
		return gesturex.PointerEvent{}, err
	}
	p := gesturex.Pt(s.X, s.Y)
	return gesturex.PointerEvent{
		Type:      typ,
		PointerID: s.Pointer,
		Position:  p,
		Absolute:  p,
		Time:      s.Time(),
		Views:     s.Views,
	}, nil
}

// ParseScenario decodes and validates a YAML scenario. Steps must be in
// time order.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.Root.ID == "" {
		sc.Root.ID = "replay"
	}
	if err := sc.Root.Validate(); err != nil {
		return nil, fmt.Errorf("invalid root: %w", err)
	}
	for i, st := range sc.Steps {
		if i > 0 && st.At < sc.Steps[i-1].At {
			return nil, fmt.Errorf("step %d: time %.1fms goes backwards", i, st.At)
		}
		if st.Tick() {
			continue
		}
		if _, err := st.Event(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return &sc, nil
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// Frames groups the steps into frames of width rate, for feeding through
// a tick-based runtime. Clock-only steps are dropped because every frame
// ticks.
func (sc *Scenario) Frames(rate time.Duration) [][]gesturex.PointerEvent {
	var frames [][]gesturex.PointerEvent
	for _, st := range sc.Steps {
		idx := int(st.Time() / rate)
		for len(frames) <= idx {
			frames = append(frames, nil)
		}
		if st.Tick() {
			continue
		}
		ev, _ := st.Event()
		frames[idx] = append(frames[idx], ev)
	}
	return frames
}
