// Tests for DefaultVisualizer DOT export.
package production

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/comalice/gesturex/internal/core"
	"github.com/comalice/gesturex/internal/primitives"
)

func TestDefaultVisualizer_ExportDOT(t *testing.T) {
	v := &DefaultVisualizer{}
	config := primitives.RootConfig{
		ID: "viz",
		Handlers: []primitives.HandlerSpec{
			{Tag: 1, Kind: primitives.Pinch, Relations: primitives.Relations{SimultaneousWith: []primitives.HandlerTag{2}}},
			{Tag: 2, Kind: primitives.Rotation, Relations: primitives.Relations{SimultaneousWith: []primitives.HandlerTag{1}}},
			{Tag: 3, Kind: primitives.Tap, Relations: primitives.Relations{WaitFor: []primitives.HandlerTag{4}, SimultaneousWith: []primitives.HandlerTag{1}}},
			{Tag: 4, Kind: primitives.Tap, Relations: primitives.Relations{Blocks: []primitives.HandlerTag{1}}},
		},
	}
	states := []core.HandlerStatus{
		{Tag: 1, State: primitives.Active, Attached: true},
		{Tag: 2, State: primitives.Began, Attached: true},
		{Tag: 3, State: primitives.Undetermined, Attached: false},
	}
	dot := v.ExportDOT(config, states)

	for _, want := range []string{
		`digraph Gestures {`,
		`"1" [label="1 pinch\nACTIVE" style="rounded,filled" fillcolor=lightgreen];`,
		`"2" [label="2 rotation\nBEGAN" style="rounded,filled" fillcolor=lightyellow];`,
		`"3" [label="3 tap" color=grey];`,
		`"1" -> "2" [label="simultaneous" dir=both color=blue];`,
		`"3" -> "4" [label="waitFor"];`,
		`"3" -> "1" [label="simultaneous (one-sided)" style=dotted];`,
		`"1" -> "4" [label="blocked by" style=dashed];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"2" -> "1"`) {
		t.Error("mutual simultaneity should be drawn once")
	}
}

func TestDefaultVisualizer_ExportJSON(t *testing.T) {
	v := &DefaultVisualizer{}
	config := primitives.RootConfig{ID: "viz", Handlers: []primitives.HandlerSpec{{Tag: 1, Kind: primitives.LongPress}}}

	data, err := v.ExportJSON(config)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	var back primitives.RootConfig
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if back.Handlers[0].Kind != primitives.LongPress {
		t.Errorf("kind = %v", back.Handlers[0].Kind)
	}
	if !strings.Contains(string(data), `"kind": "longPress"`) {
		t.Errorf("kind should be written by name:\n%s", data)
	}
}
