package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/gesturex/internal/core"
	"github.com/comalice/gesturex/internal/primitives"
)

// DefaultVisualizer renders the handler relation graph of a Root.
type DefaultVisualizer struct{}

var stateColors = map[primitives.State]string{
	primitives.Began:     "lightyellow",
	primitives.Active:    "lightgreen",
	primitives.End:       "lightblue",
	primitives.Failed:    "lightpink",
	primitives.Cancelled: "lightgrey",
}

// ExportDOT generates Graphviz DOT source: one node per handler, filled by
// its current state, and one edge per relation. Wait edges point from the
// waiting handler to the one it waits for; mutual simultaneity is drawn
// once as a two-way edge.
func (v *DefaultVisualizer) ExportDOT(config primitives.RootConfig, states []core.HandlerStatus) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Gestures {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	current := make(map[primitives.HandlerTag]core.HandlerStatus, len(states))
	for _, s := range states {
		current[s.Tag] = s
	}

	for _, h := range config.Handlers {
		label := fmt.Sprintf("%d %s", h.Tag, h.Kind)
		style := ""
		s, ok := current[h.Tag]
		if ok && s.State != primitives.Undetermined {
			label += `\n` + s.State.String()
			style = fmt.Sprintf(` style="rounded,filled" fillcolor=%s`, stateColors[s.State])
		}
		if ok && !s.Attached {
			style += ` color=grey`
		}
		buf.WriteString(fmt.Sprintf("  \"%d\" [label=\"%s\"%s];\n", h.Tag, label, style))
	}

	for _, e := range collectEdges(config) {
		buf.WriteString(fmt.Sprintf("  \"%d\" -> \"%d\" [label=\"%s\"%s];\n", e.From, e.To, e.Label, e.Attrs))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the root config to JSON.
func (v *DefaultVisualizer) ExportJSON(config primitives.RootConfig) ([]byte, error) {
	return json.MarshalIndent(config, "", "  ")
}

// Edge is one relation between two handlers.
type Edge struct {
	From  primitives.HandlerTag
	To    primitives.HandlerTag
	Label string
	Attrs string
}

func collectEdges(config primitives.RootConfig) []Edge {
	rel := make(map[primitives.HandlerTag]primitives.Relations, len(config.Handlers))
	for _, h := range config.Handlers {
		rel[h.Tag] = h.Relations
	}
	declares := func(a, b primitives.HandlerTag) bool {
		for _, t := range rel[a].SimultaneousWith {
			if t == b {
				return true
			}
		}
		return false
	}

	var edges []Edge
	for _, h := range config.Handlers {
		for _, t := range h.WaitFor {
			edges = append(edges, Edge{From: h.Tag, To: t, Label: "waitFor"})
		}
		for _, t := range h.Blocks {
			edges = append(edges, Edge{From: t, To: h.Tag, Label: "blocked by", Attrs: " style=dashed"})
		}
		for _, t := range h.SimultaneousWith {
			switch {
			case !declares(t, h.Tag):
				edges = append(edges, Edge{From: h.Tag, To: t, Label: "simultaneous (one-sided)", Attrs: " style=dotted"})
			case h.Tag < t:
				edges = append(edges, Edge{From: h.Tag, To: t, Label: "simultaneous", Attrs: " dir=both color=blue"})
			}
		}
	}
	return edges
}
