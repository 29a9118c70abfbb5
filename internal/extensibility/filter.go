package extensibility

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/comalice/gesturex/internal/core"
	"github.com/comalice/gesturex/internal/primitives"
)

// condition is one parsed "field op value" expression.
type condition struct {
	field string
	op    string
	value string
	num   float64
	isNum bool
}

var filterOps = map[string]bool{"==": true, "!=": true, ">": true, "<": true, ">=": true, "<=": true}

var numericFields = map[string]func(primitives.Measurements) float64{
	"pointers":     func(m primitives.Measurements) float64 { return float64(m.NumberOfPointers) },
	"x":            func(m primitives.Measurements) float64 { return m.Position.X },
	"y":            func(m primitives.Measurements) float64 { return m.Position.Y },
	"translationX": func(m primitives.Measurements) float64 { return m.Translation.X },
	"translationY": func(m primitives.Measurements) float64 { return m.Translation.Y },
	"velocityX":    func(m primitives.Measurements) float64 { return m.Velocity.X },
	"velocityY":    func(m primitives.Measurements) float64 { return m.Velocity.Y },
	"scale":        func(m primitives.Measurements) float64 { return m.Scale },
	"rotation":     func(m primitives.Measurements) float64 { return m.Rotation },
	"durationMs":   func(m primitives.Measurements) float64 { return float64(m.Duration.Milliseconds()) },
}

var stringFields = map[string]bool{"record": true, "kind": true, "state": true, "oldState": true}

var idFields = map[string]bool{"tag": true, "view": true, "key": true}

func parseCondition(expr string) (condition, error) {
	parts := strings.Fields(expr)
	if len(parts) != 3 {
		return condition{}, fmt.Errorf("expression %q: want \"field op value\"", expr)
	}
	c := condition{field: parts[0], op: parts[1], value: parts[2]}
	if !filterOps[c.op] {
		return condition{}, fmt.Errorf("expression %q: unknown operator %q", expr, c.op)
	}
	switch {
	case stringFields[c.field]:
		if c.op != "==" && c.op != "!=" {
			return condition{}, fmt.Errorf("expression %q: %s only supports == and !=", expr, c.field)
		}
	case numericFields[c.field] != nil, idFields[c.field]:
		f, err := strconv.ParseFloat(c.value, 64)
		if err != nil {
			return condition{}, fmt.Errorf("expression %q: %w", expr, err)
		}
		c.num, c.isNum = f, true
	default:
		return condition{}, fmt.Errorf("expression %q: unknown field %q", expr, c.field)
	}
	return c, nil
}

// record is the flattened view of a record that conditions test.
type record struct {
	kind       string
	tag, view  float64
	key        float64
	state, old string
	hasOld     bool
	data       primitives.Measurements
}

func (c condition) eval(r record) bool {
	if !c.isNum {
		var got string
		switch c.field {
		case "record":
			if r.hasOld {
				got = "stateChange"
			} else {
				got = "gesture"
			}
		case "kind":
			got = r.kind
		case "state":
			got = r.state
		case "oldState":
			if !r.hasOld {
				return false
			}
			got = r.old
		}
		eq := strings.EqualFold(got, c.value)
		if c.op == "!=" {
			return !eq
		}
		return eq
	}

	var v float64
	switch c.field {
	case "tag":
		v = r.tag
	case "view":
		v = r.view
	case "key":
		v = r.key
	default:
		v = numericFields[c.field](r.data)
	}
	switch c.op {
	case "==":
		return v == c.num
	case "!=":
		return v != c.num
	case ">":
		return v > c.num
	case "<":
		return v < c.num
	case ">=":
		return v >= c.num
	case "<=":
		return v <= c.num
	}
	return false
}

// FilterSink forwards only the records matching every expression, such as
// "state == ACTIVE", "kind == pinch" or "scale > 1.5".
type FilterSink struct {
	inner      core.Sink
	conditions []condition
}

// NewFilterSink parses the expressions. Fields: record (stateChange or
// gesture), kind, state, oldState, tag, view, key, pointers, x, y,
// translationX, translationY, velocityX, velocityY, scale, rotation,
// durationMs.
func NewFilterSink(inner core.Sink, exprs ...string) (*FilterSink, error) {
	s := &FilterSink{inner: inner}
	for _, e := range exprs {
		c, err := parseCondition(e)
		if err != nil {
			return nil, err
		}
		s.conditions = append(s.conditions, c)
	}
	return s, nil
}

func (s *FilterSink) match(r record) bool {
	for _, c := range s.conditions {
		if !c.eval(r) {
			return false
		}
	}
	return true
}

// OnStateChange implements core.Sink.
func (s *FilterSink) OnStateChange(ev primitives.StateChangeEvent) {
	r := record{
		kind:   ev.Kind.String(),
		tag:    float64(ev.HandlerTag),
		view:   float64(ev.ViewTag),
		key:    float64(ev.CoalescingKey),
		state:  ev.State.String(),
		old:    ev.OldState.String(),
		hasOld: true,
		data:   ev.Data,
	}
	if s.match(r) {
		s.inner.OnStateChange(ev)
	}
}

// OnGesture implements core.Sink.
func (s *FilterSink) OnGesture(ev primitives.GestureEvent) {
	r := record{
		kind:  ev.Kind.String(),
		tag:   float64(ev.HandlerTag),
		view:  float64(ev.ViewTag),
		key:   float64(ev.CoalescingKey),
		state: ev.State.String(),
		data:  ev.Data,
	}
	if s.match(r) {
		s.inner.OnGesture(ev)
	}
}
