package primitives

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Config is the untyped key/value bag a handler is configured with.
// Accessors never fail: a missing key or a value of the wrong shape yields
// the default, so a bad entry cannot keep a handler from being created.
type Config map[string]any

// Clone returns a shallow copy of c.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge returns a copy of c overlaid with the entries of o.
func (c Config) Merge(o Config) Config {
	out := c.Clone()
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Portable returns a copy of c that JSON, YAML and TOML can all encode.
// NaN entries read as unset, so they are dropped, together with any list
// holding one; infinities are spelled "+Inf" and "-Inf", which the
// accessors parse back.
func (c Config) Portable() Config {
	out := make(Config, len(c))
	for k, v := range c {
		if p, ok := portable(v); ok {
			out[k] = p
		}
	}
	return out
}

func portable(v any) (any, bool) {
	switch n := v.(type) {
	case float64:
		return portableFloat(n)
	case float32:
		return portableFloat(float64(n))
	case []float64:
		out := make([]any, len(n))
		for i, e := range n {
			p, ok := portableFloat(e)
			if !ok {
				return nil, false
			}
			out[i] = p
		}
		return out, true
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			p, ok := portable(e)
			if !ok {
				return nil, false
			}
			out[i] = p
		}
		return out, true
	}
	return v, true
}

func portableFloat(f float64) (any, bool) {
	switch {
	case math.IsNaN(f):
		return nil, false
	case math.IsInf(f, 1):
		return "+Inf", true
	case math.IsInf(f, -1):
		return "-Inf", true
	}
	return f, true
}

// Has reports whether key holds a usable number.
func (c Config) Has(key string) bool {
	_, ok := toFloat(c[key])
	return ok
}

// Float returns the numeric value of key, or def.
func (c Config) Float(key string, def float64) float64 {
	if f, ok := toFloat(c[key]); ok {
		return f
	}
	return def
}

// Int returns the integer value of key, or def.
func (c Config) Int(key string, def int) int {
	if f, ok := toFloat(c[key]); ok {
		return int(f)
	}
	return def
}

// Bool returns the boolean value of key, or def.
func (c Config) Bool(key string, def bool) bool {
	switch v := c[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Millis reads key as a number of milliseconds.
func (c Config) Millis(key string, def time.Duration) time.Duration {
	if f, ok := toFloat(c[key]); ok && f >= 0 {
		return time.Duration(f * float64(time.Millisecond))
	}
	return def
}

// Range reads an offset range. A two element list sets both bounds; a
// negative scalar sets only the start and a non-negative one only the end.
// Unset bounds are -Inf and +Inf.
func (c Config) Range(key string) (start, end float64, ok bool) {
	start, end = math.Inf(-1), math.Inf(1)
	switch v := c[key].(type) {
	case []any:
		if len(v) != 2 {
			return start, end, false
		}
		s, ok1 := toFloat(v[0])
		e, ok2 := toFloat(v[1])
		if !ok1 || !ok2 {
			return start, end, false
		}
		return s, e, true
	case []float64:
		if len(v) != 2 {
			return start, end, false
		}
		return v[0], v[1], true
	default:
		f, ok := toFloat(v)
		if !ok {
			return start, end, false
		}
		if f < 0 {
			return f, end, true
		}
		return start, f, true
	}
}

// Direction reads key as a Direction bitmask or a list of direction names.
func (c Config) Direction(key string, def Direction) Direction {
	switch v := c[key].(type) {
	case string:
		if d, ok := ParseDirection(v); ok {
			return d
		}
	case []any:
		var d Direction
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return def
			}
			p, ok := ParseDirection(s)
			if !ok {
				return def
			}
			d |= p
		}
		if d != 0 {
			return d
		}
	default:
		if f, ok := toFloat(v); ok && f > 0 && f < 16 {
			return Direction(f)
		}
	}
	return def
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		p, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
