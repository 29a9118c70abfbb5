// Package builder provides functional options for handler configuration
// bags, so callers do not have to remember key names:
//
//	cfg := builder.New(builder.MinDist(20), builder.FailOffsetY(-5, 5))
//	root.CreateHandler(gesturex.Pan, 1, cfg)
package builder

import (
	"strings"
	"time"

	"github.com/comalice/gesturex"
)

// Option sets one or more configuration keys.
type Option func(gesturex.Config)

// New creates a Config with the options applied in order.
func New(opts ...Option) gesturex.Config {
	cfg := gesturex.Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Set sets an arbitrary key.
func Set(key string, value any) Option {
	return func(c gesturex.Config) { c[key] = value }
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Enabled turns input handling on or off.
func Enabled(on bool) Option { return Set("enabled", on) }

// ManualActivation restricts activation to SetState.
func ManualActivation(on bool) Option { return Set("manualActivation", on) }

// MinPointers sets the pointers required before a pan begins or a tap counts.
func MinPointers(n int) Option { return Set("minPointers", n) }

// MaxPointers sets the pointers a pan tolerates.
func MaxPointers(n int) Option { return Set("maxPointers", n) }

// NumberOfPointers sets the pointers a long press or fling requires.
func NumberOfPointers(n int) Option { return Set("numberOfPointers", n) }

// MinDist sets the pan activation distance.
func MinDist(d float64) Option { return Set("minDist", d) }

// ActiveOffsetX activates a pan once the horizontal translation leaves
// [start, end].
func ActiveOffsetX(start, end float64) Option {
	return Set("activeOffsetX", []any{start, end})
}

// ActiveOffsetY activates a pan once the vertical translation leaves
// [start, end].
func ActiveOffsetY(start, end float64) Option {
	return Set("activeOffsetY", []any{start, end})
}

// FailOffsetX fails a pan once the horizontal translation leaves [start, end].
func FailOffsetX(start, end float64) Option {
	return Set("failOffsetX", []any{start, end})
}

// FailOffsetY fails a pan once the vertical translation leaves [start, end].
func FailOffsetY(start, end float64) Option {
	return Set("failOffsetY", []any{start, end})
}

// MinVelocity sets the pan or fling velocity threshold in px/s.
func MinVelocity(v float64) Option { return Set("minVelocity", v) }

// MinVelocityX sets a signed horizontal pan velocity threshold in px/s.
func MinVelocityX(v float64) Option { return Set("minVelocityX", v) }

// MinVelocityY sets a signed vertical pan velocity threshold in px/s.
func MinVelocityY(v float64) Option { return Set("minVelocityY", v) }

// Direction restricts a pan or fling to the given directions.
func Direction(d gesturex.Direction) Option {
	var names []string
	for _, n := range []struct {
		d    gesturex.Direction
		name string
	}{{gesturex.Right, "right"}, {gesturex.Left, "left"}, {gesturex.Up, "up"}, {gesturex.Down, "down"}} {
		if d&n.d != 0 {
			names = append(names, n.name)
		}
	}
	return Set("direction", strings.Join(names, "|"))
}

// AlignmentCone sets the cone, in degrees, a direction accepts.
func AlignmentCone(deg float64) Option { return Set("alignmentCone", deg) }

// ActivateAfterLongPress activates a pan once it was held still for d.
func ActivateAfterLongPress(d time.Duration) Option {
	return Set("activateAfterLongPress", millis(d))
}

// NumberOfTaps sets the taps a tap handler requires.
func NumberOfTaps(n int) Option { return Set("numberOfTaps", n) }

// MaxDist sets the movement a tap or long press tolerates.
func MaxDist(d float64) Option { return Set("maxDist", d) }

// MaxDelta bounds the movement of a tap per axis.
func MaxDelta(x, y float64) Option {
	return func(c gesturex.Config) {
		c["maxDeltaX"] = x
		c["maxDeltaY"] = y
	}
}

// MaxDuration sets the press time limit of a tap or the duration limit of
// a fling.
func MaxDuration(d time.Duration) Option { return Set("maxDurationMs", millis(d)) }

// MaxDelay sets the time allowed between taps.
func MaxDelay(d time.Duration) Option { return Set("maxDelayMs", millis(d)) }

// MinDuration sets the hold time of a long press.
func MinDuration(d time.Duration) Option { return Set("minDurationMs", millis(d)) }

// SpanSlop sets the span change that activates a pinch.
func SpanSlop(d float64) Option { return Set("spanSlop", d) }

// ShouldActivateOnStart activates a native view handler on touch down.
func ShouldActivateOnStart(on bool) Option { return Set("shouldActivateOnStart", on) }

// DisallowInterruption keeps an active native view handler from being
// interrupted by other gestures.
func DisallowInterruption(on bool) Option { return Set("disallowInterruption", on) }

// IsButton makes a native view handler fail instead of activating when the
// touch moves.
func IsButton(on bool) Option { return Set("isButton", on) }
