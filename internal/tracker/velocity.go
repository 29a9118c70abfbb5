package tracker

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/comalice/gesturex/internal/primitives"
)

const (
	historySize = 20
	horizon     = 100 * time.Millisecond
	// A pointer that has not moved for this long is considered at rest.
	assumeStopped = 40 * time.Millisecond
)

type sample struct {
	t   time.Duration
	pos primitives.Point
}

// velocityTracker estimates a pointer's velocity from its recent positions.
// It fits position against time with least squares over the samples inside
// the horizon; with two samples that is the plain finite difference.
type velocityTracker struct {
	samples []sample
}

func (v *velocityTracker) add(t time.Duration, pos primitives.Point) {
	if n := len(v.samples); n > 0 && t-v.samples[n-1].t > assumeStopped {
		v.samples = v.samples[:0]
	}
	if len(v.samples) == historySize {
		copy(v.samples, v.samples[1:])
		v.samples = v.samples[:historySize-1]
	}
	v.samples = append(v.samples, sample{t: t, pos: pos})
}

// velocity returns the estimate in points per second.
func (v *velocityTracker) velocity() primitives.Point {
	n := len(v.samples)
	if n < 2 {
		return primitives.Point{}
	}
	newest := v.samples[n-1].t
	ts := make([]float64, 0, n)
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for _, s := range v.samples {
		if newest-s.t > horizon {
			continue
		}
		ts = append(ts, (s.t - newest).Seconds())
		xs = append(xs, s.pos.X)
		ys = append(ys, s.pos.Y)
	}
	if len(ts) < 2 || ts[0] == ts[len(ts)-1] {
		return primitives.Point{}
	}
	_, vx := stat.LinearRegression(ts, xs, nil, false)
	_, vy := stat.LinearRegression(ts, ys, nil, false)
	return primitives.Point{X: vx, Y: vy}
}
