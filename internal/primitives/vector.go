package primitives

import "math"

// Point is a two dimensional coordinate or displacement.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Len returns the Euclidean length of p.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// LenSq returns the squared length of p.
func (p Point) LenSq() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// MinRecognizableMagnitude is the shortest vector that carries a direction.
// Shorter vectors have a zero unit vector and are similar to nothing.
const MinRecognizableMagnitude = 0.1

// Vector is a displacement or velocity together with its unit direction.
type Vector struct {
	X, Y      float64
	UnitX     float64
	UnitY     float64
	Magnitude float64
}

// NewVector builds a Vector from its components.
func NewVector(x, y float64) Vector {
	v := Vector{X: x, Y: y, Magnitude: math.Hypot(x, y)}
	if v.Magnitude > MinRecognizableMagnitude {
		v.UnitX = x / v.Magnitude
		v.UnitY = y / v.Magnitude
	}
	return v
}

// VectorFromPoint builds a Vector from a displacement.
func VectorFromPoint(p Point) Vector {
	return NewVector(p.X, p.Y)
}

// VectorFromDirection returns the unit vector of a single direction flag or
// diagonal. Screen coordinates grow downwards, so Up is (0,-1).
func VectorFromDirection(d Direction) Vector {
	var x, y float64
	if d&Right != 0 {
		x++
	}
	if d&Left != 0 {
		x--
	}
	if d&Down != 0 {
		y++
	}
	if d&Up != 0 {
		y--
	}
	return NewVector(x, y)
}

// Similarity returns the cosine similarity of the two unit vectors, in [-1,1].
// Either vector being shorter than MinRecognizableMagnitude yields 0.
func (v Vector) Similarity(o Vector) float64 {
	return v.UnitX*o.UnitX + v.UnitY*o.UnitY
}

// IsSimilar reports whether the similarity of v and o exceeds threshold.
func (v Vector) IsSimilar(o Vector, threshold float64) bool {
	return v.Similarity(o) > threshold
}

// ConeToDeviation converts a cone opening angle in degrees into the minimal
// cosine similarity of vectors inside that cone.
func ConeToDeviation(degrees float64) float64 {
	return math.Cos(degrees / 2 * math.Pi / 180)
}

// NormalizeAngle maps a in radians into (-Pi, Pi].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
