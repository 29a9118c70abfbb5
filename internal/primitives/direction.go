package primitives

import "strings"

// Direction is a bitmask of allowed movement directions.
type Direction uint8

const (
	Right Direction = 1 << iota
	Left
	Up
	Down

	UpRight   = Up | Right
	UpLeft    = Up | Left
	DownRight = Down | Right
	DownLeft  = Down | Left
)

var axialDirections = [...]Direction{Right, Left, Up, Down}

var diagonalDirections = [...]Direction{UpRight, UpLeft, DownRight, DownLeft}

var directionNames = map[string]Direction{
	"right": Right,
	"left":  Left,
	"up":    Up,
	"down":  Down,
}

// Axial returns the single-axis directions present in d.
func (d Direction) Axial() []Direction {
	var out []Direction
	for _, a := range axialDirections {
		if d&a != 0 {
			out = append(out, a)
		}
	}
	return out
}

// Diagonals returns the diagonals whose both components are present in d.
func (d Direction) Diagonals() []Direction {
	var out []Direction
	for _, a := range diagonalDirections {
		if d&a == a {
			out = append(out, a)
		}
	}
	return out
}

func (d Direction) String() string {
	if d == 0 {
		return "none"
	}
	var parts []string
	for _, n := range []string{"right", "left", "up", "down"} {
		if d&directionNames[n] != 0 {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "|")
}

// ParseDirection parses names like "right", "up|left" or "down,right".
// The second result is false when no name is recognized.
func ParseDirection(s string) (Direction, bool) {
	var d Direction
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' || r == ' ' }) {
		v, ok := directionNames[strings.ToLower(part)]
		if !ok {
			return 0, false
		}
		d |= v
	}
	return d, d != 0
}

// AlignedWith reports whether v points into one of the directions of d.
// Axial directions use axialCos, diagonals use diagonalCos as the minimal
// cosine similarity.
func AlignedWith(v Vector, d Direction, axialCos, diagonalCos float64) bool {
	for _, a := range d.Axial() {
		if v.IsSimilar(VectorFromDirection(a), axialCos) {
			return true
		}
	}
	for _, a := range d.Diagonals() {
		if v.IsSimilar(VectorFromDirection(a), diagonalCos) {
			return true
		}
	}
	return false
}
