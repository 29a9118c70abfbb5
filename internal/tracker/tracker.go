// Package tracker keeps the ordered set of pointers currently down on a
// handler and derives positions, averages and velocities from them.
package tracker

import (
	"github.com/comalice/gesturex/internal/primitives"
)

// MaxPointers is the largest number of simultaneously tracked pointers.
const MaxPointers = 12

// Pointer is one tracked contact.
type Pointer struct {
	ID          int
	Position    primitives.Point
	Absolute    primitives.Point
	Start       primitives.Point
	Velocity    primitives.Point
	PointerType primitives.PointerType
	Stylus      *primitives.StylusData
}

// Set is the result of one tracked update: every pointer still down in
// first-contact order, how the callback was classified and the pointers it
// changed. For an up the lifted pointer is in Changed but not in Pointers.
type Set struct {
	Pointers []Pointer
	Type     primitives.TouchType
	Changed  []Pointer
}

// Count returns the number of pointers down after the update.
func (s Set) Count() int {
	return len(s.Pointers)
}

// Tracker is the per-handler pointer set. Not safe for concurrent use.
type Tracker struct {
	limit    int
	pointers []Pointer
	velocity map[int]*velocityTracker
}

// New returns a Tracker holding at most limit pointers. A limit outside
// 1..MaxPointers means MaxPointers.
func New(limit int) *Tracker {
	if limit <= 0 || limit > MaxPointers {
		limit = MaxPointers
	}
	return &Tracker{
		limit:    limit,
		velocity: make(map[int]*velocityTracker),
	}
}

func (t *Tracker) index(id int) int {
	for i := range t.pointers {
		if t.pointers[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) snapshot(typ primitives.TouchType, changed ...Pointer) Set {
	ps := make([]Pointer, len(t.pointers))
	copy(ps, t.pointers)
	return Set{Pointers: ps, Type: typ, Changed: changed}
}

// Down starts tracking ev.PointerID. It returns false when the pointer is
// already tracked or the tracker is full; the event is then dropped and the
// tracked pointers are left untouched.
func (t *Tracker) Down(ev primitives.PointerEvent) (Set, bool) {
	if t.index(ev.PointerID) >= 0 || len(t.pointers) >= t.limit {
		return Set{}, false
	}
	p := Pointer{
		ID:          ev.PointerID,
		Position:    ev.Position,
		Absolute:    ev.Absolute,
		Start:       ev.Absolute,
		PointerType: ev.PointerType,
		Stylus:      ev.Stylus,
	}
	t.pointers = append(t.pointers, p)
	vt := &velocityTracker{}
	vt.add(ev.Time, ev.Absolute)
	t.velocity[ev.PointerID] = vt
	return t.snapshot(primitives.TouchDown, p), true
}

// Move updates a tracked pointer. Untracked ids are ignored.
func (t *Tracker) Move(ev primitives.PointerEvent) (Set, bool) {
	i := t.index(ev.PointerID)
	if i < 0 {
		return Set{}, false
	}
	p := &t.pointers[i]
	p.Position = ev.Position
	p.Absolute = ev.Absolute
	p.Stylus = ev.Stylus
	vt := t.velocity[ev.PointerID]
	vt.add(ev.Time, ev.Absolute)
	p.Velocity = vt.velocity()
	return t.snapshot(primitives.TouchMove, *p), true
}

// Up stops tracking a pointer. Untracked ids are ignored.
func (t *Tracker) Up(ev primitives.PointerEvent) (Set, bool) {
	i := t.index(ev.PointerID)
	if i < 0 {
		return Set{}, false
	}
	p := t.pointers[i]
	if p.Absolute != ev.Absolute {
		vt := t.velocity[ev.PointerID]
		vt.add(ev.Time, ev.Absolute)
		p.Velocity = vt.velocity()
	}
	p.Position = ev.Position
	p.Absolute = ev.Absolute
	t.pointers = append(t.pointers[:i], t.pointers[i+1:]...)
	delete(t.velocity, ev.PointerID)
	return t.snapshot(primitives.TouchUp, p), true
}

// Cancel drops every tracked pointer. Changed lists all of them.
func (t *Tracker) Cancel() Set {
	changed := t.pointers
	t.pointers = nil
	t.velocity = make(map[int]*velocityTracker)
	return Set{Type: primitives.TouchCancelled, Changed: changed}
}

// Reset forgets every pointer.
func (t *Tracker) Reset() {
	t.pointers = nil
	for id := range t.velocity {
		delete(t.velocity, id)
	}
}

// Count returns the number of tracked pointers.
func (t *Tracker) Count() int {
	return len(t.pointers)
}

// Full reports whether another pointer would be dropped.
func (t *Tracker) Full() bool {
	return len(t.pointers) >= t.limit
}

// IDs returns the tracked pointer ids in first-contact order.
func (t *Tracker) IDs() []int {
	ids := make([]int, len(t.pointers))
	for i, p := range t.pointers {
		ids[i] = p.ID
	}
	return ids
}

// Pointers returns the tracked pointers in first-contact order.
func (t *Tracker) Pointers() []Pointer {
	return t.snapshot(primitives.TouchUndetermined).Pointers
}

// Pointer returns the tracked pointer with the given id.
func (t *Tracker) Pointer(id int) (Pointer, bool) {
	if i := t.index(id); i >= 0 {
		return t.pointers[i], true
	}
	return Pointer{}, false
}

// Velocity returns the velocity of a tracked pointer in points per second.
func (t *Tracker) Velocity(id int) primitives.Point {
	if p, ok := t.Pointer(id); ok {
		return p.Velocity
	}
	return primitives.Point{}
}

// Average returns the mean local position of the tracked pointers.
func (t *Tracker) Average() primitives.Point {
	return average(t.pointers, func(p Pointer) primitives.Point { return p.Position })
}

// AbsoluteAverage returns the mean absolute position of the tracked pointers.
func (t *Tracker) AbsoluteAverage() primitives.Point {
	return average(t.pointers, func(p Pointer) primitives.Point { return p.Absolute })
}

func average(ps []Pointer, pos func(Pointer) primitives.Point) primitives.Point {
	if len(ps) == 0 {
		return primitives.Point{}
	}
	var sum primitives.Point
	for _, p := range ps {
		sum = sum.Add(pos(p))
	}
	return sum.Mul(1 / float64(len(ps)))
}

// ShareCommonPointers reports whether the two id lists intersect.
func ShareCommonPointers(a, b []int) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
