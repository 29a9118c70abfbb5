package primitives

import (
	"fmt"
	"time"
)

// EventType is the kind of a raw pointer callback.
type EventType uint8

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (t EventType) String() string {
	switch t {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EventType) UnmarshalText(b []byte) error {
	for _, c := range []EventType{PointerDown, PointerMove, PointerUp, PointerCancel} {
		if c.String() == string(b) {
			*t = c
			return nil
		}
	}
	return fmt.Errorf("unknown pointer event type %q", b)
}

// PointerType is the device that produced a pointer.
type PointerType uint8

const (
	Touch PointerType = iota
	Stylus
	Mouse
	OtherPointer
)

func (p PointerType) String() string {
	switch p {
	case Touch:
		return "touch"
	case Stylus:
		return "stylus"
	case Mouse:
		return "mouse"
	}
	return "other"
}

// StylusData carries optional pen attributes.
type StylusData struct {
	Pressure      float64 `json:"pressure" yaml:"pressure"`
	TiltX         float64 `json:"tiltX" yaml:"tiltX"`
	TiltY         float64 `json:"tiltY" yaml:"tiltY"`
	AltitudeAngle float64 `json:"altitudeAngle" yaml:"altitudeAngle"`
	AzimuthAngle  float64 `json:"azimuthAngle" yaml:"azimuthAngle"`
}

// PointerEvent is one raw platform pointer callback.
//
// Time is relative to an arbitrary base chosen by the platform; only
// differences between events of the same Root are meaningful. Views, when not
// empty, is the hit-test result and restricts delivery to handlers bound to
// one of those views.
//
// Position is in the coordinates of the view and is only reported back.
// Recognizers measure travel, distances and velocity from Absolute, so a
// view that moves under a still pointer does not make it travel.
type PointerEvent struct {
	Type        EventType     `json:"type" yaml:"type"`
	PointerID   int           `json:"pointerId" yaml:"pointerId"`
	Position    Point         `json:"position" yaml:"position"`
	Absolute    Point         `json:"absolute" yaml:"absolute"`
	Time        time.Duration `json:"time" yaml:"time"`
	PointerType PointerType   `json:"pointerType" yaml:"pointerType"`
	Stylus      *StylusData   `json:"stylus,omitempty" yaml:"stylus,omitempty"`
	Views       []ViewTag     `json:"views,omitempty" yaml:"views,omitempty"`
}

// TouchType classifies a tracked pointer update.
type TouchType uint8

const (
	TouchUndetermined TouchType = iota
	TouchDown
	TouchMove
	TouchUp
	TouchCancelled
)

// FlingPhase distinguishes the early, unconfirmed part of a fling from the
// confirmed drag.
type FlingPhase uint8

const (
	CrossSlide FlingPhase = iota
	Dragging
)

func (p FlingPhase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "crossSlide"
}

// Measurements is the payload of emitted records. Each kind fills the fields
// relevant to it; the rest stay zero.
type Measurements struct {
	NumberOfPointers int         `json:"numberOfPointers"`
	PointerType      PointerType `json:"pointerType"`
	Position         Point       `json:"position"`
	Absolute         Point       `json:"absolute"`

	Translation Point `json:"translation"`
	Velocity    Point `json:"velocity"`

	Scale         float64 `json:"scale,omitempty"`
	Focal         Point   `json:"focal"`
	ScaleVelocity float64 `json:"scaleVelocity,omitempty"`

	Rotation         float64 `json:"rotation,omitempty"`
	Anchor           Point   `json:"anchor"`
	RotationVelocity float64 `json:"rotationVelocity,omitempty"`

	Duration   time.Duration `json:"duration,omitempty"`
	FlingPhase FlingPhase    `json:"flingPhase,omitempty"`
	Stylus     *StylusData   `json:"stylus,omitempty"`
}

// StateChangeEvent reports one lifecycle transition of a handler.
type StateChangeEvent struct {
	HandlerTag    HandlerTag   `json:"handlerTag"`
	ViewTag       ViewTag      `json:"viewTag"`
	Kind          Kind         `json:"kind"`
	OldState      State        `json:"oldState"`
	State         State        `json:"state"`
	CoalescingKey uint32       `json:"coalescingKey"`
	Data          Measurements `json:"data"`
}

// GestureEvent reports continuous measurements of an Active handler.
type GestureEvent struct {
	HandlerTag    HandlerTag   `json:"handlerTag"`
	ViewTag       ViewTag      `json:"viewTag"`
	Kind          Kind         `json:"kind"`
	State         State        `json:"state"`
	CoalescingKey uint32       `json:"coalescingKey"`
	Data          Measurements `json:"data"`
}
