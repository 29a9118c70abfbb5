package gesturex

import (
	"errors"

	"github.com/comalice/gesturex/internal/core"
	"github.com/comalice/gesturex/internal/primitives"
)

type (
	HandlerTag       = primitives.HandlerTag
	ViewTag          = primitives.ViewTag
	State            = primitives.State
	Kind             = primitives.Kind
	Config           = primitives.Config
	Relations        = primitives.Relations
	HandlerSpec      = primitives.HandlerSpec
	RootConfig       = primitives.RootConfig
	Point            = primitives.Point
	Direction        = primitives.Direction
	EventType        = primitives.EventType
	PointerType      = primitives.PointerType
	StylusData       = primitives.StylusData
	PointerEvent     = primitives.PointerEvent
	Measurements     = primitives.Measurements
	StateChangeEvent = primitives.StateChangeEvent
	GestureEvent     = primitives.GestureEvent

	Sink          = core.Sink
	Persister     = core.Persister
	Visualizer    = core.Visualizer
	HandlerStatus = core.HandlerStatus
	RootSnapshot  = core.RootSnapshot
)

const (
	Undetermined = primitives.Undetermined
	Failed       = primitives.Failed
	Began        = primitives.Began
	Cancelled    = primitives.Cancelled
	Active       = primitives.Active
	End          = primitives.End
)

const (
	Pan        = primitives.Pan
	Tap        = primitives.Tap
	LongPress  = primitives.LongPress
	Pinch      = primitives.Pinch
	Rotation   = primitives.Rotation
	Fling      = primitives.Fling
	NativeView = primitives.NativeView
	Manual     = primitives.Manual
)

const (
	PointerDown   = primitives.PointerDown
	PointerMove   = primitives.PointerMove
	PointerUp     = primitives.PointerUp
	PointerCancel = primitives.PointerCancel
)

const (
	Right = primitives.Right
	Left  = primitives.Left
	Up    = primitives.Up
	Down  = primitives.Down
)

var (
	ErrUnknownKind = core.ErrUnknownKind
	ErrTagInUse    = core.ErrTagInUse
	ErrNotFound    = core.ErrNotFound
	ErrNoPersister = errors.New("no persister configured")
)

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return primitives.Pt(x, y) }

// ParseKind returns the Kind with the given name ("pan", "longPress", ...).
func ParseKind(name string) (Kind, error) { return primitives.ParseKind(name) }

// SetLogger replaces the logger used for diagnostics. A nil logger silences
// output.
func SetLogger(f func(format string, v ...interface{})) { core.SetLogger(f) }
