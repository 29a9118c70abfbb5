package primitives

import "fmt"

// HandlerTag identifies a handler within a Root. Tags are chosen by the caller.
type HandlerTag int32

// ViewTag is the opaque identifier of the view a handler is bound to.
type ViewTag int64

// State is the lifecycle state of a gesture handler.
type State int8

const (
	Undetermined State = iota
	Failed
	Began
	Cancelled
	Active
	End
)

var stateNames = [...]string{
	Undetermined: "UNDETERMINED",
	Failed:       "FAILED",
	Began:        "BEGAN",
	Cancelled:    "CANCELLED",
	Active:       "ACTIVE",
	End:          "END",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int8(s))
	}
	return stateNames[s]
}

// Finished reports whether s is one of the terminal states End, Failed or Cancelled.
func (s State) Finished() bool {
	return s == End || s == Failed || s == Cancelled
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(stateNames) {
		return nil, fmt.Errorf("unknown state %d", int8(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(b []byte) error {
	for i, n := range stateNames {
		if n == string(b) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", b)
}

// Kind selects the recognition behavior of a handler.
type Kind int8

const (
	Pan Kind = iota
	Tap
	LongPress
	Pinch
	Rotation
	Fling
	NativeView
	Manual
)

var kindNames = [...]string{
	Pan:        "pan",
	Tap:        "tap",
	LongPress:  "longPress",
	Pinch:      "pinch",
	Rotation:   "rotation",
	Fling:      "fling",
	NativeView: "nativeView",
	Manual:     "manual",
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
	return kindNames[k]
}

// Valid reports whether k names a known handler kind.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown handler kind %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown handler kind %d", int8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
