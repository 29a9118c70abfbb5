package core

import (
	"context"
	"time"

	"github.com/comalice/gesturex/internal/primitives"
)

// Sink receives the records composed for a Root, in emission order.
// Sinks are called without any Root lock held and may call back into it.
type Sink interface {
	OnStateChange(ev primitives.StateChangeEvent)
	OnGesture(ev primitives.GestureEvent)
}

// Persister stores and restores Root snapshots.
type Persister interface {
	Save(ctx context.Context, snapshot RootSnapshot) error
	Load(ctx context.Context, rootID string) (RootSnapshot, error)
}

// Visualizer renders the handler relation graph.
type Visualizer interface {
	ExportDOT(config primitives.RootConfig, states []HandlerStatus) string
	ExportJSON(config primitives.RootConfig) ([]byte, error)
}

// HandlerStatus is the state of one handler at snapshot time.
type HandlerStatus struct {
	Tag      primitives.HandlerTag `json:"tag" yaml:"tag" toml:"tag"`
	State    primitives.State      `json:"state" yaml:"state" toml:"state"`
	Attached bool                  `json:"attached" yaml:"attached" toml:"attached"`
}

// RootSnapshot is the serializable snapshot of a Root.
type RootSnapshot struct {
	RootID    string                `json:"rootID" yaml:"rootID" toml:"rootID"`
	Config    primitives.RootConfig `json:"config" yaml:"config" toml:"config"`
	States    []HandlerStatus       `json:"states,omitempty" yaml:"states,omitempty" toml:"states,omitempty"`
	Timestamp time.Time             `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
}

// RootMetadata accompanies published records.
type RootMetadata struct {
	RootID    string    `json:"rootID" yaml:"rootID"`
	Sequence  uint64    `json:"sequence" yaml:"sequence"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
