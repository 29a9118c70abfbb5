// Package primitives provides the foundational data structures for the gesture engine.
//
// It holds the handler state and kind enums, pointer events, the records emitted
// to consumers, geometry and VectorMath helpers, configuration bags and the
// serializable RootConfig. Nothing in here keeps runtime state.
//
// Core invariants:
//   - State values match the host protocol numbering (Undetermined=0 ... End=5)
//   - Records are plain values and safe to hand across goroutines
//   - Config accessors never fail; malformed values fall back to defaults
package primitives
