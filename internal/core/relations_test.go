package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comalice/gesturex/internal/primitives"
)

type rel = primitives.Relations

func tags(t ...primitives.HandlerTag) []primitives.HandlerTag {
	return t
}

func frame(entries []Entry, relations map[primitives.HandlerTag]rel) Frame {
	return Frame{Entries: entries, Relations: relations}
}

func entry(tag primitives.HandlerTag, s primitives.State, pointers ...int) Entry {
	return Entry{Tag: tag, State: s, Pointers: pointers}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  Decision
	}{
		{
			name:  "no relations and nobody active",
			frame: frame([]Entry{entry(1, b, 1), entry(2, b, 1)}, nil),
			want:  Allow,
		},
		{
			name:  "waited handler still began",
			frame: frame([]Entry{entry(1, b, 1), entry(2, b, 1)}, map[primitives.HandlerTag]rel{1: {WaitFor: tags(2)}}),
			want:  Defer,
		},
		{
			name:  "waited handler failed",
			frame: frame([]Entry{entry(1, b, 1), entry(2, fl, 1)}, map[primitives.HandlerTag]rel{1: {WaitFor: tags(2)}}),
			want:  Allow,
		},
		{
			name:  "waited handler undetermined",
			frame: frame([]Entry{entry(1, b, 1), entry(2, primitives.Undetermined)}, map[primitives.HandlerTag]rel{1: {WaitFor: tags(2)}}),
			want:  Allow,
		},
		{
			name:  "waited handler already active",
			frame: frame([]Entry{entry(1, b, 1), entry(2, a, 1)}, map[primitives.HandlerTag]rel{1: {WaitFor: tags(2)}}),
			want:  Deny,
		},
		{
			name:  "blocks is the inverse of waitFor",
			frame: frame([]Entry{entry(1, b, 1), entry(2, b, 1)}, map[primitives.HandlerTag]rel{2: {Blocks: tags(1)}}),
			want:  Defer,
		},
		{
			name:  "handler waiting for the requester is active",
			frame: frame([]Entry{entry(1, b, 1), entry(2, a, 1)}, map[primitives.HandlerTag]rel{2: {WaitFor: tags(1)}}),
			want:  Deny,
		},
		{
			name:  "dangling waitFor",
			frame: frame([]Entry{entry(1, b, 1)}, map[primitives.HandlerTag]rel{1: {WaitFor: tags(42)}}),
			want:  Allow,
		},
		{
			name:  "overlapping active without simultaneity",
			frame: frame([]Entry{entry(1, b, 1), entry(2, a, 1)}, nil),
			want:  Deny,
		},
		{
			name:  "active on other pointers and views",
			frame: frame([]Entry{entry(1, b, 1), entry(2, a, 2)}, nil),
			want:  Allow,
		},
		{
			name: "mutual simultaneity",
			frame: frame([]Entry{entry(1, b, 1), entry(2, a, 1)}, map[primitives.HandlerTag]rel{
				1: {SimultaneousWith: tags(2)},
				2: {SimultaneousWith: tags(1)},
			}),
			want: Allow,
		},
		{
			name:  "one-sided simultaneity is not enough",
			frame: frame([]Entry{entry(1, b, 1), entry(2, a, 1)}, map[primitives.HandlerTag]rel{1: {SimultaneousWith: tags(2)}}),
			want:  Deny,
		},
		{
			name:  "unknown requester",
			frame: frame([]Entry{entry(2, a, 1)}, nil),
			want:  Deny,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.frame, 1); got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveMutualWait(t *testing.T) {
	mutual := map[primitives.HandlerTag]rel{1: {WaitFor: tags(2)}, 2: {WaitFor: tags(1)}}
	awaiting := func(tag primitives.HandlerTag) Entry {
		e := entry(tag, b, 1)
		e.Awaiting = true
		return e
	}
	tests := []struct {
		name  string
		frame Frame
		want  Decision
	}{
		{"other has not asked", frame([]Entry{entry(1, b, 1), entry(2, b, 1)}, mutual), Allow},
		{"other asked first", frame([]Entry{entry(1, b, 1), awaiting(2)}, mutual), Defer},
		{"requester queued first", Frame{Entries: []Entry{awaiting(1), awaiting(2)}, Relations: mutual, Queue: tags(1, 2)}, Allow},
		{"other queued first", Frame{Entries: []Entry{awaiting(1), awaiting(2)}, Relations: mutual, Queue: tags(2, 1)}, Defer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.frame, 1))
		})
	}

	fail, _ := Conflicts(tests[0].frame, 1)
	assert.Equal(t, tags(2), fail, "the loser of a mutual wait fails")
}

func TestResolveDisallowInterruption(t *testing.T) {
	native := Entry{Tag: 1, Kind: primitives.NativeView, State: b, Pointers: []int{1}, DisallowInterruption: true}
	f := frame([]Entry{native, entry(2, a, 1), entry(3, b, 1)}, nil)

	assert.Equal(t, Allow, Resolve(f, 1))
	fail, cancel := Conflicts(f, 1)
	assert.Empty(t, fail)
	assert.Equal(t, tags(2, 3), cancel)
}

func TestActiveNativeViewDeniesSimultaneous(t *testing.T) {
	native := Entry{Tag: 1, Kind: primitives.NativeView, State: a, Pointers: []int{1}, DisallowInterruption: true}
	f := frame(
		[]Entry{native, entry(2, b, 1)},
		map[primitives.HandlerTag]rel{
			1: {SimultaneousWith: tags(2)},
			2: {SimultaneousWith: tags(1)},
		},
	)
	assert.Equal(t, Deny, Resolve(f, 2))
}

func TestConflicts(t *testing.T) {
	f := frame(
		[]Entry{entry(1, b, 1), entry(2, b, 1), entry(3, b, 1), entry(4, b, 9), entry(5, a, 1)},
		map[primitives.HandlerTag]rel{
			2: {WaitFor: tags(1)},
			1: {SimultaneousWith: tags(3, 5)},
			3: {SimultaneousWith: tags(1)},
		},
	)
	fail, cancel := Conflicts(f, 1)
	assert.Equal(t, tags(2), fail, "handlers waiting for the winner fail")
	assert.Empty(t, cancel, "simultaneous, disjoint and already active handlers are left alone")
}

func TestOverlapBySharedView(t *testing.T) {
	x := Entry{Tag: 1, Attached: true, View: 7}
	y := Entry{Tag: 2, Attached: true, View: 7}
	z := Entry{Tag: 3, Attached: true, View: 8}
	assert.True(t, Overlap(x, y))
	assert.False(t, Overlap(x, z))
	assert.False(t, Overlap(Entry{View: 7}, Entry{View: 7}), "unattached handlers share no view")
}
