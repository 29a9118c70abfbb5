package gesturex_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/comalice/gesturex"
	"github.com/comalice/gesturex/internal/production"
	"github.com/comalice/gesturex/testutil"
)

func newRoot(t *testing.T, opts ...Option) (*Root, *testutil.Recorder) {
	t.Helper()
	rec := testutil.NewRecorder()
	return NewRoot(append([]Option{WithSink(rec)}, opts...)...), rec
}

func mustCreate(t *testing.T, root *Root, kind Kind, tag HandlerTag, cfg Config) *Handle {
	t.Helper()
	h, err := root.CreateHandler(kind, tag, cfg)
	require.NoError(t, err)
	require.NoError(t, h.Attach(1))
	return h
}

func TestPanActivatesAfterMinDist(t *testing.T) {
	root, rec := newRoot(t)
	mustCreate(t, root, Pan, 1, Config{"minDist": 10})

	testutil.NewScript().Down(1, 0, 0, 0).Move(1, 3, 0, 10).Feed(root)
	s, _ := root.HandlerState(1)
	assert.Equal(t, Began, s)

	testutil.NewScript().Move(1, 15, 0, 20).Feed(root)
	changes := rec.StateChanges(1)
	require.Len(t, changes, 2)
	assert.Equal(t, Active, changes[1].State)
	assert.Equal(t, Pt(15, 0), changes[1].Data.Translation)
}

func TestTapReportsActiveThenEnd(t *testing.T) {
	root, rec := newRoot(t)
	mustCreate(t, root, Tap, 1, Config{"maxDurationMs": 500, "numberOfTaps": 1})

	res := testutil.NewScript().Down(1, 5, 5, 0).Up(1, 5, 5, 200).Feed(root)
	assert.Equal(t, 2, res.Delivered)
	assert.Equal(t, []State{Began, Active, End}, rec.States(1))

	active := 0
	for _, c := range rec.StateChanges(1) {
		if c.State == Active {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestWaitForNeverActivatesAfterOtherWins(t *testing.T) {
	root, rec := newRoot(t)
	mustCreate(t, root, Pan, 1, nil)
	mustCreate(t, root, Pan, 2, nil)
	root.DeclareRelations(1, Relations{WaitFor: []HandlerTag{2}})

	testutil.NewScript().Down(1, 0, 0, 0).Drag(1, 40, 0, 40, 4).Up(1, 40, 0, 50).Feed(root)

	assert.Equal(t, []State{Began, Failed}, rec.States(1))
	assert.Equal(t, []State{Began, Active, End}, rec.States(2))
}

func TestPointerCancelWhileActive(t *testing.T) {
	root, rec := newRoot(t)
	mustCreate(t, root, Pan, 1, nil)

	testutil.NewScript().Down(1, 0, 0, 0).Move(1, 20, 0, 10).Move(1, 30, 0, 20).Feed(root)
	gestures := len(rec.Gestures(1))
	require.NotZero(t, gestures)

	testutil.NewScript().Cancel(1, 30).Move(1, 40, 0, 40).Feed(root)
	assert.Equal(t, []State{Began, Active, Cancelled}, rec.States(1))
	s, _ := root.HandlerState(1)
	assert.Equal(t, Undetermined, s)
	assert.Len(t, rec.Gestures(1), gestures)
}

func TestCoalescingKeys(t *testing.T) {
	root, rec := newRoot(t)
	mustCreate(t, root, Pan, 1, nil)

	for i := 0; i < 3; i++ {
		testutil.NewScript().Down(1, 0, 0, i*100).Drag(1, 50, 0, i*100+50, 5).Up(1, 50, 0, i*100+60).Feed(root)
	}

	var keys []uint32
	last := map[uint32]bool{}
	for _, g := range rec.Gestures(1) {
		if !last[g.CoalescingKey] {
			keys = append(keys, g.CoalescingKey)
			last[g.CoalescingKey] = true
		}
	}
	require.Len(t, keys, 3, "one key per activation")
	assert.Less(t, keys[0], keys[1])
	assert.Less(t, keys[1], keys[2])

	for _, c := range rec.StateChanges(1) {
		if c.State == End {
			assert.True(t, last[c.CoalescingKey], "End carries the activation key")
		}
	}
}

// Two handlers without mutual simultaneity are never Active together.
func TestExclusiveActivation(t *testing.T) {
	root, rec := newRoot(t)
	mustCreate(t, root, Pinch, 1, nil)
	mustCreate(t, root, Rotation, 2, nil)
	mustCreate(t, root, Pan, 3, Config{"minPointers": 2})
	root.DeclareRelations(1, Relations{SimultaneousWith: []HandlerTag{2}})

	testutil.NewScript().
		Down(1, 0, 0, 0).Down(2, 100, 0, 5).
		Drag(2, 0, 150, 60, 6).
		Up(2, 0, 150, 70).Up(1, 0, 0, 80).
		Feed(root)

	active := map[HandlerTag]bool{}
	for _, r := range rec.Records() {
		c := r.StateChange
		if c == nil {
			continue
		}
		if c.State == Active {
			active[c.HandlerTag] = true
		}
		if c.State.Finished() {
			delete(active, c.HandlerTag)
		}
		assert.LessOrEqual(t, len(active), 1, "overlapping exclusive handlers active together")
	}
}

func TestMutualSimultaneity(t *testing.T) {
	root, rec := newRoot(t)
	mustCreate(t, root, Pinch, 1, nil)
	mustCreate(t, root, Rotation, 2, nil)
	root.DeclareRelations(1, Relations{SimultaneousWith: []HandlerTag{2}})
	root.DeclareRelations(2, Relations{SimultaneousWith: []HandlerTag{1}})

	testutil.NewScript().Down(1, 0, 0, 0).Down(2, 100, 0, 5).Move(2, 0, 200, 20).Feed(root)

	assert.Equal(t, []State{Began, Active}, rec.States(1))
	assert.Equal(t, []State{Began, Active}, rec.States(2))
}

func TestErrors(t *testing.T) {
	root, _ := newRoot(t)
	mustCreate(t, root, Pan, 1, nil)

	_, err := root.CreateHandler(Tap, 1, nil)
	assert.True(t, errors.Is(err, ErrTagInUse))
	_, err = root.CreateHandler(Kind(42), 2, nil)
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.True(t, errors.Is(root.AttachHandler(3, 1), ErrNotFound))
	assert.True(t, errors.Is(root.UpdateHandler(3, nil), ErrNotFound))
	assert.True(t, errors.Is(root.SetState(3, Active), ErrNotFound))
	assert.True(t, errors.Is(root.Save(context.Background()), ErrNoPersister))

	_, ok := root.HandlerState(3)
	assert.False(t, ok)
}

func TestManualStateManager(t *testing.T) {
	root, rec := newRoot(t)
	h := mustCreate(t, root, Manual, 1, nil)

	testutil.NewScript().Down(1, 0, 0, 0).Feed(root)
	require.NoError(t, h.SetState(Active))
	assert.Equal(t, Active, h.State())
	require.NoError(t, h.SetState(End))

	assert.Equal(t, []State{Began, Active, End}, rec.States(1))
	assert.Equal(t, Undetermined, h.State())
}

// A sink may call back into the Root: records are delivered after the lock
// is released.
func TestSinkReentry(t *testing.T) {
	var root *Root
	sink := &reentrantSink{}
	root = NewRoot(WithSink(sink))
	sink.root = root
	mustCreate(t, root, Tap, 1, nil)

	testutil.NewScript().Down(1, 0, 0, 0).Up(1, 0, 0, 10).Feed(root)
	assert.Equal(t, []State{Began, Active, End}, sink.seen)
}

type reentrantSink struct {
	root *Root
	seen []State
}

func (s *reentrantSink) OnStateChange(ev StateChangeEvent) {
	s.root.HandlerState(ev.HandlerTag)
	s.seen = append(s.seen, ev.State)
}

func (s *reentrantSink) OnGesture(ev GestureEvent) {}

func TestConcurrentFeeding(t *testing.T) {
	root, _ := newRoot(t)
	mustCreate(t, root, Manual, 1, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			testutil.NewScript().Down(id, 0, 0, 0).Move(id, 5, 5, 10).Up(id, 5, 5, 20).Feed(root)
		}(i)
	}
	wg.Wait()

	s, ok := root.HandlerState(1)
	require.True(t, ok)
	assert.Equal(t, Began, s)
}

func TestConfigRoundTrip(t *testing.T) {
	root := NewRoot(WithID("main"))
	mustCreate(t, root, Pan, 1, Config{"minDist": 20})
	mustCreate(t, root, Tap, 2, Config{"numberOfTaps": 2})
	root.DeclareRelations(1, Relations{WaitFor: []HandlerTag{2}})

	cfg := root.Config()
	assert.NotEmpty(t, cfg.Version)

	other := NewRoot()
	require.NoError(t, other.Apply(cfg))
	got := other.Config()

	if diff := cmp.Diff(cfg.Handlers, got.Handlers); diff != "" {
		t.Errorf("handlers mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "main", other.ID())
	assert.Equal(t, cfg.Version, got.Version, "equal handlers share a version")

	require.NoError(t, other.UpdateHandler(2, Config{"numberOfTaps": 3}))
	assert.NotEqual(t, cfg.Version, other.Config().Version)
}

func TestSaveRestore(t *testing.T) {
	p, err := production.NewJSONPersister(t.TempDir())
	require.NoError(t, err)

	root := NewRoot(WithID("saved"), WithPersister(p))
	mustCreate(t, root, LongPress, 7, Config{"minDurationMs": 300})
	root.DeclareRelations(7, Relations{Blocks: []HandlerTag{8}})
	require.NoError(t, root.Save(context.Background()))

	restored := NewRoot(WithPersister(p))
	require.NoError(t, restored.Restore(context.Background(), "saved"))
	assert.Equal(t, "saved", restored.ID())

	cfg := restored.Config()
	require.Len(t, cfg.Handlers, 1)
	h := cfg.Handlers[0]
	assert.Equal(t, LongPress, h.Kind)
	assert.Equal(t, ViewTag(1), h.View)
	assert.Equal(t, []HandlerTag{8}, h.Blocks)
	assert.EqualValues(t, 300, h.Config.Float("minDurationMs", 0))

	err = restored.Restore(context.Background(), "missing")
	assert.Error(t, err)
}

// NaN marks an offset as unset and infinities mean "no bound"; neither may
// break versioning or persistence.
func TestNonFiniteConfigPersists(t *testing.T) {
	p, err := production.NewJSONPersister(t.TempDir())
	require.NoError(t, err)

	root := NewRoot(WithID("bounds"), WithPersister(p))
	mustCreate(t, root, Pan, 1, Config{"activeOffsetX": math.NaN(), "failOffsetY": math.Inf(1)})
	_, err = root.CreateHandler(Pan, 2, Config{"failOffsetY": math.Inf(-1)})
	require.NoError(t, err)

	v := root.Config().Version
	assert.NotEqual(t, "invalid", v)
	other := NewRoot()
	mustCreate(t, other, Pan, 1, nil)
	assert.NotEqual(t, v, other.Config().Version)

	require.NoError(t, root.Save(context.Background()))

	restored, rec := newRoot(t, WithPersister(p))
	require.NoError(t, restored.Restore(context.Background(), "bounds"))
	cfg := restored.Config()
	require.Len(t, cfg.Handlers, 2)
	assert.NotContains(t, cfg.Handlers[0].Config, "activeOffsetX")
	assert.Equal(t, "+Inf", cfg.Handlers[0].Config["failOffsetY"])
	assert.Equal(t, "-Inf", cfg.Handlers[1].Config["failOffsetY"])

	testutil.NewScript().Down(1, 0, 0, 0).Move(1, 0, 100, 16).Feed(restored)
	assert.Equal(t, []State{Began, Active}, rec.States(1), "an infinite bound never fails")
}

func TestVisualize(t *testing.T) {
	root := NewRoot()
	mustCreate(t, root, Pan, 1, nil)
	mustCreate(t, root, Tap, 2, nil)
	root.DeclareRelations(1, Relations{WaitFor: []HandlerTag{2}})

	dot := root.Visualize()
	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, `"1" -> "2"`)
}
