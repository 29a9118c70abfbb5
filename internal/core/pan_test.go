package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/gesturex/internal/primitives"
)

const (
	b  = primitives.Began
	a  = primitives.Active
	e  = primitives.End
	fl = primitives.Failed
	cn = primitives.Cancelled
)

func TestPanActivatesPastMinDist(t *testing.T) {
	f := newFixture(t)
	h := f.add(primitives.Pan, 1, primitives.Config{"minDist": 10})

	f.feed(down(1, 0, 0, 0))
	assert.Equal(t, primitives.Began, h.State())

	f.feed(move(1, 3, 0, 10))
	assert.Equal(t, primitives.Began, h.State())

	f.feed(move(1, 15, 0, 20))
	require.Equal(t, primitives.Active, h.State())
	assert.Equal(t, primitives.Pt(15, 0), f.last(1).Data.Translation)

	f.feed(up(1, 15, 0, 30))
	if diff := cmp.Diff(states(b, a, e), f.states(1)); diff != "" {
		t.Errorf("states mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, primitives.Undetermined, h.State())
}

func TestPanMeasuresScreenCoordinates(t *testing.T) {
	f := newFixture(t)
	h := f.add(primitives.Pan, 1, primitives.Config{"minDist": 10})

	// The view scrolls by 50 under a finger that stays put.
	scrolled := move(1, 0, 0, 10)
	scrolled.Position = primitives.Pt(0, -50)
	f.feed(down(1, 0, 0, 0), scrolled)
	assert.Equal(t, primitives.Began, h.State())

	dragged := move(1, 20, 0, 20)
	dragged.Position = primitives.Pt(20, -50)
	f.feed(dragged)
	require.Equal(t, primitives.Active, h.State())
	assert.Equal(t, primitives.Pt(20, 0), f.last(1).Data.Translation)
	assert.Equal(t, primitives.Pt(20, -50), f.last(1).Data.Position)
}

func TestPanReleaseBeforeActivationFails(t *testing.T) {
	f := newFixture(t)
	f.add(primitives.Pan, 1, nil)

	f.feed(down(1, 0, 0, 0), move(1, 4, 0, 10), up(1, 4, 0, 20))
	assert.Equal(t, states(b, fl), f.states(1))
}

func TestPanFailOffset(t *testing.T) {
	f := newFixture(t)
	f.add(primitives.Pan, 1, primitives.Config{"failOffsetY": []any{-5, 5}, "minDist": 30})

	f.feed(down(1, 0, 0, 0), move(1, 2, 8, 10))
	assert.Equal(t, states(b, fl), f.states(1))
}

func TestPanActiveOffsetDisablesMinDist(t *testing.T) {
	f := newFixture(t)
	h := f.add(primitives.Pan, 1, primitives.Config{"activeOffsetX": 20})

	f.feed(down(1, 0, 0, 0), move(1, 0, 40, 10))
	assert.Equal(t, primitives.Began, h.State(), "vertical movement must not activate")

	f.feed(move(1, 15, 40, 20))
	assert.Equal(t, primitives.Began, h.State())

	f.feed(move(1, 25, 40, 30))
	assert.Equal(t, primitives.Active, h.State())
}

func TestPanDirection(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		f := newFixture(t)
		h := f.add(primitives.Pan, 1, primitives.Config{"direction": "right"})
		f.feed(down(1, 0, 0, 0), move(1, 20, 2, 10))
		assert.Equal(t, primitives.Active, h.State())
	})
	t.Run("opposite", func(t *testing.T) {
		f := newFixture(t)
		f.add(primitives.Pan, 1, primitives.Config{"direction": "right"})
		f.feed(down(1, 0, 0, 0), move(1, -20, 0, 10))
		assert.Equal(t, states(b, fl), f.states(1))
	})
}

func TestPanContinuousRecordsShareKey(t *testing.T) {
	f := newFixture(t)
	f.add(primitives.Pan, 1, nil)

	f.feed(down(1, 0, 0, 0), move(1, 20, 0, 10), move(1, 30, 0, 20), move(1, 40, 0, 30), up(1, 40, 0, 40))

	gestures := f.gestures(1)
	require.Len(t, gestures, 3, "one with the Active transition and one per later move")
	for _, g := range gestures {
		assert.Equal(t, primitives.Active, g.State)
		assert.Equal(t, uint32(1), g.CoalescingKey)
	}
	assert.Equal(t, primitives.Pt(40, 0), gestures[2].Data.Translation)

	// A second activation gets a new key.
	f.feed(down(1, 0, 0, 100), move(1, 20, 0, 110))
	gestures = f.gestures(1)
	assert.Equal(t, uint32(2), gestures[len(gestures)-1].CoalescingKey)
}

func TestPanTranslationSurvivesPointerChanges(t *testing.T) {
	f := newFixture(t)
	f.add(primitives.Pan, 1, nil)

	f.feed(down(1, 0, 0, 0), move(1, 20, 0, 10))
	// A second finger lands; the average jumps but the translation must not.
	f.feed(down(2, 100, 0, 20))
	f.feed(move(1, 30, 0, 30))
	last := f.gestures(1)
	assert.Equal(t, primitives.Pt(25, 0), last[len(last)-1].Data.Translation)
}

func TestPanActivateAfterLongPress(t *testing.T) {
	f := newFixture(t)
	h := f.add(primitives.Pan, 1, primitives.Config{"activateAfterLongPress": 500})

	f.feed(down(1, 0, 0, 0))
	f.tick(300)
	assert.Equal(t, primitives.Began, h.State())
	f.tick(500)
	assert.Equal(t, primitives.Active, h.State())
}

func TestPanTooManyPointers(t *testing.T) {
	f := newFixture(t)
	f.add(primitives.Pan, 1, primitives.Config{"maxPointers": 1})

	f.feed(down(1, 0, 0, 0), move(1, 20, 0, 10), down(2, 50, 50, 20))
	assert.Equal(t, states(b, a, cn), f.states(1))
}
