package builder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/gesturex"
	"github.com/comalice/gesturex/testutil"
)

func TestNewConfig(t *testing.T) {
	cfg := New(
		MinDist(20),
		FailOffsetY(-5, 5),
		Direction(gesturex.Left|gesturex.Up),
		MaxDuration(300*time.Millisecond),
		MaxDelta(4, 6),
	)

	assert.Equal(t, 20.0, cfg.Float("minDist", 0))
	assert.Equal(t, []any{-5.0, 5.0}, cfg["failOffsetY"])
	assert.Equal(t, gesturex.Left|gesturex.Up, cfg.Direction("direction", 0))
	assert.Equal(t, 300*time.Millisecond, cfg.Millis("maxDurationMs", 0))
	assert.Equal(t, 4.0, cfg.Float("maxDeltaX", 0))
	assert.Equal(t, 6.0, cfg.Float("maxDeltaY", 0))
}

func TestOptionsDriveHandlers(t *testing.T) {
	rec := testutil.NewRecorder()
	root := gesturex.NewRoot(gesturex.WithSink(rec))

	_, err := root.CreateHandler(gesturex.Pan, 1, New(ActiveOffsetX(-30, 30)))
	require.NoError(t, err)
	require.NoError(t, root.AttachHandler(1, 1))

	testutil.NewScript().Down(1, 0, 0, 0).Move(1, 25, 0, 10).Feed(root)
	s, _ := root.HandlerState(1)
	assert.Equal(t, gesturex.Began, s, "custom offsets replace the default distance")

	testutil.NewScript().Move(1, 35, 0, 20).Feed(root)
	s, _ = root.HandlerState(1)
	assert.Equal(t, gesturex.Active, s)
}

func TestLongPressOptions(t *testing.T) {
	root := gesturex.NewRoot()
	_, err := root.CreateHandler(gesturex.LongPress, 1, New(MinDuration(200*time.Millisecond), MaxDist(5)))
	require.NoError(t, err)
	require.NoError(t, root.AttachHandler(1, 1))

	testutil.NewScript().Down(1, 0, 0, 0).Feed(root)
	root.Tick(150 * time.Millisecond)
	s, _ := root.HandlerState(1)
	assert.Equal(t, gesturex.Began, s)

	root.Tick(200 * time.Millisecond)
	s, _ = root.HandlerState(1)
	assert.Equal(t, gesturex.Active, s)
}
