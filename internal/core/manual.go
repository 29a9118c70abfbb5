package core

import (
	"time"

	"github.com/comalice/gesturex/internal/primitives"
	"github.com/comalice/gesturex/internal/tracker"
)

// manual only begins on its own; every later transition comes from
// Registry.SetState.
type manual struct{}

func (manual) configure(cfg primitives.Config) {}

func (manual) reset() {}

func (manual) down(h *Handler, ev primitives.PointerEvent, set tracker.Set, first bool) {
	if first {
		h.begin()
	}
}

func (manual) move(h *Handler, ev primitives.PointerEvent, set tracker.Set) {}

func (manual) up(h *Handler, ev primitives.PointerEvent, set tracker.Set, last bool) {}

func (manual) tick(h *Handler, now time.Duration) {}

func (manual) measure(h *Handler, m *primitives.Measurements) {}

func (manual) continuous() bool { return true }
