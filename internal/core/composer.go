package core

import "github.com/comalice/gesturex/internal/primitives"

// Composer turns handler transitions and updates into records.
type Composer struct{}

// Compose returns the records for h moving from old to s. A handler that
// reaches End without having been Active is reported as Active first, so
// consumers always see Active before End. Entering Active also carries a
// gesture record.
func (c *Composer) Compose(h *Handler, old, s primitives.State) []Emission {
	data := h.measure()
	if s == primitives.End && old != primitives.Active {
		return []Emission{
			c.stateChange(h, old, primitives.Active, data),
			c.gesture(h, primitives.Active, data),
			c.stateChange(h, primitives.Active, primitives.End, data),
		}
	}
	out := []Emission{c.stateChange(h, old, s, data)}
	if s == primitives.Active {
		out = append(out, c.gesture(h, s, data))
	}
	return out
}

// Update returns the gesture record for a continuous update of h. Only
// Active handlers produce one.
func (c *Composer) Update(h *Handler) (Emission, bool) {
	if h.state != primitives.Active {
		return Emission{}, false
	}
	return c.gesture(h, h.state, h.measure()), true
}

func (c *Composer) stateChange(h *Handler, old, s primitives.State, data primitives.Measurements) Emission {
	return Emission{StateChange: &primitives.StateChangeEvent{
		HandlerTag:    h.tag,
		ViewTag:       h.view,
		Kind:          h.kind,
		OldState:      old,
		State:         s,
		CoalescingKey: h.coalescingKey,
		Data:          data,
	}}
}

func (c *Composer) gesture(h *Handler, s primitives.State, data primitives.Measurements) Emission {
	return Emission{Gesture: &primitives.GestureEvent{
		HandlerTag:    h.tag,
		ViewTag:       h.view,
		Kind:          h.kind,
		State:         s,
		CoalescingKey: h.coalescingKey,
		Data:          data,
	}}
}
