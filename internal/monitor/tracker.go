package monitor

import "envmonitor/internal/models"

// Edge is an entering transition of one BreachKey. Clearing is silent and
// produces no Edge.
type Edge struct {
	Key models.BreachKey
}

// BreachTracker is the active breach set: one independent Latch per key.
// It is not safe for concurrent use; Station serializes access.
type BreachTracker struct {
	latches map[models.BreachKey]*Latch
}

func NewBreachTracker() *BreachTracker {
	t := &BreachTracker{latches: make(map[models.BreachKey]*Latch, len(models.BreachKeys))}
	for _, k := range models.BreachKeys {
		t.latches[k] = &Latch{}
	}
	return t
}

// Update applies one evaluation. A key missing from flags counts as false
// and clears that latch. Edges come back in models.BreachKeys order.
func (t *BreachTracker) Update(flags Flags) []Edge {
	var edges []Edge
	for _, k := range models.BreachKeys {
		if t.latches[k].Update(flags[k]) {
			edges = append(edges, Edge{Key: k})
		}
	}
	return edges
}

func (t *BreachTracker) IsActive(k models.BreachKey) bool {
	l, ok := t.latches[k]
	return ok && l.Active()
}

// Active returns the keys currently latched.
func (t *BreachTracker) Active() []models.BreachKey {
	out := make([]models.BreachKey, 0, len(models.BreachKeys))
	for _, k := range models.BreachKeys {
		if t.latches[k].Active() {
			out = append(out, k)
		}
	}
	return out
}

func (t *BreachTracker) Reset() {
	for _, l := range t.latches {
		l.Reset()
	}
}
