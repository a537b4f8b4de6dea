package monitor

// Latch is an edge-triggered flag. It reports only the rising edge; the
// release point equals the trigger point (no hysteresis, no debounce).
type Latch struct {
	set bool
}

// Update feeds the current truth value and reports whether this call
// moved the latch from clear to set.
func (l *Latch) Update(on bool) (entered bool) {
	switch {
	case on && !l.set:
		l.set = true
		return true
	case !on && l.set:
		l.set = false
	}
	return false
}

func (l *Latch) Active() bool { return l.set }

func (l *Latch) Reset() { l.set = false }
