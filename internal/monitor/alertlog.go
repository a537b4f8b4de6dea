package monitor

import (
	"sync"

	"envmonitor/internal/models"
)

// DefaultAlertCapacity is the number of incidents kept before the oldest
// are evicted.
const DefaultAlertCapacity = 20

// AlertLog is a bounded, newest-first incident list. Entries leave only
// through capacity eviction.
type AlertLog struct {
	mu       sync.RWMutex
	capacity int
	entries  []models.Incident
}

func NewAlertLog(capacity int) *AlertLog {
	if capacity <= 0 {
		capacity = DefaultAlertCapacity
	}
	return &AlertLog{
		capacity: capacity,
		entries:  make([]models.Incident, 0, capacity+1),
	}
}

// Append prepends inc and truncates the tail back to capacity.
func (l *AlertLog) Append(inc models.Incident) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, models.Incident{})
	copy(l.entries[1:], l.entries)
	l.entries[0] = inc
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
}

// Acknowledge marks an active incident acknowledged. It reports whether
// anything changed; unknown ids and repeated calls are no-ops.
func (l *AlertLog) Acknowledge(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID != id {
			continue
		}
		if l.entries[i].Status != models.StatusActive {
			return false
		}
		l.entries[i].Status = models.StatusAcknowledged
		return true
	}
	return false
}

// List returns a copy of the log, newest first.
func (l *AlertLog) List() []models.Incident {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Incident, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *AlertLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Unacknowledged counts entries still in the active status.
func (l *AlertLog) Unacknowledged() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for _, e := range l.entries {
		if e.Status == models.StatusActive {
			n++
		}
	}
	return n
}
