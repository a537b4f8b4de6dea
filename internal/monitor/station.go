package monitor

import (
	"context"
	"sync"
	"time"

	"envmonitor/internal/models"
)

// Station owns the detection state of one monitored feed: connection
// status, displayed sample and history, the active breach set and the
// alert log. A new Station is empty. Reset clears the session-scoped part
// when the session ends; the alert log outlives sessions and only loses
// entries to capacity eviction.
type Station struct {
	mu       sync.RWMutex
	tracker  *BreachTracker
	alerts   *AlertLog
	status   models.ConnectionStatus
	current  *models.Sample
	history  []models.Sample
	lastSync time.Time
	lastErr  string
}

func NewStation(alertCapacity int) *Station {
	return &Station{
		tracker: NewBreachTracker(),
		alerts:  NewAlertLog(alertCapacity),
		status:  models.StatusReconnecting,
	}
}

// Alerts exposes the incident log for listing and acknowledgement.
func (s *Station) Alerts() *AlertLog { return s.alerts }

func (s *Station) Status() models.ConnectionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Station) beginAttempt() {
	s.mu.Lock()
	s.status = models.StatusReconnecting
	s.mu.Unlock()
}

// fail records a failed fetch. Sample, history and breach state are kept.
func (s *Station) fail(err error) {
	s.mu.Lock()
	s.status = models.StatusError
	s.lastErr = err.Error()
	s.mu.Unlock()
}

// commit applies a fully fetched cycle atomically and returns the
// incidents it raised. Nothing is applied if ctx is already done.
func (s *Station) commit(ctx context.Context, latest *models.Sample, history []models.Sample,
	th models.Thresholds, now time.Time, newID func() string) ([]models.Incident, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return nil, false
	}

	var raised []models.Incident
	if latest != nil {
		sample := *latest
		s.current = &sample
		for _, e := range s.tracker.Update(Evaluate(sample, th)) {
			inc := newIncident(e.Key, sample, th, now, newID())
			s.alerts.Append(inc)
			raised = append(raised, inc)
		}
	}
	s.history = history
	s.lastSync = now
	s.lastErr = ""
	s.status = models.StatusConnected
	return raised, true
}

func newIncident(key models.BreachKey, sample models.Sample, th models.Thresholds, now time.Time, id string) models.Incident {
	c, _ := conditionFor(key)
	v := *c.field(sample)
	return models.Incident{
		ID:          id,
		Key:         key,
		Severity:    c.severity,
		Title:       c.title,
		Description: c.describe(v),
		Value:       v,
		Threshold:   c.bound(th),
		CreatedAt:   now,
		Status:      models.StatusActive,
	}
}

// ActiveBreaches returns the keys currently latched.
func (s *Station) ActiveBreaches() []models.BreachKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker.Active()
}

// History returns a copy of the last committed history window.
func (s *Station) History() []models.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Sample, len(s.history))
	copy(out, s.history)
	return out
}

// Snapshot returns the read-only view of the station. Range and
// Thresholds are left for the caller to fill in.
func (s *Station) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Snapshot{
		Status:         s.status,
		HistoryCount:   len(s.history),
		ActiveBreaches: s.tracker.Active(),
		LastSync:       s.lastSync,
		LastError:      s.lastErr,
		Unacknowledged: s.alerts.Unacknowledged(),
	}
	if s.current != nil {
		c := *s.current
		snap.Current = &c
	}
	return snap
}

// Reset clears the breach set, sample, history and connection status.
// The alert log is kept.
func (s *Station) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracker.Reset()
	s.status = models.StatusReconnecting
	s.current = nil
	s.history = nil
	s.lastSync = time.Time{}
	s.lastErr = ""
}
