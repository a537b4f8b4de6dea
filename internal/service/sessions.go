package service

import (
	"context"
	"sync"
	"time"

	"envmonitor/internal/logger"
)

// pollGate is the part of the poller that follows session presence.
type pollGate interface {
	Resume()
	Pause()
}

// SessionService tracks authenticated users. Polling runs while at least
// one session is open and pauses when the last one closes or expires.
type SessionService struct {
	gate pollGate
	log  *logger.Logger
	now  func() time.Time

	// held across gate calls so Resume and Pause follow session order
	mu       sync.Mutex
	sessions map[int]time.Time // userID -> expiry
}

func NewSessionService(gate pollGate, log *logger.Logger) *SessionService {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionService{
		gate:     gate,
		log:      log,
		now:      time.Now,
		sessions: make(map[int]time.Time),
	}
}

// Open registers or extends a session. Already expired sessions are ignored.
func (s *SessionService) Open(userID int, expiresAt time.Time) {
	if !expiresAt.IsZero() && !expiresAt.After(s.now()) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	first := len(s.sessions) == 0
	if cur, ok := s.sessions[userID]; !ok || expiresAt.After(cur) || expiresAt.IsZero() {
		s.sessions[userID] = expiresAt
	}
	if first {
		s.log.Infow("session_opened", "user_id", userID)
		s.gate.Resume()
	}
}

func (s *SessionService) Close(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[userID]
	delete(s.sessions, userID)
	if ok && len(s.sessions) == 0 {
		s.log.Infow("last_session_closed", "user_id", userID)
		s.gate.Pause()
	}
}

// Sweep drops sessions expired at now and returns how many remain.
func (s *SessionService) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	had := len(s.sessions)
	for id, exp := range s.sessions {
		if !exp.IsZero() && !exp.After(now) {
			delete(s.sessions, id)
		}
	}
	left := len(s.sessions)

	if had > 0 && left == 0 {
		s.log.Infow("sessions_expired")
		s.gate.Pause()
	}
	return left
}

func (s *SessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run sweeps expired sessions until ctx is done.
func (s *SessionService) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep(s.now())
		}
	}
}
