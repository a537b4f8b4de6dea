package service

import (
	"context"
	"fmt"
	"sync"

	"envmonitor/internal/models"
	"envmonitor/internal/repository"
)

// PreferenceService holds the local notification toggles.
type PreferenceService struct {
	repo repository.PreferenceRepo

	mu      sync.RWMutex
	current models.Preferences
}

func NewPreferenceService(repo repository.PreferenceRepo, defaults models.Preferences) *PreferenceService {
	return &PreferenceService{repo: repo, current: defaults}
}

func (s *PreferenceService) Current() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *PreferenceService) Load(ctx context.Context) error {
	p, found, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	if found {
		s.mu.Lock()
		s.current = p
		s.mu.Unlock()
	}
	return nil
}

// Update applies the non-nil fields of u and persists the result. The
// in-memory value only changes once the save succeeds.
func (s *PreferenceService) Update(ctx context.Context, u PreferenceUpdate) (models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	if u.SoundEnabled != nil {
		next.SoundEnabled = *u.SoundEnabled
	}
	if u.NotificationsEnabled != nil {
		next.NotificationsEnabled = *u.NotificationsEnabled
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return s.current, err
	}
	s.current = next
	return next, nil
}

func (s *PreferenceService) SetSound(ctx context.Context, on bool) (models.Preferences, error) {
	return s.Update(ctx, PreferenceUpdate{SoundEnabled: &on})
}

func (s *PreferenceService) SetNotifications(ctx context.Context, on bool) (models.Preferences, error) {
	return s.Update(ctx, PreferenceUpdate{NotificationsEnabled: &on})
}
