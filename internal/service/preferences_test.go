package service

import (
	"context"
	"errors"
	"testing"

	"envmonitor/internal/models"
)

func TestPreferenceService_LoadAndUpdate(t *testing.T) {
	repo := &preferenceRepoStub{loadResp: models.Preferences{SoundEnabled: false, NotificationsEnabled: true}, loadFound: true}
	svc := NewPreferenceService(repo, models.Preferences{SoundEnabled: true, NotificationsEnabled: true})

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if svc.Current().SoundEnabled {
		t.Fatalf("stored preferences were not loaded")
	}

	got, err := svc.SetSound(context.Background(), true)
	if err != nil {
		t.Fatalf("SetSound: %v", err)
	}
	if !got.SoundEnabled || !got.NotificationsEnabled {
		t.Fatalf("unexpected preferences: %+v", got)
	}

	got, err = svc.SetNotifications(context.Background(), false)
	if err != nil {
		t.Fatalf("SetNotifications: %v", err)
	}
	if !got.SoundEnabled || got.NotificationsEnabled {
		t.Fatalf("partial update touched the wrong toggle: %+v", got)
	}
	if len(repo.saved) != 2 {
		t.Fatalf("expected 2 saves, got %d", len(repo.saved))
	}
}

func TestPreferenceService_UpdateFailureKeepsCurrent(t *testing.T) {
	repo := &preferenceRepoStub{saveErr: errors.New("disk full")}
	start := models.Preferences{SoundEnabled: true, NotificationsEnabled: true}
	svc := NewPreferenceService(repo, start)

	off := false
	if _, err := svc.Update(context.Background(), PreferenceUpdate{SoundEnabled: &off}); err == nil {
		t.Fatalf("expected save error")
	}
	if svc.Current() != start {
		t.Fatalf("current changed despite failed save: %+v", svc.Current())
	}
}

func TestPreferenceService_LoadError(t *testing.T) {
	svc := NewPreferenceService(&preferenceRepoStub{loadErr: errors.New("boom")}, models.Preferences{})
	if err := svc.Load(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
}
