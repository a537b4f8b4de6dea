package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"envmonitor/internal/models"
)

func TestThresholdService_Load(t *testing.T) {
	t.Parallel()

	stored := models.Thresholds{TempHigh: 28, TempLow: 10, HumHigh: 80, HumLow: 20}
	cases := []struct {
		name    string
		repo    *thresholdRepoStub
		want    models.Thresholds
		wantErr bool
	}{
		{"stored value replaces defaults", &thresholdRepoStub{loadResp: stored, loadFound: true}, stored, false},
		{"missing row keeps defaults", &thresholdRepoStub{}, models.DefaultThresholds, false},
		{"repo error keeps defaults", &thresholdRepoStub{loadErr: errors.New("locked")}, models.DefaultThresholds, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewThresholdService(tc.repo, nil, models.DefaultThresholds, nil)
			err := svc.Load(context.Background())
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got := svc.Current(); got != tc.want {
				t.Fatalf("current = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestThresholdService_Update_PersistsAndAudits(t *testing.T) {
	repo := &thresholdRepoStub{}
	audit := &auditRepoStub{}
	svc := NewThresholdService(repo, NewAuditService(audit, nil), models.DefaultThresholds, nil)

	actor := Identity{UserID: 1, Username: "admin", Role: models.RoleAdmin}
	next := models.Thresholds{TempHigh: 32.5, TempLow: 12, HumHigh: 70, HumLow: 35}

	got, err := svc.Update(context.Background(), actor, next)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatalf("expected UpdatedAt to be stamped")
	}
	if svc.Current() != got {
		t.Fatalf("current = %+v, want %+v", svc.Current(), got)
	}
	if len(repo.saved) != 1 || repo.saved[0] != got {
		t.Fatalf("unexpected saves: %+v", repo.saved)
	}
	if len(audit.appended) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(audit.appended))
	}
	want := "Updated environment thresholds: T(12-32.5) H(35-70)"
	if e := audit.appended[0]; e.Action != want || e.UserID != 1 || e.Username != "admin" {
		t.Fatalf("unexpected audit entry: %+v", e)
	}
}

func TestThresholdService_Update_PersistFailureStaysLocal(t *testing.T) {
	repo := &thresholdRepoStub{saveErr: errors.New("permission denied")}
	audit := &auditRepoStub{}
	svc := NewThresholdService(repo, NewAuditService(audit, nil), models.DefaultThresholds, nil)

	next := models.Thresholds{TempHigh: 25, TempLow: 18, HumHigh: 60, HumLow: 40}
	got, err := svc.Update(context.Background(), Identity{UserID: 1}, next)
	if !errors.Is(err, ErrThresholdsNotPersisted) {
		t.Fatalf("expected ErrThresholdsNotPersisted, got %v", err)
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("expected cause in error, got %v", err)
	}
	if cur := svc.Current(); cur != got || cur.TempHigh != 25 {
		t.Fatalf("local value not applied: %+v", cur)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected exactly one save attempt, got %d", len(repo.saved))
	}
	if len(audit.appended) != 0 {
		t.Fatalf("audit must not be recorded on failed persistence")
	}
}

func TestThresholdService_Update_InvertedRangeAccepted(t *testing.T) {
	svc := NewThresholdService(&thresholdRepoStub{}, nil, models.DefaultThresholds, nil)

	inverted := models.Thresholds{TempHigh: 10, TempLow: 20, HumHigh: 30, HumLow: 75}
	got, err := svc.Update(context.Background(), Identity{}, inverted)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.TempHigh != 10 || got.TempLow != 20 {
		t.Fatalf("inverted range was altered: %+v", got)
	}
}

func TestThresholdService_Update_RejectsNonFinite(t *testing.T) {
	repo := &thresholdRepoStub{}
	svc := NewThresholdService(repo, nil, models.DefaultThresholds, nil)

	_, err := svc.Update(context.Background(), Identity{}, models.Thresholds{TempHigh: math.NaN()})
	if !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}
	if svc.Current() != models.DefaultThresholds || len(repo.saved) != 0 {
		t.Fatalf("rejected update must not change anything")
	}
}
