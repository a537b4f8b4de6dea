package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"envmonitor/internal/models"
	"envmonitor/internal/monitor"
)

type feedStub struct {
	latest  *models.Sample
	history []models.Sample
	err     error
	windows []models.HistoryWindow
}

func (f *feedStub) Latest(ctx context.Context) (*models.Sample, error) {
	return f.latest, f.err
}

func (f *feedStub) History(ctx context.Context, w models.HistoryWindow) ([]models.Sample, error) {
	f.windows = append(f.windows, w)
	return f.history, f.err
}

func fptr(v float64) *float64 { return &v }

func newMonitoringFixture(t *testing.T, feed monitor.Feed) (*MonitoringService, *AlertService, *monitor.Poller, *ThresholdService) {
	t.Helper()
	thresholds := NewThresholdService(&thresholdRepoStub{}, nil, models.DefaultThresholds, nil)
	station := monitor.NewStation(0)
	poller, err := monitor.NewPoller(monitor.PollerConfig{
		Feed:       feed,
		Station:    station,
		Thresholds: thresholds,
		Now:        func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewPoller: %v", err)
	}
	return NewMonitoringService(poller, thresholds), NewAlertService(station.Alerts()), poller, thresholds
}

func TestMonitoringService_StateCarriesRangeAndThresholds(t *testing.T) {
	feed := &feedStub{
		latest:  &models.Sample{EntryID: 9, Temperature: fptr(31), Humidity: fptr(50)},
		history: []models.Sample{{EntryID: 8}, {EntryID: 9}},
	}
	mon, alerts, poller, thresholds := newMonitoringFixture(t, feed)

	if err := poller.Cycle(context.Background()); err != nil {
		t.Fatalf("Cycle: %v", err)
	}

	st := mon.State()
	if st.Status != models.StatusConnected {
		t.Fatalf("status = %q, want connected", st.Status)
	}
	if st.Range != models.Range24h {
		t.Fatalf("range = %q, want 24h", st.Range)
	}
	if st.Thresholds != thresholds.Current() {
		t.Fatalf("thresholds not attached to snapshot")
	}
	if st.Current == nil || st.Current.EntryID != 9 || st.HistoryCount != 2 {
		t.Fatalf("unexpected snapshot: %+v", st)
	}
	if len(mon.History()) != 2 {
		t.Fatalf("history len = %d, want 2", len(mon.History()))
	}

	list := alerts.List()
	if len(list) != 1 || list[0].Key != models.BreachTempHigh {
		t.Fatalf("expected one TEMP_HIGH incident, got %+v", list)
	}
	if !alerts.Acknowledge(list[0].ID) {
		t.Fatalf("acknowledge returned false")
	}
	if mon.State().Unacknowledged != 0 {
		t.Fatalf("incident still unacknowledged")
	}
}

func TestMonitoringService_SetRangeAndRefresh(t *testing.T) {
	mon, _, poller, _ := newMonitoringFixture(t, &feedStub{err: errors.New("offline")})

	if mon.Refresh() {
		t.Fatalf("refresh must be refused while polling is paused")
	}
	if err := mon.SetRange("1y"); !errors.Is(err, monitor.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if err := mon.SetRange(models.Range7d); err != nil {
		t.Fatalf("SetRange: %v", err)
	}
	if poller.Range() != models.Range7d {
		t.Fatalf("range not applied")
	}

	poller.Resume()
	defer poller.Pause()
	if !mon.Refresh() {
		t.Fatalf("refresh must be accepted while polling is active")
	}
}
