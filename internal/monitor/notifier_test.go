package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"envmonitor/internal/models"
)

type notifierFunc func(ctx context.Context, n Notification) error

func (f notifierFunc) Notify(ctx context.Context, n Notification) error { return f(ctx, n) }

func TestDispatch_PreferenceGates(t *testing.T) {
	inc := newIncident(models.BreachTempHigh, sample(f64(31), nil), defaultTh, fixedNow, "id-1")
	cases := []struct {
		name       string
		prefs      models.Preferences
		wantSound  int
		wantSystem int
	}{
		{"sound only", models.Preferences{SoundEnabled: true}, 1, 0},
		{"notifications only", models.Preferences{NotificationsEnabled: true}, 0, 1},
		{"both", models.Preferences{SoundEnabled: true, NotificationsEnabled: true}, 1, 1},
		{"neither", models.Preferences{}, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sound, system := &recordingNotifier{}, &recordingNotifier{}
			d := NewDispatcher(nil, 0,
				Channel{Name: "audio", Notifier: sound, Enabled: SoundEnabled},
				Channel{Name: "system", Notifier: system, Enabled: NotificationsEnabled},
			)
			d.Dispatch(context.Background(), tc.prefs, inc)
			d.Close()

			if sound.count() != tc.wantSound || system.count() != tc.wantSystem {
				t.Fatalf("sound=%d system=%d, want %d/%d", sound.count(), system.count(), tc.wantSound, tc.wantSystem)
			}
		})
	}
}

func TestDispatch_NotificationContent(t *testing.T) {
	rec := &recordingNotifier{}
	d := NewDispatcher(nil, 0, Channel{Name: "rec", Notifier: rec})
	d.Dispatch(context.Background(), models.Preferences{},
		newIncident(models.BreachTempHigh, sample(f64(31), nil), defaultTh, fixedNow, "id-1"))
	d.Close()

	n := rec.sent[0]
	if n.IncidentID != "id-1" || n.Title != "Temp High" || n.Body != "High breach: 31°C" || n.Severity != models.SeverityDanger {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestDispatch_FailuresAreIsolated(t *testing.T) {
	rec := &recordingNotifier{}
	d := NewDispatcher(nil, 0,
		Channel{Name: "broken", Notifier: notifierFunc(func(context.Context, Notification) error {
			return errors.New("denied")
		})},
		Channel{Name: "panicky", Notifier: notifierFunc(func(context.Context, Notification) error {
			panic("speaker on fire")
		})},
		Channel{Name: "rec", Notifier: rec},
	)

	d.Dispatch(context.Background(), models.Preferences{}, incident("x"))
	d.Dispatch(context.Background(), models.Preferences{}, incident("y"))
	d.Close()
	if rec.count() != 2 {
		t.Fatalf("healthy channel got %d notifications, want 2", rec.count())
	}
}

func TestDispatch_ReturnsWithoutWaiting(t *testing.T) {
	release := make(chan struct{})
	d := NewDispatcher(nil, time.Second, Channel{Name: "slow", Notifier: notifierFunc(func(ctx context.Context, _ Notification) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	})})

	started := time.Now()
	for i := 0; i < 4; i++ {
		d.Dispatch(context.Background(), models.Preferences{}, incident("x"))
	}
	if el := time.Since(started); el > 100*time.Millisecond {
		t.Fatalf("Dispatch blocked for %v", el)
	}
	close(release)
	d.Close()
}

func TestDispatch_DetachesFromCancelledContext(t *testing.T) {
	var sawErr error
	d := NewDispatcher(nil, 0, Channel{Name: "rec", Notifier: notifierFunc(func(ctx context.Context, _ Notification) error {
		sawErr = ctx.Err()
		return nil
	})})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Dispatch(ctx, models.Preferences{}, incident("x"))
	d.Close()
	if sawErr != nil {
		t.Fatalf("notifier received a cancelled context: %v", sawErr)
	}
}

func TestDispatch_AfterClose(t *testing.T) {
	rec := &recordingNotifier{}
	d := NewDispatcher(nil, 0, Channel{Name: "rec", Notifier: rec})
	d.Close()
	d.Close()
	d.Dispatch(context.Background(), models.Preferences{}, incident("x"))
	if rec.count() != 0 {
		t.Fatalf("closed dispatcher delivered a notification")
	}
}

func TestDispatch_NilDispatcher(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(context.Background(), models.Preferences{SoundEnabled: true}, incident("x"))
	d.Close()
}
