package feed

import (
	"context"
	"testing"
	"time"

	"envmonitor/internal/models"
)

func fixedSimulator(now time.Time) *Simulator {
	s := NewSimulator()
	s.Now = func() time.Time { return now }
	return s
}

func TestSimulator_Latest(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 42, 0, time.UTC)
	s := fixedSimulator(now)

	got, err := s.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if !got.Timestamp.Equal(now.Truncate(time.Minute)) {
		t.Fatalf("timestamp = %v", got.Timestamp)
	}
	if got.Temperature == nil || got.Humidity == nil {
		t.Fatalf("expected both fields: %+v", got)
	}
	if *got.Temperature < BaseTempC-TempSwingC || *got.Temperature > BaseTempC+TempSwingC {
		t.Fatalf("temperature %v outside the simulated swing", *got.Temperature)
	}
}

func TestSimulator_Dropout(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	s := fixedSimulator(now)
	s.DropoutEvery = 1

	got, _ := s.Latest(context.Background())
	if got.Temperature != nil {
		t.Fatalf("expected missing temperature, got %v", *got.Temperature)
	}
}

func TestSimulator_History(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	s := fixedSimulator(now)

	h, err := s.History(context.Background(), models.HistoryWindow{Results: 144, Days: 1})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(h) != 144 {
		t.Fatalf("len = %d, want 144", len(h))
	}
	if !h[len(h)-1].Timestamp.Equal(now) {
		t.Fatalf("newest point should be now, got %v", h[len(h)-1].Timestamp)
	}
	for i := 1; i < len(h); i++ {
		if !h[i].Timestamp.After(h[i-1].Timestamp) {
			t.Fatalf("history not oldest first at %d", i)
		}
	}
}

func TestSimulator_CancelledContext(t *testing.T) {
	s := NewSimulator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Latest(ctx); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := s.History(ctx, models.HistoryWindow{Results: 1, Days: 1}); err == nil {
		t.Fatalf("expected error")
	}
}
