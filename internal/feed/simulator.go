package feed

import (
	"context"
	"math"
	"time"

	"envmonitor/internal/models"
)

// ----------- Simulation constants -----------
const (
	BaseTempC       = 22.0 // daily mean temperature °C
	TempSwingC      = 9.0  // peak deviation from the mean °C
	BaseHumidityPct = 55.0
	HumSwingPct     = 25.0
	dayPeriod       = 24 * time.Hour
)

// Simulator is an offline Feed producing a smooth daily temperature and
// humidity cycle. Every DropoutEvery-th entry has no temperature, which
// exercises the indeterminate-field path.
type Simulator struct {
	Now          func() time.Time
	DropoutEvery int
}

func NewSimulator() *Simulator {
	return &Simulator{Now: func() time.Time { return time.Now().UTC() }}
}

// sampleAt computes the reading for t. Temperature peaks mid-afternoon and
// humidity moves opposite to it.
func (s *Simulator) sampleAt(t time.Time, entryID int) models.Sample {
	phase := 2 * math.Pi * float64(t.Sub(t.Truncate(dayPeriod))) / float64(dayPeriod)
	wave := math.Sin(phase - 3*math.Pi/4)

	temp := round1(BaseTempC + TempSwingC*wave)
	hum := round1(BaseHumidityPct - HumSwingPct*wave)

	sample := models.Sample{EntryID: entryID, Timestamp: t, Humidity: &hum}
	if s.DropoutEvery <= 0 || entryID%s.DropoutEvery != 0 {
		sample.Temperature = &temp
	}
	return sample
}

func (s *Simulator) entryID(t time.Time) int {
	return int(t.Unix() / 60)
}

func (s *Simulator) Latest(ctx context.Context) (*models.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.Now().Truncate(time.Minute)
	sample := s.sampleAt(now, s.entryID(now))
	return &sample, nil
}

// History spreads w.Results points evenly over the last w.Days days,
// oldest first.
func (s *Simulator) History(ctx context.Context, w models.HistoryWindow) ([]models.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if w.Results <= 0 {
		return nil, nil
	}
	now := s.Now().Truncate(time.Minute)
	span := time.Duration(w.Days) * dayPeriod
	step := span / time.Duration(w.Results)

	out := make([]models.Sample, 0, w.Results)
	for i := w.Results - 1; i >= 0; i-- {
		t := now.Add(-time.Duration(i) * step)
		out = append(out, s.sampleAt(t, s.entryID(t)))
	}
	return out, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
