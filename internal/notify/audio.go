package notify

import (
	"context"

	"envmonitor/internal/monitor"
)

// Cue is the tone clients play for an incident.
type Cue struct {
	IncidentID  string  `json:"incident_id"`
	FrequencyHz float64 `json:"frequency_hz"`
	DurationMs  int     `json:"duration_ms"`
	Gain        float64 `json:"gain"`
}

const (
	MessageCue = "cue"

	cueFrequencyHz = 880
	cueDurationMs  = 300
	cueGain        = 0.1
)

// AudioCue asks connected clients to play a short alert tone.
type AudioCue struct {
	out Broadcaster
}

func NewAudioCue(out Broadcaster) *AudioCue {
	return &AudioCue{out: out}
}

func (a *AudioCue) Notify(ctx context.Context, n monitor.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.out == nil {
		return ErrNoListeners
	}
	delivered := a.out.Broadcast(MessageCue, Cue{
		IncidentID:  n.IncidentID,
		FrequencyHz: cueFrequencyHz,
		DurationMs:  cueDurationMs,
		Gain:        cueGain,
	})
	if delivered == 0 {
		return ErrNoListeners
	}
	return nil
}
