package models

import "time"

// ConnectionStatus reflects the outcome of the most recent poll cycle.
type ConnectionStatus string

const (
	StatusReconnecting ConnectionStatus = "reconnecting"
	StatusConnected    ConnectionStatus = "connected"
	StatusError        ConnectionStatus = "error"
)

// Snapshot is the read-only view of a monitored station.
type Snapshot struct {
	Status         ConnectionStatus `json:"status"`
	Current        *Sample          `json:"current,omitempty"`
	HistoryCount   int              `json:"history_count"`
	Range          TimeRange        `json:"range"`
	ActiveBreaches []BreachKey      `json:"active_breaches"`
	Thresholds     Thresholds       `json:"thresholds"`
	LastSync       time.Time        `json:"last_sync,omitempty"`
	LastError      string           `json:"last_error,omitempty"`
	Unacknowledged int              `json:"unacknowledged"`
}
