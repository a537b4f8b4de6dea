package models

import "time"

// Thresholds are the four safety bounds. High < Low is legal and is
// evaluated literally.
type Thresholds struct {
	TempHigh  float64   `json:"temp_high"`
	TempLow   float64   `json:"temp_low"`
	HumHigh   float64   `json:"hum_high"`
	HumLow    float64   `json:"hum_low"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// DefaultThresholds is used until a stored configuration is loaded.
var DefaultThresholds = Thresholds{
	TempHigh: 30,
	TempLow:  15,
	HumHigh:  75,
	HumLow:   30,
}

// Preferences are the operator's local notification toggles.
type Preferences struct {
	SoundEnabled         bool `json:"sound_enabled"`
	NotificationsEnabled bool `json:"notifications_enabled"`
}
