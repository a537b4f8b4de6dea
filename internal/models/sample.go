package models

import "time"

// Sample is one telemetry reading. A nil field is indeterminate: the feed
// delivered something that is not a number.
type Sample struct {
	EntryID     int       `json:"entry_id"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature *float64  `json:"temperature"` // °C
	Humidity    *float64  `json:"humidity"`    // %
}

// TimeRange selects the history window shown next to the live sample.
type TimeRange string

const (
	Range24h TimeRange = "24h"
	Range7d  TimeRange = "7d"
	Range30d TimeRange = "30d"
)

// HistoryWindow bounds a history request: at most Results points from the last Days days.
type HistoryWindow struct {
	Results int `json:"results"`
	Days    int `json:"days"`
}

var historyWindows = map[TimeRange]HistoryWindow{
	Range24h: {Results: 144, Days: 1}, // ~1 reading per 10 min
	Range7d:  {Results: 500, Days: 7},
	Range30d: {Results: 1000, Days: 30},
}

// Window returns the request bounds for r. ok is false for unknown ranges.
func (r TimeRange) Window() (HistoryWindow, bool) {
	w, ok := historyWindows[r]
	return w, ok
}
