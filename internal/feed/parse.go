package feed

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"envmonitor/internal/models"
)

// rawFeed is one entry of a ThingSpeak channel feed.
type rawFeed struct {
	CreatedAt string `json:"created_at"`
	EntryID   int    `json:"entry_id"`
	Field1    string `json:"field1"` // temperature
	Field2    string `json:"field2"` // humidity
}

type channelResponse struct {
	Feeds []rawFeed `json:"feeds"`
}

// numericPrefix matches the leading decimal number of a field, so "23.5C"
// reads as 23.5. Inf and NaN spellings never match.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseField returns nil when the value does not start with a finite number.
func parseField(s string) *float64 {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// toSample converts a raw entry. An unparseable timestamp leaves the zero time.
func toSample(f rawFeed) models.Sample {
	s := models.Sample{
		EntryID:     f.EntryID,
		Temperature: parseField(f.Field1),
		Humidity:    parseField(f.Field2),
	}
	if ts, err := time.Parse(time.RFC3339, strings.TrimSpace(f.CreatedAt)); err == nil {
		s.Timestamp = ts.UTC()
	}
	return s
}
