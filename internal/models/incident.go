package models

import "time"

// BreachKey identifies one boundary condition.
type BreachKey string

const (
	BreachTempHigh BreachKey = "TEMP_HIGH"
	BreachTempLow  BreachKey = "TEMP_LOW"
	BreachHumHigh  BreachKey = "HUM_HIGH"
	BreachHumLow   BreachKey = "HUM_LOW"
)

// BreachKeys lists every condition in evaluation order.
var BreachKeys = []BreachKey{BreachTempHigh, BreachTempLow, BreachHumHigh, BreachHumLow}

type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
)

type IncidentStatus string

const (
	StatusActive       IncidentStatus = "active"
	StatusAcknowledged IncidentStatus = "acknowledged"
)

// Incident records one entering edge of a BreachKey.
type Incident struct {
	ID          string         `json:"id"`
	Key         BreachKey      `json:"key"`
	Severity    Severity       `json:"severity"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Value       float64        `json:"value"`
	Threshold   float64        `json:"threshold"`
	CreatedAt   time.Time      `json:"created_at"`
	Status      IncidentStatus `json:"status"`
}
