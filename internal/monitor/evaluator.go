package monitor

import (
	"strconv"

	"envmonitor/internal/models"
)

// Flags holds the per-key outcome of one evaluation.
type Flags map[models.BreachKey]bool

// condition describes one boundary check and how its incident reads.
type condition struct {
	key      models.BreachKey
	severity models.Severity
	title    string
	field    func(models.Sample) *float64
	bound    func(models.Thresholds) float64
	breached func(value, bound float64) bool
	describe func(value float64) string
}

func temperature(s models.Sample) *float64 { return s.Temperature }
func humidity(s models.Sample) *float64    { return s.Humidity }

func above(v, bound float64) bool { return v > bound }
func below(v, bound float64) bool { return v < bound }

func formatValue(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

var conditions = []condition{
	{
		key:      models.BreachTempHigh,
		severity: models.SeverityDanger,
		title:    "Temp High",
		field:    temperature,
		bound:    func(t models.Thresholds) float64 { return t.TempHigh },
		breached: above,
		describe: func(v float64) string { return "High breach: " + formatValue(v) + "°C" },
	},
	{
		key:      models.BreachTempLow,
		severity: models.SeverityWarning,
		title:    "Temp Low",
		field:    temperature,
		bound:    func(t models.Thresholds) float64 { return t.TempLow },
		breached: below,
		describe: func(v float64) string { return "Low breach: " + formatValue(v) + "°C" },
	},
	{
		key:      models.BreachHumHigh,
		severity: models.SeverityDanger,
		title:    "Hum High",
		field:    humidity,
		bound:    func(t models.Thresholds) float64 { return t.HumHigh },
		breached: above,
		describe: func(v float64) string { return "High humidity: " + formatValue(v) + "%" },
	},
	{
		key:      models.BreachHumLow,
		severity: models.SeverityWarning,
		title:    "Hum Low",
		field:    humidity,
		bound:    func(t models.Thresholds) float64 { return t.HumLow },
		breached: below,
		describe: func(v float64) string { return "Low humidity: " + formatValue(v) + "%" },
	},
}

func conditionFor(key models.BreachKey) (condition, bool) {
	for _, c := range conditions {
		if c.key == key {
			return c, true
		}
	}
	return condition{}, false
}

// Evaluate reports which boundary conditions the sample violates. An
// indeterminate field yields false for both of its conditions. Inverted
// thresholds are applied as given, so High and Low may both be true.
func Evaluate(s models.Sample, t models.Thresholds) Flags {
	flags := make(Flags, len(conditions))
	for _, c := range conditions {
		v := c.field(s)
		flags[c.key] = v != nil && c.breached(*v, c.bound(t))
	}
	return flags
}
