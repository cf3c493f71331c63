package poll

// Severity tiers for temperature readings. The cutoffs are global and do
// not depend on the per-channel critical thresholds some sensors report.
type Severity int

const (
	Normal Severity = iota
	Warm
	Critical
)

// Temperature cutoffs in Celsius.
const (
	warmThreshold     = 80
	criticalThreshold = 85
)

// Classify maps a temperature to its severity tier.
func Classify(temp float64) Severity {
	switch {
	case temp >= criticalThreshold:
		return Critical
	case temp >= warmThreshold:
		return Warm
	default:
		return Normal
	}
}

func (s Severity) String() string {
	switch s {
	case Warm:
		return "warm"
	case Critical:
		return "critical"
	default:
		return "normal"
	}
}
