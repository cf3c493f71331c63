// Package sensor reads temperatures, clocks and fan speeds from fixed
// sysfs locations and resolves the names of the devices behind them.
// Absent hardware is a normal condition everywhere in this package:
// missing directories, channels and files simply produce no readings.
package sensor

import (
	"os"
	"strconv"
	"strings"
)

// Reading is a single temperature channel observation.
type Reading struct {
	Label   string  // e.g. "Tctl", "edge", "Composite"
	Value   float64 // current temperature in Celsius
	Crit    float64 // critical threshold (0 if not available)
	HasCrit bool
}

// Readings holds the channels of one hwmon directory in channel-index
// order, so "the first channel" is well defined.
type Readings []Reading

// Find returns the reading with the given label.
func (rs Readings) Find(label string) (Reading, bool) {
	for _, r := range rs {
		if r.Label == label {
			return r, true
		}
	}
	return Reading{}, false
}

// readString returns the trimmed content of a one-line sysfs file.
func readString(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// readInt parses a sysfs file holding a single integer.
func readInt(path string) (int64, bool) {
	s, ok := readString(path)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
