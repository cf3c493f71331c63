package sensor

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ReadTemps reads every labelled temperature channel under a hwmon
// directory. Channels come as indexed triples (tempN_input, tempN_label,
// tempN_crit); a channel without a readable label file is skipped, and a
// channel whose value does not parse is dropped on its own. A missing or
// unreadable directory yields no readings.
func ReadTemps(dir string) Readings {
	inputs, _ := filepath.Glob(filepath.Join(dir, "temp*_input"))
	sort.Slice(inputs, func(i, j int) bool {
		return channelIndex(inputs[i]) < channelIndex(inputs[j])
	})

	var readings Readings
	for _, input := range inputs {
		idx := channelName(input)

		label, ok := readString(filepath.Join(dir, "temp"+idx+"_label"))
		if !ok {
			continue
		}
		milli, ok := readInt(input)
		if !ok {
			continue
		}

		r := Reading{Label: label, Value: float64(milli) / 1000}
		if crit, ok := readInt(filepath.Join(dir, "temp"+idx+"_crit")); ok {
			r.Crit = float64(crit) / 1000
			r.HasCrit = true
		}
		readings = append(readings, r)
	}
	return readings
}

// channelName extracts N from a .../tempN_input path.
func channelName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(strings.TrimPrefix(base, "temp"), "_input")
}

// channelIndex is channelName as a number; anything non-numeric sorts
// after the real channels.
func channelIndex(path string) int {
	n, err := strconv.Atoi(channelName(path))
	if err != nil {
		return 1 << 30
	}
	return n
}
