package sensor

import (
	"path/filepath"
)

// ReadCPUClock reports the mean current core frequency in GHz across all
// logical cores that expose cpufreq scaling. It reports false when none
// do.
func ReadCPUClock(topologyDir string) (float64, bool) {
	cores, _ := filepath.Glob(filepath.Join(topologyDir, "cpu[0-9]*"))

	var sum float64
	var n int
	for _, core := range cores {
		khz, ok := readInt(filepath.Join(core, "cpufreq", "scaling_cur_freq"))
		if !ok {
			continue
		}
		sum += float64(khz) / 1e6
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// GPUClocks holds the clock and fan values scanned from the GPU hwmon
// directories.
type GPUClocks struct {
	Core    float64 // MHz, highest non-zero frequency channel seen
	HasCore bool
	Mem     float64 // MHz, fixed freq2_input slot
	HasMem  bool
	Fan     int // RPM, fixed fan1_input slot
	HasFan  bool
}

// ReadGPUClocks scans each directory in order. The core clock is the
// maximum across every non-zero freq channel anywhere: amdgpu exposes one
// channel per clock domain, and an idle domain reports 0. Memory clock
// and fan speed live in fixed per-directory slots; when several
// directories expose them the last one scanned wins.
func ReadGPUClocks(dirs []string) GPUClocks {
	var out GPUClocks
	for _, dir := range dirs {
		freqs, _ := filepath.Glob(filepath.Join(dir, "freq*_input"))
		for _, f := range freqs {
			hz, ok := readInt(f)
			if !ok || hz == 0 {
				continue
			}
			mhz := float64(hz) / 1e6
			if !out.HasCore || mhz > out.Core {
				out.Core = mhz
				out.HasCore = true
			}
		}

		if hz, ok := readInt(filepath.Join(dir, "freq2_input")); ok {
			out.Mem = float64(hz) / 1e6
			out.HasMem = true
		}
		if rpm, ok := readInt(filepath.Join(dir, "fan1_input")); ok {
			out.Fan = int(rpm)
			out.HasFan = true
		}
	}
	return out
}
