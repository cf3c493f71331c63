// Package config holds the sensor path configuration for lx-thermals.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults match the machine the tool was written on: k10temp on hwmon4,
// amdgpu split across hwmon2/hwmon3, nvme on hwmon1.
const (
	DefaultCPUHwmon    = "/sys/class/hwmon/hwmon4"
	DefaultNVMeHwmon   = "/sys/class/hwmon/hwmon1"
	DefaultPCIIDs      = "/usr/share/misc/pci.ids"
	DefaultCPUInfo     = "/proc/cpuinfo"
	DefaultCPUTopology = "/sys/devices/system/cpu"
	DefaultDRMDir      = "/sys/class/drm"

	// DefaultPollIntervalMs is the poll period in milliseconds.
	DefaultPollIntervalMs = 1000
)

// DefaultGPUHwmons returns the default GPU monitoring directories.
func DefaultGPUHwmons() []string {
	return []string{
		"/sys/class/hwmon/hwmon2",
		"/sys/class/hwmon/hwmon3",
	}
}

// Config holds every path the poller reads from. All entries are fixed at
// startup; there is no re-discovery at runtime.
type Config struct {
	CPUHwmon       string   `json:"cpu_hwmon"`
	GPUHwmons      []string `json:"gpu_hwmons"`
	NVMeHwmon      string   `json:"nvme_hwmon"`
	PCIIDs         string   `json:"pci_ids"`
	CPUInfo        string   `json:"cpuinfo"`
	CPUTopology    string   `json:"cpu_topology"`
	DRMDir         string   `json:"drm_dir"`
	PollIntervalMs int      `json:"poll_interval_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CPUHwmon:       DefaultCPUHwmon,
		GPUHwmons:      DefaultGPUHwmons(),
		NVMeHwmon:      DefaultNVMeHwmon,
		PCIIDs:         DefaultPCIIDs,
		CPUInfo:        DefaultCPUInfo,
		CPUTopology:    DefaultCPUTopology,
		DRMDir:         DefaultDRMDir,
		PollIntervalMs: DefaultPollIntervalMs,
	}
}

// Load reads a JSON config file and overlays it on the defaults. An empty
// path returns the defaults unchanged. Fields left out of the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("cannot read config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	if len(cfg.GPUHwmons) == 0 {
		cfg.GPUHwmons = DefaultGPUHwmons()
	}
	if cfg.PollIntervalMs <= 0 {
		cfg.PollIntervalMs = DefaultPollIntervalMs
	}

	return cfg, nil
}

// Interval returns the poll period as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// String renders the paths for startup logging.
func (c Config) String() string {
	return fmt.Sprintf("Config{CPU: %s, GPU: %v, NVMe: %s, PCIIDs: %s, Interval: %dms}",
		c.CPUHwmon, c.GPUHwmons, c.NVMeHwmon, c.PCIIDs, c.PollIntervalMs)
}
