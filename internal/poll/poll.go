// Package poll drives the acquisition cycle: one tick reads every
// configured sensor source, folds the values into the running aggregates
// and assembles a snapshot for presentation. Every source is allowed to
// be absent; a tick never fails.
package poll

import (
	"fmt"
	"sync"
	"time"

	"github.com/WYUnknown89/lx-thermals/internal/config"
	"github.com/WYUnknown89/lx-thermals/internal/sensor"
	"github.com/WYUnknown89/lx-thermals/internal/series"
)

// Group places a metric under one of the top-level device headings.
type Group int

const (
	GroupCPU Group = iota
	GroupGPU
	GroupStorage
)

// Kind tells presentation how to format a metric's values.
type Kind int

const (
	KindTemp     Kind = iota // Celsius, one decimal
	KindClockGHz             // GHz, two decimals
	KindClockMHz             // MHz, whole number
	KindRPM                  // fan speed, whole number
)

// Format renders a value of this kind the way the display expects.
func (k Kind) Format(v float64) string {
	switch k {
	case KindClockGHz:
		return fmt.Sprintf("%.2f", v)
	case KindClockMHz, KindRPM:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

// Metric keys. The set is fixed at build time; nothing is discovered.
const (
	KeyCPUPackage = "cpu.package"
	KeyCPUDie     = "cpu.die"
	KeyCPUClock   = "cpu.clock"
	KeyGPUTemp    = "gpu.temp"
	KeyGPUHotspot = "gpu.hotspot"
	KeyGPUMemory  = "gpu.memory"
	KeyGPUClock   = "gpu.clock"
	KeyGPUMemClk  = "gpu.memclock"
	KeyGPUFan     = "gpu.fan"
	KeyNVMe       = "nvme.composite"
)

// Channel labels reported by the k10temp and amdgpu drivers.
const (
	labelTctl     = "Tctl"
	labelTccd1    = "Tccd1"
	labelEdge     = "edge"
	labelJunction = "junction"
	labelMem      = "mem"
)

// metricDef pins one snapshot row: key, display label, grouping and
// formatting kind. Table order is display order.
type metricDef struct {
	key   string
	label string
	group Group
	kind  Kind
}

var metricTable = []metricDef{
	{KeyCPUPackage, "CPU Package", GroupCPU, KindTemp},
	{KeyCPUDie, "CPU Die", GroupCPU, KindTemp},
	{KeyCPUClock, "CPU Clock (GHz)", GroupCPU, KindClockGHz},
	{KeyGPUTemp, "GPU Temp", GroupGPU, KindTemp},
	{KeyGPUHotspot, "GPU Hotspot", GroupGPU, KindTemp},
	{KeyGPUMemory, "GPU Memory", GroupGPU, KindTemp},
	{KeyGPUClock, "GPU Core Clock (MHz)", GroupGPU, KindClockMHz},
	{KeyGPUMemClk, "GPU Memory Clock (MHz)", GroupGPU, KindClockMHz},
	{KeyGPUFan, "GPU Fan Speed (RPM)", GroupGPU, KindRPM},
	{KeyNVMe, "NVMe Composite", GroupStorage, KindTemp},
}

// Row is one snapshot line: a metric and its running aggregate. Rows for
// metrics that never reported carry a zero Series, so presentation can
// show a placeholder instead of dropping the line.
type Row struct {
	Key      string
	Label    string
	Group    Group
	Kind     Kind
	Series   series.Series
	Severity Severity // set for temperature rows with data
}

// Snapshot is the complete output of one tick: every metric in display
// order plus the device identities resolved at startup. It is a plain
// value, safe to hold across later ticks.
type Snapshot struct {
	Taken time.Time
	CPU   sensor.Identity
	GPU   sensor.Identity
	Rows  []Row
}

// Poller runs the acquisition cycle. Sensor paths are fixed at
// construction and identities are resolved once, never refreshed.
type Poller struct {
	mu      sync.Mutex
	cfg     config.Config
	tracker *series.Tracker
	cpu     sensor.Identity
	gpu     sensor.Identity
}

// New builds a poller for the given configuration and resolves both
// device identities up front. Resolution problems are absorbed into
// fallback names; construction cannot fail.
func New(cfg config.Config) *Poller {
	return &Poller{
		cfg:     cfg,
		tracker: series.NewTracker(),
		cpu:     sensor.ResolveCPU(cfg.CPUInfo),
		gpu:     sensor.ResolveGPU(cfg.DRMDir, cfg.PCIIDs),
	}
}

// Identities returns the device names resolved at construction.
func (p *Poller) Identities() (cpu, gpu sensor.Identity) {
	return p.cpu, p.gpu
}

// Tick runs one acquisition cycle and returns the snapshot. Ticks
// serialize on the poller's lock: a slow cycle delays the next one
// rather than overlapping it. A tick where every source is absent still
// returns a valid snapshot, the aggregates simply keep their old values.
func (p *Poller) Tick() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.collectCPU()
	p.collectGPU()
	p.collectStorage()

	return p.snapshot()
}

func (p *Poller) collectCPU() {
	temps := sensor.ReadTemps(p.cfg.CPUHwmon)
	// k10temp's crit values are not meaningful here, so only the
	// temperatures are tracked.
	if r, ok := temps.Find(labelTctl); ok {
		p.tracker.Update(KeyCPUPackage, r.Value)
	}
	if r, ok := temps.Find(labelTccd1); ok {
		p.tracker.Update(KeyCPUDie, r.Value)
	}

	if ghz, ok := sensor.ReadCPUClock(p.cfg.CPUTopology); ok && ghz > 0 {
		p.tracker.Update(KeyCPUClock, ghz)
	}
}

func (p *Poller) collectGPU() {
	for _, dir := range p.cfg.GPUHwmons {
		temps := sensor.ReadTemps(dir)
		p.updateTemp(KeyGPUTemp, temps, labelEdge)
		p.updateTemp(KeyGPUHotspot, temps, labelJunction)
		p.updateTemp(KeyGPUMemory, temps, labelMem)
	}

	clocks := sensor.ReadGPUClocks(p.cfg.GPUHwmons)
	// A clock of 0 means the domain is not reporting, not that it runs
	// at zero. A stopped fan, on the other hand, is a real reading.
	if clocks.HasCore && clocks.Core > 0 {
		p.tracker.Update(KeyGPUClock, clocks.Core)
	}
	if clocks.HasMem && clocks.Mem > 0 {
		p.tracker.Update(KeyGPUMemClk, clocks.Mem)
	}
	if clocks.HasFan {
		p.tracker.Update(KeyGPUFan, float64(clocks.Fan))
	}
}

// updateTemp feeds one labelled GPU channel into the tracker, critical
// threshold included when the channel reports a meaningful one.
func (p *Poller) updateTemp(key string, temps sensor.Readings, label string) {
	r, ok := temps.Find(label)
	if !ok {
		return
	}
	p.tracker.Update(key, r.Value)
	if r.HasCrit && r.Crit != 0 {
		p.tracker.SetCrit(key, r.Crit)
	}
}

func (p *Poller) collectStorage() {
	temps := sensor.ReadTemps(p.cfg.NVMeHwmon)
	if len(temps) == 0 {
		return
	}
	// Only the drive's first channel (Composite) matters; its crit is
	// deliberately discarded.
	p.tracker.Update(KeyNVMe, temps[0].Value)
}

func (p *Poller) snapshot() Snapshot {
	snap := Snapshot{
		Taken: time.Now(),
		CPU:   p.cpu,
		GPU:   p.gpu,
		Rows:  make([]Row, 0, len(metricTable)),
	}
	for _, def := range metricTable {
		row := Row{
			Key:    def.key,
			Label:  def.label,
			Group:  def.group,
			Kind:   def.kind,
			Series: p.tracker.Get(def.key),
		}
		if def.kind == KindTemp && row.Series.HasData {
			row.Severity = Classify(row.Series.Current)
		}
		snap.Rows = append(snap.Rows, row)
	}
	return snap
}
