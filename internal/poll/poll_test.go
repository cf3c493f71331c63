package poll

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/WYUnknown89/lx-thermals/internal/config"
)

// fixture lays out a fake sysfs tree the poller can read.
type fixture struct {
	t    *testing.T
	root string
	cfg  config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	return &fixture{
		t:    t,
		root: root,
		cfg: config.Config{
			CPUHwmon:       filepath.Join(root, "cpu"),
			GPUHwmons:      []string{filepath.Join(root, "gpu0"), filepath.Join(root, "gpu1")},
			NVMeHwmon:      filepath.Join(root, "nvme"),
			PCIIDs:         filepath.Join(root, "pci.ids"),
			CPUInfo:        filepath.Join(root, "cpuinfo"),
			CPUTopology:    filepath.Join(root, "topology"),
			DRMDir:         filepath.Join(root, "drm"),
			PollIntervalMs: 1000,
		},
	}
}

func (f *fixture) write(rel, content string) {
	f.t.Helper()
	path := filepath.Join(f.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		f.t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		f.t.Fatalf("write %s: %v", rel, err)
	}
}

func (f *fixture) remove(rel string) {
	f.t.Helper()
	if err := os.RemoveAll(filepath.Join(f.root, rel)); err != nil {
		f.t.Fatalf("remove %s: %v", rel, err)
	}
}

// populate fills every source with plausible values.
func (f *fixture) populate() {
	f.write("cpuinfo", "model name\t: Test CPU 3000\n")

	f.write("cpu/temp1_input", "40500\n")
	f.write("cpu/temp1_label", "Tctl\n")
	f.write("cpu/temp1_crit", "95000\n")
	f.write("cpu/temp2_input", "38250\n")
	f.write("cpu/temp2_label", "Tccd1\n")

	f.write("topology/cpu0/cpufreq/scaling_cur_freq", "3500000\n")
	f.write("topology/cpu1/cpufreq/scaling_cur_freq", "4500000\n")

	f.write("gpu0/temp1_input", "52000\n")
	f.write("gpu0/temp1_label", "edge\n")
	f.write("gpu0/temp1_crit", "100000\n")
	f.write("gpu0/temp2_input", "64500\n")
	f.write("gpu0/temp2_label", "junction\n")
	f.write("gpu0/temp2_crit", "110000\n")
	f.write("gpu0/temp3_input", "58000\n")
	f.write("gpu0/temp3_label", "mem\n")
	f.write("gpu0/freq1_input", "2100000000\n")
	f.write("gpu0/freq2_input", "1000000000\n")
	f.write("gpu0/fan1_input", "1450\n")

	f.write("nvme/temp1_input", "41850\n")
	f.write("nvme/temp1_label", "Composite\n")
	f.write("nvme/temp1_crit", "84850\n")
	f.write("nvme/temp2_input", "50000\n")
	f.write("nvme/temp2_label", "Sensor 1\n")

	f.write("drm/card0/device/vendor", "0x1002\n")
	f.write("drm/card0/device/device", "0x73bf\n")
	f.write("pci.ids", "1002  AMD\n\t73bf  Navi 21\n")
}

func rowsByKey(snap Snapshot) map[string]Row {
	m := make(map[string]Row, len(snap.Rows))
	for _, row := range snap.Rows {
		m[row.Key] = row
	}
	return m
}

func TestTickSnapshot(t *testing.T) {
	f := newFixture(t)
	f.populate()

	p := New(f.cfg)

	cpu, gpu := p.Identities()
	if cpu.Name != "Test CPU 3000" || !cpu.Resolved {
		t.Errorf("cpu identity: got %+v", cpu)
	}
	if gpu.Name != "AMD Navi 21" || !gpu.Resolved {
		t.Errorf("gpu identity: got %+v", gpu)
	}

	snap := p.Tick()
	if snap.Taken.IsZero() {
		t.Error("snapshot should carry a timestamp")
	}
	if len(snap.Rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(snap.Rows))
	}

	want := map[string]float64{
		KeyCPUPackage: 40.5,
		KeyCPUDie:     38.25,
		KeyCPUClock:   4.0,
		KeyGPUTemp:    52.0,
		KeyGPUHotspot: 64.5,
		KeyGPUMemory:  58.0,
		KeyGPUClock:   2100.0,
		KeyGPUMemClk:  1000.0,
		KeyGPUFan:     1450.0,
		KeyNVMe:       41.85,
	}
	for _, row := range snap.Rows {
		wantV, ok := want[row.Key]
		if !ok {
			t.Errorf("unexpected row %s", row.Key)
			continue
		}
		if !row.Series.HasData {
			t.Errorf("%s: expected data", row.Key)
			continue
		}
		if row.Series.Current != wantV {
			t.Errorf("%s: got %f, want %f", row.Key, row.Series.Current, wantV)
		}
	}
}

func TestRowOrder(t *testing.T) {
	f := newFixture(t)
	p := New(f.cfg)
	snap := p.Tick()

	want := []string{
		KeyCPUPackage, KeyCPUDie, KeyCPUClock,
		KeyGPUTemp, KeyGPUHotspot, KeyGPUMemory,
		KeyGPUClock, KeyGPUMemClk, KeyGPUFan,
		KeyNVMe,
	}
	if len(snap.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(snap.Rows))
	}
	for i, key := range want {
		if snap.Rows[i].Key != key {
			t.Errorf("row %d: got %s, want %s", i, snap.Rows[i].Key, key)
		}
	}
}

func TestCritThresholds(t *testing.T) {
	f := newFixture(t)
	f.populate()

	rows := rowsByKey(New(f.cfg).Tick())

	if s := rows[KeyGPUTemp].Series; !s.HasCrit || s.Crit != 100.0 {
		t.Errorf("gpu temp crit: got %f (has=%v), want 100", s.Crit, s.HasCrit)
	}
	if s := rows[KeyGPUHotspot].Series; !s.HasCrit || s.Crit != 110.0 {
		t.Errorf("hotspot crit: got %f (has=%v), want 110", s.Crit, s.HasCrit)
	}
	if s := rows[KeyGPUMemory].Series; s.HasCrit {
		t.Error("mem channel has no crit file, none expected")
	}

	// CPU and NVMe thresholds are deliberately not surfaced.
	if s := rows[KeyCPUPackage].Series; s.HasCrit {
		t.Error("cpu package crit should be discarded")
	}
	if s := rows[KeyNVMe].Series; s.HasCrit {
		t.Error("nvme crit should be discarded")
	}
}

func TestTickSurvivesVanishingSources(t *testing.T) {
	f := newFixture(t)
	f.populate()
	p := New(f.cfg)

	first := rowsByKey(p.Tick())

	// The GPU disappears between ticks (driver unload, suspend) while the
	// CPU heats up.
	f.remove("gpu0")
	f.write("cpu/temp1_input", "45000\n")

	second := rowsByKey(p.Tick())

	if got := second[KeyCPUPackage].Series; got.Current != 45.0 || got.Max != 45.0 || got.Min != 40.5 {
		t.Errorf("cpu package after second tick: %+v", got)
	}

	// GPU aggregates keep their last state instead of resetting.
	if got, want := second[KeyGPUTemp].Series, first[KeyGPUTemp].Series; got != want {
		t.Errorf("gpu temp: got %+v, want unchanged %+v", got, want)
	}
	if !second[KeyGPUFan].Series.HasData {
		t.Error("fan series should keep its data")
	}
}

func TestTickAllSourcesAbsent(t *testing.T) {
	f := newFixture(t) // nothing populated
	p := New(f.cfg)

	cpu, gpu := p.Identities()
	if cpu.Name != "Unknown CPU" || gpu.Name != "Unknown GPU" {
		t.Errorf("identities: cpu=%q gpu=%q", cpu.Name, gpu.Name)
	}

	snap := p.Tick()
	if len(snap.Rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(snap.Rows))
	}
	for _, row := range snap.Rows {
		if row.Series.HasData {
			t.Errorf("%s: expected no data", row.Key)
		}
		if row.Severity != Normal {
			t.Errorf("%s: severity set without data", row.Key)
		}
	}
}

func TestSnapshotSeverity(t *testing.T) {
	f := newFixture(t)
	f.populate()
	f.write("gpu0/temp2_input", "86000\n")
	f.write("cpu/temp1_input", "81000\n")

	rows := rowsByKey(New(f.cfg).Tick())

	if got := rows[KeyGPUHotspot].Severity; got != Critical {
		t.Errorf("hotspot severity: got %v, want critical", got)
	}
	if got := rows[KeyCPUPackage].Severity; got != Warm {
		t.Errorf("cpu package severity: got %v, want warm", got)
	}
	if got := rows[KeyCPUDie].Severity; got != Normal {
		t.Errorf("cpu die severity: got %v, want normal", got)
	}
	// Clock rows never classify.
	if got := rows[KeyGPUClock].Severity; got != Normal {
		t.Errorf("gpu clock severity: got %v, want normal", got)
	}
}

func TestZeroClocksAreNotReadings(t *testing.T) {
	f := newFixture(t)
	f.populate()
	f.write("gpu0/freq1_input", "0\n")
	f.write("gpu0/freq2_input", "0\n")
	f.write("gpu0/fan1_input", "0\n")

	rows := rowsByKey(New(f.cfg).Tick())

	if rows[KeyGPUClock].Series.HasData {
		t.Error("idle core domains should produce no clock sample")
	}
	if rows[KeyGPUMemClk].Series.HasData {
		t.Error("a zero memory clock should produce no sample")
	}
	// A stopped fan is a real reading.
	if s := rows[KeyGPUFan].Series; !s.HasData || s.Current != 0 {
		t.Errorf("fan: got %+v, want a zero sample", s)
	}
}

func TestNVMeFirstChannelOnly(t *testing.T) {
	f := newFixture(t)
	f.populate()

	rows := rowsByKey(New(f.cfg).Tick())

	// temp2 (Sensor 1, 50.0) must not shadow the composite channel.
	if got := rows[KeyNVMe].Series.Current; got != 41.85 {
		t.Errorf("nvme: got %f, want 41.85", got)
	}
}

func TestKindFormat(t *testing.T) {
	tests := []struct {
		kind Kind
		v    float64
		want string
	}{
		{KindTemp, 52.0, "52.0"},
		{KindClockGHz, 4.0, "4.00"},
		{KindClockMHz, 2100.0, "2100"},
		{KindRPM, 1450.0, "1450"},
	}
	for _, tt := range tests {
		if got := tt.kind.Format(tt.v); got != tt.want {
			t.Errorf("Format(%v, %f) = %q, want %q", tt.kind, tt.v, got, tt.want)
		}
	}
}
