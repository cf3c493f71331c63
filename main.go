// Command lx-thermals shows live temperatures, clocks and fan speed for
// the CPU, GPU and NVMe drive of the desktop it was built for.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/WYUnknown89/lx-thermals/internal/config"
	"github.com/WYUnknown89/lx-thermals/internal/monitor"
	"github.com/WYUnknown89/lx-thermals/internal/poll"
)

const (
	appName    = "LX Thermals"
	appVersion = "1.0.0"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file (built-in defaults when empty)")
	interval := flag.Duration("interval", 0, "poll interval override, e.g. 500ms")
	once := flag.Bool("once", false, "poll a single time, print the table and exit")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("%s %s\n", appName, appVersion)
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if *interval > 0 {
		cfg.PollIntervalMs = int(interval.Milliseconds())
	}

	logger.Info("starting", "version", appVersion, "config", cfg.String())

	p := poll.New(cfg)
	cpu, gpu := p.Identities()
	logger.Info("devices", "cpu", cpu.Name, "gpu", gpu.Name, "gpu_resolved", gpu.Resolved)

	if *once {
		printSnapshot(p.Tick())
		return
	}

	prog := tea.NewProgram(monitor.New(p, cfg.Interval()), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		logger.Error("monitor", "error", err)
		os.Exit(1)
	}
}

// printSnapshot writes one snapshot as a plain table, for scripts and
// terminals where the live view is unwanted.
func printSnapshot(snap poll.Snapshot) {
	headings := map[poll.Group]string{
		poll.GroupCPU:     "CPU  " + snap.CPU.Name,
		poll.GroupGPU:     "GPU  " + snap.GPU.Name,
		poll.GroupStorage: "NVMe",
	}

	last := poll.Group(-1)
	for _, row := range snap.Rows {
		if row.Group != last {
			fmt.Printf("%s\n", headings[row.Group])
			fmt.Printf("  %-24s %8s %8s %8s %8s  %s\n", "Sensor", "Current", "Min", "Max", "Crit", "State")
			last = row.Group
		}
		fmt.Printf("  %-24s %8s %8s %8s %8s  %s\n",
			row.Label,
			cell(row, row.Series.Current),
			cell(row, row.Series.Min),
			cell(row, row.Series.Max),
			critCell(row),
			stateCell(row),
		)
	}
}

func cell(row poll.Row, v float64) string {
	if !row.Series.HasData {
		return "-"
	}
	return row.Kind.Format(v)
}

func critCell(row poll.Row) string {
	if !row.Series.HasCrit {
		return "-"
	}
	return fmt.Sprintf("%.0f", row.Series.Crit)
}

func stateCell(row poll.Row) string {
	if row.Kind != poll.KindTemp || !row.Series.HasData {
		return ""
	}
	return row.Severity.String()
}
