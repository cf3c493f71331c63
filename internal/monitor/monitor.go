// Package monitor implements the live thermal monitoring TUI using
// BubbleTea: one bordered panel per device with color-coded current
// values and the running min/max/crit columns.
package monitor

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/WYUnknown89/lx-thermals/internal/poll"
)

const (
	labelWidth = 24
	valueWidth = 8
)

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

type snapshotMsg poll.Snapshot

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the live monitor.
type Model struct {
	poller    *poll.Poller
	interval  time.Duration
	snap      poll.Snapshot
	width     int
	height    int
	scroll    int
	startTime time.Time
	paused    bool
}

// New creates the initial model around an already constructed poller.
func New(p *poll.Poller, interval time.Duration) Model {
	return Model{
		poller:    p,
		interval:  interval,
		startTime: time.Now(),
	}
}

// ── Commands ─────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) pollCmd() tea.Cmd {
	p := m.poller
	return func() tea.Msg {
		return snapshotMsg(p.Tick())
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pollCmd(), m.tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "home":
			m.scroll = 0
		case " ", "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.paused {
			return m, m.tickCmd()
		}
		return m, tea.Batch(m.pollCmd(), m.tickCmd())

	case snapshotMsg:
		m.snap = poll.Snapshot(msg)
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorDevice   = lipgloss.Color("147")
	colorName     = lipgloss.Color("243")
	colorLabel    = lipgloss.Color("252")
	colorValue    = lipgloss.Color("250")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorOk       = lipgloss.Color("78")
	colorWarn     = lipgloss.Color("220")
	colorCrit     = lipgloss.Color("196")
	colorPaused   = lipgloss.Color("196")
)

func severityColor(s poll.Severity) lipgloss.Color {
	switch s {
	case poll.Critical:
		return colorCrit
	case poll.Warm:
		return colorWarn
	default:
		return colorOk
	}
}

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	sections = append(sections, m.renderTitleBar(contentWidth))

	if len(m.snap.Rows) == 0 {
		waiting := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(contentWidth).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("Waiting for sensor data...")
		sections = append(sections, waiting)
	} else {
		panels := m.renderPanels(contentWidth)
		sections = append(sections, panels...)
	}

	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	visibleLines := m.height
	if visibleLines < 5 {
		visibleLines = 5
	}
	maxScroll := len(lines) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}

	start := m.scroll
	end := start + visibleLines
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("LX THERMALS")

	var statusParts []string

	uptime := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("up %s", fmtDuration(time.Since(m.startTime))))
	statusParts = append(statusParts, uptime)

	if !m.snap.Taken.IsZero() {
		ts := lipgloss.NewStyle().
			Foreground(colorDim).
			Render(m.snap.Taken.Format("15:04:05"))
		statusParts = append(statusParts, ts)
	}

	if m.paused {
		p := lipgloss.NewStyle().
			Foreground(colorPaused).
			Bold(true).
			Render("PAUSED")
		statusParts = append(statusParts, p)
	}

	sep := lipgloss.NewStyle().Foreground(colorDim).Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + filler + right)
}

func (m Model) renderPanels(totalWidth int) []string {
	groups := []poll.Group{poll.GroupCPU, poll.GroupGPU, poll.GroupStorage}

	var panels []string
	for _, g := range groups {
		rows := []string{m.renderPanelHeader(g), renderColumnHeader()}
		for _, row := range m.snap.Rows {
			if row.Group != g {
				continue
			}
			rows = append(rows, renderRow(row))
		}

		panelContent := lipgloss.JoinVertical(lipgloss.Left, rows...)
		panel := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(totalWidth).
			Render(panelContent)

		panels = append(panels, panel)
	}

	return panels
}

func (m Model) renderPanelHeader(g poll.Group) string {
	titleS := lipgloss.NewStyle().Bold(true).Foreground(colorDevice)
	nameS := lipgloss.NewStyle().Foreground(colorName)

	switch g {
	case poll.GroupCPU:
		return titleS.Render("CPU") + "  " + nameS.Render(m.snap.CPU.Name)
	case poll.GroupGPU:
		header := titleS.Render("GPU") + "  " + nameS.Render(m.snap.GPU.Name)
		if !m.snap.GPU.Resolved {
			header += lipgloss.NewStyle().Foreground(colorDim).Render("  (not in pci.ids)")
		}
		return header
	default:
		return titleS.Render("NVMe")
	}
}

func renderColumnHeader() string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	cols := dimS.Width(labelWidth).Render("Sensor")
	for _, h := range []string{"Current", "Min", "Max", "Crit"} {
		cols += " " + dimS.Width(valueWidth).Align(lipgloss.Right).Render(h)
	}
	return cols
}

func renderRow(row poll.Row) string {
	label := lipgloss.NewStyle().
		Foreground(colorLabel).
		Width(labelWidth).
		Render(truncate(row.Label, labelWidth))

	valS := lipgloss.NewStyle().
		Foreground(colorValue).
		Width(valueWidth).
		Align(lipgloss.Right)
	dashS := lipgloss.NewStyle().
		Foreground(colorDim).
		Width(valueWidth).
		Align(lipgloss.Right)

	s := row.Series
	if !s.HasData {
		cells := ""
		for i := 0; i < 4; i++ {
			cells += " " + dashS.Render("—")
		}
		return label + cells
	}

	current := valS.Render(row.Kind.Format(s.Current))
	if row.Kind == poll.KindTemp {
		current = valS.Foreground(severityColor(row.Severity)).Render(row.Kind.Format(s.Current))
	}

	crit := dashS.Render("—")
	if s.HasCrit {
		crit = valS.Foreground(colorCrit).Render(fmt.Sprintf("%.0f", s.Crit))
	}

	return label +
		" " + current +
		" " + valS.Render(row.Kind.Format(s.Min)) +
		" " + valS.Render(row.Kind.Format(s.Max)) +
		" " + crit
}

func (m Model) renderFooter(width int) string {
	okS := lipgloss.NewStyle().Foreground(colorOk).Render("██")
	warnS := lipgloss.NewStyle().Foreground(colorWarn).Render("██")
	critS := lipgloss.NewStyle().Foreground(colorCrit).Render("██")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	legend := okS + dimS.Render(" normal ") +
		warnS + dimS.Render(" warm ") +
		critS + dimS.Render(" crit")

	keys := dimS.Render("q") + lipgloss.NewStyle().Foreground(colorLabel).Render(":quit") +
		dimS.Render("  j/k") + lipgloss.NewStyle().Foreground(colorLabel).Render(":scroll") +
		dimS.Render("  p") + lipgloss.NewStyle().Foreground(colorLabel).Render(":pause")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + filler + keys)
}

func truncate(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-1] + "…"
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
