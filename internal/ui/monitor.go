package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runlevel5/ptop/internal/config"
	"github.com/runlevel5/ptop/internal/killer"
	"github.com/runlevel5/ptop/internal/process"
	"github.com/runlevel5/ptop/internal/table"
	"github.com/runlevel5/ptop/internal/view"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilter
	modeSortMenu
	modeSignalMenu
	modeUserMenu
	modeHelp
)

type Options struct {
	Delay      time.Duration
	Iterations int
	Mouse      bool
	ASCII      bool
	ReadOnly   bool
	FullCmd    bool
}

type tickMsg time.Time

type scanMsg struct {
	snap *process.Snapshot
	err  error
}

type headerStats struct {
	cpuPercent float64
	memUsed    uint64
	memTotal   uint64
	load1      float64
	load5      float64
	load15     float64
	uptime     time.Duration
	tasks      int
	threads    int
	running    int
}

type Model struct {
	provider process.Provider
	kill     *killer.Killer
	cfg      *config.Config
	tbl      *table.Table
	cache    view.ListCache
	sched    scheduler
	settings view.Settings
	opts     Options

	width  int
	height int

	nodes  []table.DisplayNode
	cursor int
	scroll int
	selPid int32

	mode       mode
	input      textinput.Model
	menuTitle  string
	menuItems  []string
	menuCursor int

	pidQuery string

	stats       headerStats
	status      string
	statusUntil time.Time

	paused       bool
	allCollapsed bool
	scans        int
	quitting     bool
}

func newModel(provider process.Provider, cfg *config.Config, settings view.Settings, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 128
	return Model{
		provider: provider,
		kill:     killer.New(provider),
		cfg:      cfg,
		tbl:      table.New(),
		settings: settings,
		opts:     opts,
		input:    ti,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.scanCmd(), tick(m.opts.Delay))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) scanCmd() tea.Cmd {
	provider := m.provider
	opts := process.ScanOptions{HideKernelThreads: m.settings.HideKernelThreads}
	return func() tea.Msg {
		snap, err := provider.Scan(opts)
		return scanMsg{snap: snap, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sched.MarkRedraw()

	case tickMsg:
		cmds = append(cmds, tick(m.opts.Delay))
		if !m.paused {
			cmds = append(cmds, m.scanCmd())
		}

	case scanMsg:
		cmd := m.applyScan(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		if m.opts.Mouse && m.mode == modeNormal {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.moveCursor(-3)
			case tea.MouseButtonWheelDown:
				m.moveCursor(3)
			}
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		m.sched.KeyPressed()
		var cmd tea.Cmd
		switch m.mode {
		case modeNormal:
			cmd = m.handleNormalKey(msg)
		case modeSearch:
			cmd = m.handleSearchKey(msg)
		case modeFilter:
			cmd = m.handleFilterKey(msg)
		case modeSortMenu, modeSignalMenu, modeUserMenu:
			m.handleMenuKey(msg)
		case modeHelp:
			m.mode = modeNormal
		}
		if m.quitting {
			return m, tea.Quit
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if m.sched.ConsumeRedraw() {
		m.refresh()
	}
	return m, tea.Batch(cmds...)
}

// applyScan merges a snapshot into the table, deciding up front whether
// this cycle may re-sort. The deferral counter only advances on scan
// cycles, so rapid key presses cannot starve sorting forever.
func (m *Model) applyScan(msg scanMsg) tea.Cmd {
	if msg.err != nil {
		m.setStatus("scan failed: " + msg.err.Error())
		return nil
	}

	sortNow := m.sched.ShouldSortNow(m.settings.TreeView)
	m.sched.TickIdle()

	rep := m.tbl.Merge(msg.snap)
	if sortNow {
		m.tbl.Sort(m.settings.SortKey, m.settings.SortDesc)
	}
	if len(rep.Duplicates) > 0 {
		m.setStatus(fmt.Sprintf("snapshot carried %d duplicate pid(s)", len(rep.Duplicates)))
	}

	tasks, threads, running := m.tbl.Counts()
	m.stats = headerStats{
		cpuPercent: msg.snap.CPUPercent,
		memUsed:    msg.snap.MemUsed,
		memTotal:   msg.snap.MemTotal,
		load1:      msg.snap.Load1,
		load5:      msg.snap.Load5,
		load15:     msg.snap.Load15,
		uptime:     msg.snap.Uptime,
		tasks:      tasks,
		threads:    threads,
		running:    running,
	}

	m.sched.MarkRedraw()

	m.scans++
	if m.opts.Iterations > 0 && m.scans >= m.opts.Iterations {
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// refresh rebuilds the visible list and reconciles the selection: keep
// the selected pid if it is still visible, otherwise fall back to the
// old index clamped into range.
func (m *Model) refresh() {
	prevIdx := m.cursor
	prevPid := m.selPid
	m.nodes = m.cache.Get(m.tbl, m.settings)

	if m.settings.FollowPid != 0 {
		if idx, ok := indexOfPid(m.nodes, m.settings.FollowPid); ok {
			m.moveTo(idx)
			return
		}
		m.settings.FollowPid = 0
		m.setStatus("followed process exited")
	}

	if idx, ok := indexOfPid(m.nodes, prevPid); ok {
		m.cursor = idx
	} else {
		m.cursor = clamp(prevIdx, 0, len(m.nodes)-1)
	}
	m.clampScroll()
	m.syncSelection()
}

func indexOfPid(nodes []table.DisplayNode, pid int32) (int, bool) {
	for i, n := range nodes {
		if n.Pid == pid {
			return i, true
		}
	}
	return 0, false
}

func (m *Model) moveCursor(delta int) {
	m.moveTo(m.cursor + delta)
}

func (m *Model) moveTo(idx int) {
	m.cursor = clamp(idx, 0, len(m.nodes)-1)
	m.clampScroll()
	m.syncSelection()
}

func (m *Model) syncSelection() {
	if m.cursor >= 0 && m.cursor < len(m.nodes) {
		m.selPid = m.nodes[m.cursor].Pid
	} else {
		m.selPid = 0
	}
}

func (m *Model) clampScroll() {
	body := m.bodyHeight()
	maxScroll := max(0, len(m.nodes)-body)
	m.scroll = clamp(m.scroll, 0, maxScroll)
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+body {
		m.scroll = m.cursor - body + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m Model) bodyHeight() int {
	return max(1, m.height-4)
}

func (m Model) selectedRecord() (*process.Record, bool) {
	if m.selPid == 0 {
		return nil, false
	}
	return m.tbl.Get(m.selPid)
}

// actionTargets picks the pids a signal or renice applies to: every
// tagged process if any are tagged, otherwise the selection.
func (m Model) actionTargets() []int32 {
	if tagged := m.tbl.Tagged(); len(tagged) > 0 {
		return tagged
	}
	if m.selPid != 0 {
		return []int32{m.selPid}
	}
	return nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = time.Now().Add(4 * time.Second)
}

func (m *Model) setSortKey(key table.Key) {
	m.settings.SortKey = key
	m.settings.SortDesc = table.DefaultDescending(key)
	m.applySortNow()
}

// applySortNow is the explicit-sort path: deferral never delays a sort
// the user asked for directly.
func (m *Model) applySortNow() {
	m.tbl.Sort(m.settings.SortKey, m.settings.SortDesc)
	m.cache.Invalidate()
	m.sched.MarkRedraw()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run starts the interactive monitor and blocks until the user quits.
func Run(provider process.Provider, cfg *config.Config, settings view.Settings, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(newModel(provider, cfg, settings, opts), progOpts...)
	_, err := p.Run()
	return err
}
