package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/runlevel5/ptop/internal/process"
	"github.com/runlevel5/ptop/internal/table"
)

type column struct {
	title string
	key   table.Key
	width int
	right bool
}

var columns = []column{
	{"PID", table.KeyPid, 7, true},
	{"USER", table.KeyUser, 9, false},
	{"PRI", table.KeyPriority, 3, true},
	{"NI", table.KeyNice, 3, true},
	{"VIRT", table.KeyVirt, 6, true},
	{"RES", table.KeyRes, 6, true},
	{"S", table.KeyState, 1, false},
	{"CPU%", table.KeyCPU, 5, true},
	{"MEM%", table.KeyMem, 5, true},
	{"TIME+", table.KeyTime, 9, true},
}

// fixedWidth is the row prefix ahead of the command column: the fixed
// columns plus one separating space each.
const fixedWidth = 7 + 9 + 3 + 3 + 6 + 6 + 1 + 5 + 5 + 9 + 10

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderColumns())
	b.WriteString("\n")
	switch m.mode {
	case modeSortMenu, modeSignalMenu, modeUserMenu:
		b.WriteString(m.renderMenu())
	case modeHelp:
		b.WriteString(m.renderHelp())
	default:
		b.WriteString(m.renderRows())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	st := m.stats

	cpuText := fmt.Sprintf("%.1f%%", st.cpuPercent)
	memText := formatBytes(st.memUsed) + "/" + formatBytes(st.memTotal)
	memFrac := 0.0
	if st.memTotal > 0 {
		memFrac = float64(st.memUsed) / float64(st.memTotal)
	}

	line1 := titleStyle.Render("CPU") + meter(st.cpuPercent/100, cpuText, 28) +
		"  " + fmt.Sprintf("Tasks: %d, %d thr; %d running", st.tasks, st.threads, st.running)
	if m.paused {
		line1 += "  " + pausedStyle.Render("[PAUSED]")
	}

	line2 := titleStyle.Render("Mem") + meter(memFrac, memText, 28) +
		"  " + fmt.Sprintf("Load average: %.2f %.2f %.2f", st.load1, st.load5, st.load15) +
		"  " + meterStyle.Render("Uptime: "+formatUptime(st.uptime))

	return line1 + "\n" + line2
}

// meter draws a bracket gauge with the reading overlaid on its right
// edge, htop style.
func meter(frac float64, text string, width int) string {
	inner := max(6, width-2)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(inner))
	bar := strings.Repeat("|", filled) + strings.Repeat(" ", inner-filled)
	if len(text) < inner {
		bar = bar[:inner-len(text)] + text
	}
	return "[" + bar + "]"
}

func (m Model) renderColumns() string {
	var b strings.Builder
	for _, col := range columns {
		title := col.title
		if col.right {
			title = fmt.Sprintf("%*s", col.width, title)
		} else {
			title = fmt.Sprintf("%-*s", col.width, title)
		}
		if col.key == m.settings.SortKey {
			b.WriteString(sortColStyle.Render(title))
		} else {
			b.WriteString(columnStyle.Render(title))
		}
		b.WriteString(columnStyle.Render(" "))
	}
	rest := max(0, m.width-fixedWidth)
	cmdTitle := fmt.Sprintf("%-*s", rest, "Command")
	if m.settings.SortKey == table.KeyCommand {
		b.WriteString(sortColStyle.Render(cmdTitle))
	} else {
		b.WriteString(columnStyle.Render(cmdTitle))
	}
	return b.String()
}

func (m Model) renderRows() string {
	body := m.bodyHeight()
	lines := make([]string, 0, body)
	for i := m.scroll; i < len(m.nodes) && len(lines) < body; i++ {
		lines = append(lines, m.renderRow(m.nodes[i], i == m.cursor))
	}
	return m.padBody(lines)
}

func (m Model) renderRow(node table.DisplayNode, selected bool) string {
	rec, ok := m.tbl.Get(node.Pid)
	if !ok {
		return ""
	}

	cmd := rec.Name
	if m.opts.FullCmd {
		cmd = rec.CommandText()
	}
	if m.settings.TreeView && !m.settings.Narrowed() {
		cmd = m.treePrefix(node, rec) + cmd
	}
	cmdWidth := max(4, m.width-fixedWidth)

	line := fmt.Sprintf("%7d %-9s %3d %3d %6s %6s %c %5s %5s %9s %s",
		rec.Pid,
		truncate(rec.User, 9),
		rec.Priority,
		rec.Nice,
		formatBytes(rec.VirtBytes),
		formatBytes(rec.ResBytes),
		rec.State,
		formatPercent(rec.CPUPercent),
		formatPercent(rec.MemPercent),
		formatCPUTime(rec.CPUTime),
		truncate(cmd, cmdWidth),
	)

	switch {
	case selected:
		return selectedStyle.Render(fmt.Sprintf("%-*s", m.width, line))
	case rec.Tagged:
		return taggedStyle.Render(line)
	default:
		return line
	}
}

func (m Model) treePrefix(node table.DisplayNode, rec *process.Record) string {
	var p string
	if node.Depth > 0 {
		branch := "└─ "
		if m.opts.ASCII {
			branch = "`- "
		}
		p = strings.Repeat("   ", node.Depth-1) + branch
	}
	if node.HasChildren && rec.Collapsed {
		p += "+ "
	}
	return p
}

func (m Model) renderMenu() string {
	visible := max(1, m.bodyHeight()-4)
	start := 0
	if m.menuCursor >= visible {
		start = m.menuCursor - visible + 1
	}
	end := min(len(m.menuItems), start+visible)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.menuTitle))
	for i := start; i < end; i++ {
		b.WriteString("\n")
		if i == m.menuCursor {
			b.WriteString(cursorStyle.Render("> " + m.menuItems[i]))
		} else {
			b.WriteString("  " + m.menuItems[i])
		}
	}
	panel := menuStyle.Render(b.String())
	return m.padBody(strings.Split(panel, "\n"))
}

func (m Model) renderHelp() string {
	lines := []string{
		titleStyle.Render("ptop key bindings"),
		"",
		"  Up/Down PgUp PgDn Home End   move selection",
		"  0-9          jump to pid",
		"  / F3         incremental search; F3 or ctrl+n next, ctrl+p previous",
		"  \\ F4         filter the process list",
		"  t F5         toggle tree view",
		"  + -          collapse or expand the selected subtree",
		"  *            collapse or expand everything",
		"  . F6         sort menu",
		"  P M T N      sort by cpu, memory, time, pid",
		"  I            invert the sort order",
		"  u            show a single user's processes",
		"  Space        tag the selected process",
		"  c            tag the selected process and its children",
		"  U            untag everything",
		"  F            follow the selected process",
		"  k F9         send a signal to tagged or selected processes",
		"  ] F7         higher priority (lower nice, needs privileges)",
		"  [ F8         lower priority",
		"  K            toggle kernel threads",
		"  Z            pause updates",
		"  q F10        quit",
		"",
		meterStyle.Render("  press any key to return"),
	}
	return m.padBody(lines)
}

func (m Model) renderFooter() string {
	if m.mode == modeSearch || m.mode == modeFilter {
		return m.input.View()
	}
	if m.status != "" && time.Now().Before(m.statusUntil) {
		return statusStyle.Render(m.status)
	}
	if m.pidQuery != "" {
		return "pid: " + m.pidQuery
	}
	var b strings.Builder
	for _, k := range footKeys {
		b.WriteString(footKeyStyle.Render(k.key))
		b.WriteString(footDescStyle.Render(k.label))
	}
	return b.String()
}

var footKeys = []struct{ key, label string }{
	{"F1", "Help"}, {"F3", "Search"}, {"F4", "Filter"}, {"F5", "Tree"},
	{"F6", "SortBy"}, {"F7", "Nice-"}, {"F8", "Nice+"}, {"F9", "Kill"}, {"F10", "Quit"},
}

func (m Model) padBody(lines []string) string {
	body := m.bodyHeight()
	if len(lines) > body {
		lines = lines[:body]
	}
	for len(lines) < body {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func formatPercent(v float64) string {
	if v < 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// formatCPUTime renders cumulative cpu time the htop way: minutes,
// seconds and centiseconds, switching to hours past the first one.
func formatCPUTime(sec float64) string {
	if sec < 0 {
		return "-"
	}
	cs := int64(sec * 100)
	h := cs / 360000
	mi := cs / 6000 % 60
	s := cs / 100 % 60
	c := cs % 100
	if h > 0 {
		return fmt.Sprintf("%dh%02d:%02d", h, mi, s)
	}
	return fmt.Sprintf("%d:%02d.%02d", mi, s, c)
}

func formatUptime(d time.Duration) string {
	sec := int64(d.Seconds())
	days := sec / 86400
	h := sec % 86400 / 3600
	mi := sec % 3600 / 60
	s := sec % 60
	if days > 0 {
		return fmt.Sprintf("%d days, %02d:%02d:%02d", days, h, mi, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, mi, s)
}
