package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runlevel5/ptop/internal/killer"
	"github.com/runlevel5/ptop/internal/process"
	"github.com/runlevel5/ptop/internal/table"
	"github.com/runlevel5/ptop/internal/view"
)

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		m.pidQuery += key
		if idx, ok := view.FindPidPrefix(m.nodes, m.pidQuery); ok {
			m.moveTo(idx)
		}
		return nil
	}
	m.pidQuery = ""

	switch key {
	case "q", "f10":
		m.quitting = true
		return tea.Quit
	case "esc":
		m.status = ""
		if m.settings.FollowPid != 0 {
			m.settings.FollowPid = 0
			m.setStatus("follow off")
		}
	case "up":
		m.moveCursor(-1)
	case "down":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-m.bodyHeight())
		m.sched.MarkRedraw()
	case "pgdown":
		m.moveCursor(m.bodyHeight())
		m.sched.MarkRedraw()
	case "home":
		m.moveTo(0)
		m.sched.MarkRedraw()
	case "end":
		m.moveTo(len(m.nodes) - 1)
		m.sched.MarkRedraw()
	case "/", "f3":
		m.openSearch()
		return textinput.Blink
	case "\\", "f4":
		m.openFilter()
		return textinput.Blink
	case "t", "f5":
		m.settings.TreeView = !m.settings.TreeView
		m.sched.MarkRedraw()
	case ".", ">", "f6":
		m.openSortMenu()
	case "]", "f7":
		m.renice(-1)
	case "[", "f8":
		m.renice(1)
	case "k", "f9":
		m.openSignalMenu()
	case " ":
		m.tbl.ToggleTag(m.selPid)
		m.moveCursor(1)
	case "c":
		m.tbl.TagSubtree(m.selPid)
	case "U":
		m.tbl.UntagAll()
	case "F":
		m.toggleFollow()
	case "u":
		m.openUserMenu()
	case "I":
		m.settings.SortDesc = !m.settings.SortDesc
		m.applySortNow()
	case "M":
		m.setSortKey(table.KeyMem)
	case "P":
		m.setSortKey(table.KeyCPU)
	case "T":
		m.setSortKey(table.KeyTime)
	case "N":
		m.setSortKey(table.KeyPid)
	case "K":
		m.settings.HideKernelThreads = !m.settings.HideKernelThreads
		m.sched.MarkRedraw()
		if !m.paused {
			return m.scanCmd()
		}
	case "+", "-":
		if m.settings.TreeView && m.selPid != 0 {
			m.tbl.ToggleCollapse(m.selPid)
			m.cache.Invalidate()
			m.sched.MarkRedraw()
		}
	case "*":
		if m.settings.TreeView {
			m.allCollapsed = !m.allCollapsed
			m.tbl.SetAllCollapsed(m.allCollapsed)
			m.cache.Invalidate()
			m.sched.MarkRedraw()
		}
	case "Z":
		m.paused = !m.paused
		if !m.paused {
			return m.scanCmd()
		}
	case "h", "?", "f1":
		m.mode = modeHelp
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.settings.SearchText = ""
		m.closeInput()
	case "enter":
		m.closeInput()
	case "f3", "ctrl+n":
		if idx, ok := view.FindNext(m.tbl, m.nodes, m.settings.SearchText, m.cursor); ok {
			m.moveTo(idx)
		}
	case "shift+f3", "ctrl+p":
		if idx, ok := view.FindPrev(m.tbl, m.nodes, m.settings.SearchText, m.cursor); ok {
			m.moveTo(idx)
		}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.settings.SearchText = m.input.Value()
		if idx, ok := view.FindFirst(m.tbl, m.nodes, m.settings.SearchText); ok {
			m.moveTo(idx)
		}
		return cmd
	}
	return nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.settings.FilterText = ""
		m.closeInput()
		m.sched.MarkRedraw()
	case "enter":
		m.closeInput()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != m.settings.FilterText {
			m.settings.FilterText = v
			m.sched.MarkRedraw()
		}
		return cmd
	}
	return nil
}

func (m *Model) openSearch() {
	m.mode = modeSearch
	m.input.Prompt = "Search: "
	m.input.SetValue("")
	m.settings.SearchText = ""
	m.input.Focus()
}

func (m *Model) openFilter() {
	m.mode = modeFilter
	m.input.Prompt = "Filter: "
	m.input.SetValue(m.settings.FilterText)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeNormal
	m.input.Blur()
}

func (m *Model) toggleFollow() {
	if m.settings.FollowPid != 0 {
		m.settings.FollowPid = 0
		m.setStatus("follow off")
		return
	}
	if m.selPid != 0 {
		m.settings.FollowPid = m.selPid
		m.setStatus(fmt.Sprintf("following pid %d", m.selPid))
	}
}

func (m *Model) renice(delta int) {
	if m.opts.ReadOnly {
		m.setStatus("read-only mode")
		return
	}
	for _, pid := range m.actionTargets() {
		rec, ok := m.tbl.Get(pid)
		if !ok {
			m.setStatus(fmt.Sprintf("pid %d: target no longer exists", pid))
			continue
		}
		if m.cfg.IsProtected(rec.Name) {
			m.setStatus(fmt.Sprintf("%s (%d) is protected", rec.Name, rec.Pid))
			continue
		}
		newNice, err := killer.SetNice(pid, int(rec.Nice)+delta)
		if err != nil {
			m.setStatus(fmt.Sprintf("renice %d: %v", pid, err))
			continue
		}
		rec.Nice = int32(newNice)
		rec.Priority = int32(newNice) + 20
	}
	m.sched.MarkRedraw()
}

func (m *Model) sendSignal(sig killer.NamedSignal) {
	if m.opts.ReadOnly {
		m.setStatus("read-only mode")
		return
	}
	var targets []process.Record
	for _, pid := range m.actionTargets() {
		rec, ok := m.tbl.Get(pid)
		if !ok {
			m.setStatus(fmt.Sprintf("pid %d: target no longer exists", pid))
			continue
		}
		if m.cfg.IsProtected(rec.Name) {
			m.setStatus(fmt.Sprintf("%s (%d) is protected", rec.Name, rec.Pid))
			continue
		}
		targets = append(targets, *rec)
	}
	if len(targets) == 0 {
		return
	}

	results := m.kill.Execute(targets, killer.Options{
		Action: killer.ActionSignal,
		Signal: sig.Sig,
	})
	failed := 0
	var firstErr error
	for _, r := range results {
		if !r.Success {
			failed++
			if firstErr == nil {
				firstErr = r.Error
			}
		}
	}
	if failed > 0 {
		m.setStatus(fmt.Sprintf("%s failed for %d of %d: %v", sig.Name, failed, len(results), firstErr))
	} else {
		m.setStatus(fmt.Sprintf("sent %s to %d process(es)", sig.Name, len(results)))
	}
}
