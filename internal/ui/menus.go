package ui

import (
	"maps"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runlevel5/ptop/internal/killer"
	"github.com/runlevel5/ptop/internal/table"
)

func (m *Model) openSortMenu() {
	m.mode = modeSortMenu
	m.menuTitle = "Sort by"
	m.menuItems = nil
	m.menuCursor = 0
	for i, k := range table.Keys() {
		m.menuItems = append(m.menuItems, string(k))
		if k == m.settings.SortKey {
			m.menuCursor = i
		}
	}
}

func (m *Model) openSignalMenu() {
	if m.opts.ReadOnly {
		m.setStatus("read-only mode")
		return
	}
	if len(m.actionTargets()) == 0 {
		return
	}
	m.mode = modeSignalMenu
	m.menuTitle = "Send signal"
	m.menuItems = nil
	m.menuCursor = 0
	for i, s := range killer.Signals {
		m.menuItems = append(m.menuItems, s.String())
		if s.Name == "SIGTERM" {
			m.menuCursor = i
		}
	}
}

func (m *Model) openUserMenu() {
	set := make(map[string]bool)
	for _, pid := range m.tbl.Order() {
		if rec, ok := m.tbl.Get(pid); ok && rec.User != "" {
			set[rec.User] = true
		}
	}
	m.mode = modeUserMenu
	m.menuTitle = "Show processes of"
	m.menuItems = append([]string{"(all)"}, slices.Sorted(maps.Keys(set))...)
	m.menuCursor = 0
	for i, u := range m.menuItems {
		if u == m.settings.UserFilter {
			m.menuCursor = i
		}
	}
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeNormal
	case "up":
		m.menuCursor = clamp(m.menuCursor-1, 0, len(m.menuItems)-1)
	case "down":
		m.menuCursor = clamp(m.menuCursor+1, 0, len(m.menuItems)-1)
	case "home":
		m.menuCursor = 0
	case "end":
		m.menuCursor = max(0, len(m.menuItems)-1)
	case "enter":
		m.applyMenu()
	}
}

func (m *Model) applyMenu() {
	idx := m.menuCursor
	menu := m.mode
	m.mode = modeNormal

	switch menu {
	case modeSortMenu:
		keys := table.Keys()
		if idx >= 0 && idx < len(keys) {
			m.setSortKey(keys[idx])
		}
	case modeSignalMenu:
		if idx >= 0 && idx < len(killer.Signals) {
			m.sendSignal(killer.Signals[idx])
		}
	case modeUserMenu:
		if idx == 0 {
			m.settings.UserFilter = ""
		} else if idx > 0 && idx < len(m.menuItems) {
			m.settings.UserFilter = m.menuItems[idx]
		}
		m.sched.MarkRedraw()
	}
}
