package view

import "github.com/runlevel5/ptop/internal/table"

// Build recomputes the display list: tree layout (or the table's
// persistent flat order) narrowed by the active filters. Rebuilt
// wholesale, never patched.
func Build(t *table.Table, s Settings) []table.DisplayNode {
	if s.TreeView && !s.Narrowed() {
		return t.BuildTree(s.SortKey, s.SortDesc)
	}

	nodes := make([]table.DisplayNode, 0, t.Len())
	for _, pid := range t.Order() {
		rec, ok := t.Get(pid)
		if !ok {
			continue
		}
		if !MatchCommand(rec, s.FilterText) || !MatchUser(rec, s.UserFilter) || !MatchPids(rec, s.PidFilter) {
			continue
		}
		nodes = append(nodes, table.DisplayNode{Pid: pid})
	}
	return nodes
}

// ListCache memoizes the display list against the table generation and
// the settings fingerprint, so redraws between merges skip the rebuild.
type ListCache struct {
	gen   uint64
	fp    string
	nodes []table.DisplayNode
	valid bool
}

func (c *ListCache) Get(t *table.Table, s Settings) []table.DisplayNode {
	fp := s.Fingerprint()
	if c.valid && c.gen == t.Generation() && c.fp == fp {
		return c.nodes
	}
	c.nodes = Build(t, s)
	c.gen = t.Generation()
	c.fp = fp
	c.valid = true
	return c.nodes
}

// Invalidate forces the next Get to rebuild. Needed when a deferred
// sort is applied, which reorders the table without a generation bump.
func (c *ListCache) Invalidate() {
	c.valid = false
}
