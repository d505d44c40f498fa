package table

import "slices"

type DisplayNode struct {
	Pid         int32
	Depth       int
	HasChildren bool
}

// adjacency builds the parent-to-children map plus the root bucket:
// pids whose parent is absent, zero, or themselves.
func (t *Table) adjacency() (map[int32][]int32, []int32) {
	adj := make(map[int32][]int32, len(t.records))
	var roots []int32
	for pid, rec := range t.records {
		parent := rec.Ppid
		if _, ok := t.records[parent]; parent == 0 || parent == pid || !ok {
			roots = append(roots, pid)
			continue
		}
		adj[parent] = append(adj[parent], pid)
	}
	return adj, roots
}

// BuildTree produces the depth-first pre-order display sequence.
// Sibling groups use the active sort comparator so tree order stays
// sort-consistent. Collapsed nodes emit themselves only; their
// descendants are still walked for visited-marking so they cannot
// resurface as roots. Nodes unreachable from any root (mutual-parent
// cycles) are adopted into the root bucket.
func (t *Table) BuildTree(key Key, desc bool) []DisplayNode {
	adj, roots := t.adjacency()

	byCmp := func(x, y int32) int {
		return Compare(t.records[x], t.records[y], key, desc)
	}
	slices.SortFunc(roots, byCmp)
	for _, kids := range adj {
		slices.SortFunc(kids, byCmp)
	}

	visited := make(map[int32]bool, len(t.records))
	out := make([]DisplayNode, 0, len(t.records))

	var walk func(pid int32, depth int, emit bool)
	walk = func(pid int32, depth int, emit bool) {
		if visited[pid] {
			return
		}
		visited[pid] = true
		kids := adj[pid]
		if emit {
			out = append(out, DisplayNode{Pid: pid, Depth: depth, HasChildren: len(kids) > 0})
		}
		childEmit := emit && !t.records[pid].Collapsed
		for _, kid := range kids {
			walk(kid, depth+1, childEmit)
		}
	}

	for _, root := range roots {
		walk(root, 0, true)
	}

	if len(visited) < len(t.records) {
		var leftover []int32
		for pid := range t.records {
			if !visited[pid] {
				leftover = append(leftover, pid)
			}
		}
		slices.Sort(leftover)
		for _, pid := range leftover {
			walk(pid, 0, true)
		}
	}

	return out
}
