package view

import (
	"strconv"
	"strings"

	"github.com/runlevel5/ptop/internal/table"
)

// Search selects but never hides: these return an index into the
// display list and a found flag.

func FindFirst(t *table.Table, nodes []table.DisplayNode, text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	for i, node := range nodes {
		if rec, ok := t.Get(node.Pid); ok && MatchCommand(rec, text) {
			return i, true
		}
	}
	return 0, false
}

func FindNext(t *table.Table, nodes []table.DisplayNode, text string, from int) (int, bool) {
	return findFrom(t, nodes, text, from, 1)
}

func FindPrev(t *table.Table, nodes []table.DisplayNode, text string, from int) (int, bool) {
	return findFrom(t, nodes, text, from, -1)
}

// findFrom scans a full wraparound circle starting beside from, ending
// on from itself so a sole match still hits.
func findFrom(t *table.Table, nodes []table.DisplayNode, text string, from, step int) (int, bool) {
	n := len(nodes)
	if text == "" || n == 0 {
		return 0, false
	}
	if from < 0 || from >= n {
		from = 0
	}
	for off := 1; off <= n; off++ {
		i := ((from+off*step)%n + n) % n
		if rec, ok := t.Get(nodes[i].Pid); ok && MatchCommand(rec, text) {
			return i, true
		}
	}
	return 0, false
}

// FindPidPrefix serves the incremental pid search: the first display
// entry whose decimal pid starts with the typed digits.
func FindPidPrefix(nodes []table.DisplayNode, digits string) (int, bool) {
	if digits == "" {
		return 0, false
	}
	for i, node := range nodes {
		if strings.HasPrefix(strconv.Itoa(int(node.Pid)), digits) {
			return i, true
		}
	}
	return 0, false
}
