package table_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runlevel5/ptop/internal/table"
)

func pids(nodes []table.DisplayNode) []int32 {
	out := make([]int32, len(nodes))
	for i, n := range nodes {
		out[i] = n.Pid
	}
	return out
}

func depths(nodes []table.DisplayNode) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = n.Depth
	}
	return out
}

func TestBuildTreePreOrder(t *testing.T) {
	tbl := table.New()
	tbl.Merge(snap(base,
		rec(1, 0, "init"),
		rec(100, 1, "sshd"),
		rec(101, 1, "cron"),
		rec(200, 100, "bash"),
		rec(201, 100, "scp"),
	))

	nodes := tbl.BuildTree(table.KeyPid, false)
	require.Equal(t, []int32{1, 100, 200, 201, 101}, pids(nodes),
		"depth-first: a parent's whole subtree precedes its next sibling")
	assert.Equal(t, []int{0, 1, 2, 2, 1}, depths(nodes))

	assert.True(t, nodes[0].HasChildren)
	assert.True(t, nodes[1].HasChildren)
	assert.False(t, nodes[2].HasChildren)
}

func TestBuildTreeSiblingComparator(t *testing.T) {
	tbl := table.New()
	cold := rec(10, 1, "cold")
	hot := rec(11, 1, "hot")
	tbl.Merge(snap(base, rec(1, 0, "init"), cold, hot))

	// Give the children distinct cpu readings via a second scan.
	cold.CPUTime = 0.1
	hot.CPUTime = 1.5
	tbl.Merge(snap(base.Add(2*time.Second), rec(1, 0, "init"), cold, hot))

	nodes := tbl.BuildTree(table.KeyCPU, true)
	assert.Equal(t, []int32{1, 11, 10}, pids(nodes), "siblings follow the active comparator")
}

func TestBuildTreeOrphanAndSelfParent(t *testing.T) {
	tbl := table.New()
	orphan := rec(300, 999, "orphan")
	self := rec(77, 77, "selfref")
	tbl.Merge(snap(base, rec(1, 0, "init"), orphan, self))

	nodes := tbl.BuildTree(table.KeyPid, false)
	require.Equal(t, []int32{1, 77, 300}, pids(nodes))
	assert.Equal(t, []int{0, 0, 0}, depths(nodes), "absent or self parents promote to root")
}

func TestBuildTreeCollapse(t *testing.T) {
	tbl := table.New()
	tbl.Merge(snap(base,
		rec(1, 0, "init"),
		rec(100, 1, "sshd"),
		rec(101, 1, "cron"),
		rec(200, 100, "bash"),
		rec(201, 200, "vim"),
	))
	tbl.ToggleCollapse(100)

	nodes := tbl.BuildTree(table.KeyPid, false)
	assert.Equal(t, []int32{1, 100, 101}, pids(nodes),
		"a collapsed subtree is hidden entirely, not re-rooted")

	n100 := nodes[1]
	assert.True(t, n100.HasChildren, "collapsed parent still reports children")

	tbl.ToggleCollapse(100)
	nodes = tbl.BuildTree(table.KeyPid, false)
	assert.Equal(t, []int32{1, 100, 200, 201, 101}, pids(nodes))
}

func TestBuildTreeCycleAdoption(t *testing.T) {
	tbl := table.New()
	a := rec(51, 50, "a")
	b := rec(50, 51, "b")
	tbl.Merge(snap(base, a, b))

	nodes := tbl.BuildTree(table.KeyPid, false)
	require.Equal(t, []int32{50, 51}, pids(nodes),
		"lowest pid of an unreachable cycle is adopted as root")
	assert.Equal(t, []int{0, 1}, depths(nodes))
}

func TestBuildTreeCoversEveryRecordOnce(t *testing.T) {
	tbl := table.New()
	tbl.Merge(snap(base,
		rec(1, 0, "init"),
		rec(2, 1, "child"),
		rec(40, 41, "cyc1"),
		rec(41, 40, "cyc2"),
		rec(99, 12345, "orphan"),
	))

	nodes := tbl.BuildTree(table.KeyCPU, true)
	require.Len(t, nodes, tbl.Len(), "every live pid appears exactly once")

	seen := make(map[int32]bool)
	for _, n := range nodes {
		assert.False(t, seen[n.Pid], "pid %d emitted twice", n.Pid)
		seen[n.Pid] = true
		_, ok := tbl.Get(n.Pid)
		assert.True(t, ok)
	}
}
