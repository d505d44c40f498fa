package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runlevel5/ptop/internal/process"
	"github.com/runlevel5/ptop/internal/table"
	"github.com/runlevel5/ptop/internal/view"
)

func displayFixture() *table.Table {
	tbl := table.New()
	mk := func(pid, ppid int32, name, user string) process.Record {
		return process.Record{Pid: pid, Ppid: ppid, Name: name, Command: name, User: user, State: 'S'}
	}
	tbl.Merge(&process.Snapshot{
		Records: []process.Record{
			mk(1, 0, "init", "root"),
			mk(2, 1, "sshd", "root"),
			mk(3, 2, "bash", "alice"),
			mk(4, 1, "cron", "root"),
		},
		Timestamp: time.Unix(1, 0),
	})
	return tbl
}

func nodePids(nodes []table.DisplayNode) []int32 {
	out := make([]int32, len(nodes))
	for i, n := range nodes {
		out[i] = n.Pid
	}
	return out
}

func TestBuildFlatFollowsTableOrder(t *testing.T) {
	tbl := displayFixture()
	tbl.Sort(table.KeyPid, true)

	nodes := view.Build(tbl, view.Settings{})
	assert.Equal(t, []int32{4, 3, 2, 1}, nodePids(nodes))
}

func TestBuildAppliesFilters(t *testing.T) {
	tbl := displayFixture()

	nodes := view.Build(tbl, view.Settings{FilterText: "SH"})
	assert.Equal(t, []int32{2, 3}, nodePids(nodes), "substring filter over the command text")

	nodes = view.Build(tbl, view.Settings{UserFilter: "alice"})
	assert.Equal(t, []int32{3}, nodePids(nodes))

	nodes = view.Build(tbl, view.Settings{PidFilter: []int32{1, 4}})
	assert.Equal(t, []int32{1, 4}, nodePids(nodes))

	nodes = view.Build(tbl, view.Settings{FilterText: "sh", UserFilter: "root"})
	assert.Equal(t, []int32{2}, nodePids(nodes), "filters combine conjunctively")
}

func TestBuildTreeSuspendedWhileNarrowed(t *testing.T) {
	tbl := displayFixture()

	tree := view.Build(tbl, view.Settings{TreeView: true, SortKey: table.KeyPid})
	require.Equal(t, []int32{1, 2, 3, 4}, nodePids(tree))
	assert.Equal(t, 1, tree[1].Depth, "tree layout active without filters")

	flat := view.Build(tbl, view.Settings{TreeView: true, SortKey: table.KeyPid, FilterText: "sh"})
	assert.Equal(t, []int32{2, 3}, nodePids(flat))
	for _, n := range flat {
		assert.Zero(t, n.Depth, "narrowing suspends indentation")
	}
}

func TestListCacheReusesList(t *testing.T) {
	tbl := displayFixture()
	var cache view.ListCache
	s := view.Settings{SortKey: table.KeyPid}

	first := cache.Get(tbl, s)
	second := cache.Get(tbl, s)
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0], "unchanged generation and settings reuse the cached list")
}

func TestListCacheRebuildsOnGeneration(t *testing.T) {
	tbl := displayFixture()
	var cache view.ListCache
	s := view.Settings{SortKey: table.KeyPid}

	first := cache.Get(tbl, s)
	require.Len(t, first, 4)

	tbl.Merge(&process.Snapshot{
		Records: []process.Record{
			{Pid: 1, Name: "init", State: 'S'},
		},
		Timestamp: time.Unix(2, 0),
	})

	second := cache.Get(tbl, s)
	assert.Equal(t, []int32{1}, nodePids(second), "a merge bumps the generation and rebuilds")
}

func TestListCacheRebuildsOnSettingsChange(t *testing.T) {
	tbl := displayFixture()
	var cache view.ListCache

	all := cache.Get(tbl, view.Settings{})
	require.Len(t, all, 4)

	narrowed := cache.Get(tbl, view.Settings{UserFilter: "alice"})
	assert.Equal(t, []int32{3}, nodePids(narrowed))
}

func TestListCacheInvalidate(t *testing.T) {
	tbl := displayFixture()
	var cache view.ListCache
	s := view.Settings{}

	before := cache.Get(tbl, s)
	require.Equal(t, []int32{1, 2, 3, 4}, nodePids(before))

	// Sorting reorders in place without touching the generation, so the
	// cache serves the stale list until it is told otherwise.
	tbl.Sort(table.KeyPid, true)
	stale := cache.Get(tbl, s)
	assert.Equal(t, []int32{1, 2, 3, 4}, nodePids(stale))

	cache.Invalidate()
	fresh := cache.Get(tbl, s)
	assert.Equal(t, []int32{4, 3, 2, 1}, nodePids(fresh))
}

func TestNarrowed(t *testing.T) {
	assert.False(t, view.Settings{}.Narrowed())
	assert.False(t, view.Settings{SearchText: "x", FollowPid: 9}.Narrowed(),
		"search and follow select, they do not narrow")
	assert.True(t, view.Settings{FilterText: "x"}.Narrowed())
	assert.True(t, view.Settings{UserFilter: "root"}.Narrowed())
	assert.True(t, view.Settings{PidFilter: []int32{1}}.Narrowed())
}

func TestFingerprint(t *testing.T) {
	s := view.Settings{SortKey: table.KeyCPU, SortDesc: true, HideKernelThreads: true}
	base := s.Fingerprint()

	same := s
	same.SearchText = "vim"
	same.FollowPid = 42
	assert.Equal(t, base, same.Fingerprint(), "selection-only state stays out of the fingerprint")

	for name, mutate := range map[string]func(*view.Settings){
		"sort key":  func(v *view.Settings) { v.SortKey = table.KeyMem },
		"direction": func(v *view.Settings) { v.SortDesc = false },
		"tree":      func(v *view.Settings) { v.TreeView = true },
		"filter":    func(v *view.Settings) { v.FilterText = "x" },
		"user":      func(v *view.Settings) { v.UserFilter = "root" },
		"pids":      func(v *view.Settings) { v.PidFilter = []int32{1} },
		"kernel":    func(v *view.Settings) { v.HideKernelThreads = false },
	} {
		changed := s
		mutate(&changed)
		assert.NotEqual(t, base, changed.Fingerprint(), "%s must change the fingerprint", name)
	}
}
