package table_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runlevel5/ptop/internal/process"
	"github.com/runlevel5/ptop/internal/table"
)

func TestParseKey(t *testing.T) {
	k, err := table.ParseKey(" CPU ")
	require.NoError(t, err)
	assert.Equal(t, table.KeyCPU, k)

	_, err = table.ParseKey("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestParseKeyRoundTrip(t *testing.T) {
	for _, k := range table.Keys() {
		got, err := table.ParseKey(string(k))
		require.NoError(t, err, "every advertised key must parse")
		assert.Equal(t, k, got)
	}
}

func TestDefaultDescending(t *testing.T) {
	assert.True(t, table.DefaultDescending(table.KeyCPU))
	assert.True(t, table.DefaultDescending(table.KeyMem))
	assert.True(t, table.DefaultDescending(table.KeyTime))
	assert.False(t, table.DefaultDescending(table.KeyPid))
	assert.False(t, table.DefaultDescending(table.KeyUser))
	assert.False(t, table.DefaultDescending(table.KeyCommand))
}

func TestComparePidTieBreak(t *testing.T) {
	a := &process.Record{Pid: 10, CPUPercent: 5.0}
	b := &process.Record{Pid: 20, CPUPercent: 5.0}

	assert.Negative(t, table.Compare(a, b, table.KeyCPU, false))
	assert.Negative(t, table.Compare(a, b, table.KeyCPU, true),
		"descending reverses the primary field only, never the pid tie-break")
	assert.Positive(t, table.Compare(b, a, table.KeyCPU, true))
}

func TestCompareDescending(t *testing.T) {
	hot := &process.Record{Pid: 1, CPUPercent: 90.0}
	cold := &process.Record{Pid: 2, CPUPercent: 1.0}

	assert.Positive(t, table.Compare(hot, cold, table.KeyCPU, false))
	assert.Negative(t, table.Compare(hot, cold, table.KeyCPU, true))
}

func TestSortByUserIsTotal(t *testing.T) {
	tbl := table.New()
	mk := func(pid int32, user string) process.Record {
		r := rec(pid, 0, "p")
		r.User = user
		return r
	}
	tbl.Merge(snap(time.Unix(1, 0), mk(5, "bob"), mk(3, "alice"), mk(4, "bob"), mk(1, "alice")))

	tbl.Sort(table.KeyUser, false)
	assert.Equal(t, []int32{1, 3, 4, 5}, tbl.Order(), "equal users fall back to ascending pid")

	tbl.Sort(table.KeyUser, true)
	assert.Equal(t, []int32{4, 5, 1, 3}, tbl.Order())
}
