package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runlevel5/ptop/internal/process"
	"github.com/runlevel5/ptop/internal/view"
)

func TestMatchCommand(t *testing.T) {
	rec := &process.Record{Name: "postgres", Command: "/usr/bin/postgres -D /var/lib"}

	assert.True(t, view.MatchCommand(rec, ""), "empty filter matches everything")
	assert.True(t, view.MatchCommand(rec, "POSTGRES"))
	assert.True(t, view.MatchCommand(rec, "var/lib"))
	assert.False(t, view.MatchCommand(rec, "nginx"))
}

func TestMatchCommandFallsBackToName(t *testing.T) {
	rec := &process.Record{Name: "kworker/0:1"}
	assert.True(t, view.MatchCommand(rec, "kworker"), "empty cmdline falls back to the short name")
}

func TestMatchUser(t *testing.T) {
	rec := &process.Record{User: "Postgres"}

	assert.True(t, view.MatchUser(rec, ""))
	assert.True(t, view.MatchUser(rec, "postgres"))
	assert.False(t, view.MatchUser(rec, "post"), "user match is exact, not substring")
}

func TestMatchPids(t *testing.T) {
	rec := &process.Record{Pid: 42}

	assert.True(t, view.MatchPids(rec, nil))
	assert.True(t, view.MatchPids(rec, []int32{7, 42}))
	assert.False(t, view.MatchPids(rec, []int32{7, 9}))
}

func TestMatchName(t *testing.T) {
	rec := &process.Record{Name: "nginx", Command: "nginx: worker process"}

	assert.True(t, view.MatchName(rec, "NGINX"), "exact name match is case-insensitive")
	assert.True(t, view.MatchName(rec, "worker proc"), "cmdline substring also matches")
	assert.False(t, view.MatchName(rec, "apache"))

	bare := &process.Record{Name: "nginx"}
	assert.False(t, view.MatchName(bare, "ngin"), "without a cmdline the name must match exactly")
}

func TestMatchGlob(t *testing.T) {
	rec := &process.Record{Name: "chrome_renderer", Command: "/opt/google/chrome/chrome --type=renderer"}

	assert.True(t, view.MatchGlob(rec, "chrome*"))
	assert.True(t, view.MatchGlob(rec, "CHROME_*"))
	assert.False(t, view.MatchGlob(rec, "firefox*"))
	assert.False(t, view.MatchGlob(rec, "[bad"), "a malformed pattern matches nothing")
}
