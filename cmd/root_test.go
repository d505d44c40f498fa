package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runlevel5/ptop/internal/config"
	"github.com/runlevel5/ptop/internal/detect"
	"github.com/runlevel5/ptop/internal/process"
)

func TestParseDelay(t *testing.T) {
	d, err := parseDelay("2s")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)

	d, err = parseDelay("1.5")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d, "a bare number means seconds")

	d, err = parseDelay("250ms")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	_, err = parseDelay("fast")
	assert.Error(t, err)
	_, err = parseDelay("-1")
	assert.Error(t, err, "delays must be positive")
}

func TestResolveKillQuery(t *testing.T) {
	cfg := &config.Config{Aliases: map[string]string{"db": "postgres"}}

	q := resolveKillQuery(&killFlags{port: 8080}, nil, cfg)
	require.NotNil(t, q)
	assert.Equal(t, detect.TypePort, q.Type)
	assert.Equal(t, uint32(8080), q.Port)

	q = resolveKillQuery(&killFlags{pid: 42}, nil, cfg)
	require.NotNil(t, q)
	assert.Equal(t, detect.TypePID, q.Type)
	assert.Equal(t, int32(42), q.PID)

	// The name flag always means a name, even when it looks numeric.
	q = resolveKillQuery(&killFlags{name: "8080"}, nil, cfg)
	require.NotNil(t, q)
	assert.Equal(t, detect.TypeName, q.Type)
	assert.Equal(t, "8080", q.Name)

	// Positional queries classify freely and resolve aliases first.
	q = resolveKillQuery(&killFlags{}, []string{"db"}, cfg)
	require.NotNil(t, q)
	assert.Equal(t, detect.TypeName, q.Type)
	assert.Equal(t, "postgres", q.Name)

	q = resolveKillQuery(&killFlags{}, []string{"1234"}, cfg)
	require.NotNil(t, q)
	assert.Equal(t, detect.TypePID, q.Type)

	assert.Nil(t, resolveKillQuery(&killFlags{}, nil, cfg))
}

func TestFilterProtected(t *testing.T) {
	cfg := &config.Config{Protected: []string{"init", "sshd"}}
	recs := []process.Record{
		{Pid: 1, Name: "init"},
		{Pid: 9, Name: "nginx"},
		{Pid: 12, Name: "SSHD"},
	}

	got := filterProtected(recs, cfg)
	require.Len(t, got, 1)
	assert.Equal(t, "nginx", got[0].Name)
}

func TestFilterByUser(t *testing.T) {
	recs := []process.Record{
		{Pid: 1, Name: "init", User: "root"},
		{Pid: 9, Name: "bash", User: "alice"},
	}

	got := filterByUser(recs, "alice")
	require.Len(t, got, 1)
	assert.EqualValues(t, 9, got[0].Pid)

	assert.Len(t, filterByUser(recs, ""), 2, "an empty user matches everyone")
}
