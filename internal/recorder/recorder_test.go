package recorder_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runlevel5/ptop/internal/process"
	"github.com/runlevel5/ptop/internal/recorder"
)

func sample(ts time.Time) recorder.Sample {
	return recorder.Sample{
		Timestamp:  ts,
		CPUPercent: 12.5,
		MemUsed:    512 << 20,
		MemTotal:   1 << 30,
		Load1:      0.5,
		Load5:      0.4,
		Load15:     0.3,
		Tasks:      2,
		Threads:    8,
		Running:    1,
	}
}

func TestRecorderWritesSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.db")
	r, err := recorder.Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, path, r.Path())

	recs := []*process.Record{
		{Pid: 1, Name: "init", User: "root", State: 'S', CPUPercent: 0.1},
		{Pid: 42, Ppid: 1, Name: "nginx", User: "www", State: 'R', CPUPercent: 3.5},
	}
	require.NoError(t, r.WriteSample(sample(time.Unix(100, 0)), recs))
	require.NoError(t, r.WriteSample(sample(time.Unix(101, 0)), recs[:1]))

	n, err := r.SampleCount()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var procRows int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM processes").Scan(&procRows))
	assert.Equal(t, 3, procRows, "every record of every cycle lands in its own row")

	var name string
	require.NoError(t, db.QueryRow(
		"SELECT name FROM processes WHERE pid = 42").Scan(&name))
	assert.Equal(t, "nginx", name)
}

func TestRecorderReopenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.db")

	r, err := recorder.Open(path)
	require.NoError(t, err)
	require.NoError(t, r.WriteSample(sample(time.Unix(100, 0)), nil))
	require.NoError(t, r.Close())

	r, err = recorder.Open(path)
	require.NoError(t, err, "an existing database opens in place")
	defer r.Close()
	require.NoError(t, r.WriteSample(sample(time.Unix(200, 0)), nil))

	n, err := r.SampleCount()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRecorderCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "record.db")
	r, err := recorder.Open(path)
	require.NoError(t, err, "missing parent directories are created")
	defer r.Close()

	n, err := r.SampleCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}
