package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runlevel5/ptop/internal/process"
)

// Sample is one scan cycle's system-wide reading.
type Sample struct {
	Timestamp  time.Time
	CPUPercent float64
	MemUsed    uint64
	MemTotal   uint64
	Load1      float64
	Load5      float64
	Load15     float64
	Tasks      int
	Threads    int
	Running    int
}

type Recorder struct {
	db   *sql.DB
	path string
}

func Open(path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create recording directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open recording database: %w", err)
	}

	r := &Recorder{db: db, path: path}
	if err := r.configure(); err != nil {
		db.Close()
		return nil, err
	}
	if err := r.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Recorder) configure() error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := r.db.Exec(p); err != nil {
			return fmt.Errorf("configure database: %w", err)
		}
	}
	return nil
}

func (r *Recorder) createSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at DATETIME NOT NULL,
			cpu_percent REAL NOT NULL,
			mem_used INTEGER NOT NULL,
			mem_total INTEGER NOT NULL,
			load1 REAL NOT NULL,
			load5 REAL NOT NULL,
			load15 REAL NOT NULL,
			tasks INTEGER NOT NULL,
			threads INTEGER NOT NULL,
			running INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS processes (
			sample_id INTEGER NOT NULL REFERENCES samples(id),
			pid INTEGER NOT NULL,
			ppid INTEGER NOT NULL,
			name TEXT NOT NULL,
			username TEXT,
			state TEXT NOT NULL,
			nice INTEGER NOT NULL,
			priority INTEGER NOT NULL,
			virt INTEGER NOT NULL,
			res INTEGER NOT NULL,
			threads INTEGER NOT NULL,
			cpu_percent REAL NOT NULL,
			mem_percent REAL NOT NULL,
			cpu_time REAL NOT NULL,
			read_rate REAL NOT NULL,
			write_rate REAL NOT NULL,
			command TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_taken_at ON samples(taken_at)`,
		`CREATE INDEX IF NOT EXISTS idx_processes_sample ON processes(sample_id)`,
		`CREATE INDEX IF NOT EXISTS idx_processes_pid ON processes(pid)`,
	}
	for _, stmt := range schema {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// WriteSample stores one cycle: the system row plus every process row,
// in a single transaction.
func (r *Recorder) WriteSample(s Sample, recs []*process.Record) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO samples (
			taken_at, cpu_percent, mem_used, mem_total,
			load1, load5, load15, tasks, threads, running
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Timestamp, s.CPUPercent, s.MemUsed, s.MemTotal,
		s.Load1, s.Load5, s.Load15, s.Tasks, s.Threads, s.Running,
	)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	sampleID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sample id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO processes (
			sample_id, pid, ppid, name, username, state,
			nice, priority, virt, res, threads,
			cpu_percent, mem_percent, cpu_time, read_rate, write_rate, command
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		_, err := stmt.Exec(
			sampleID, rec.Pid, rec.Ppid, rec.Name, rec.User, string(rec.State),
			rec.Nice, rec.Priority, rec.VirtBytes, rec.ResBytes, rec.Threads,
			rec.CPUPercent, rec.MemPercent, rec.CPUTime, rec.ReadRate, rec.WriteRate,
			rec.Command,
		)
		if err != nil {
			return fmt.Errorf("insert process %d: %w", rec.Pid, err)
		}
	}

	return tx.Commit()
}

func (r *Recorder) SampleCount() (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM samples").Scan(&n); err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return n, nil
}

func (r *Recorder) Path() string {
	return r.path
}

func (r *Recorder) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
