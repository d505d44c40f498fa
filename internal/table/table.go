package table

import (
	"slices"
	"time"

	"github.com/runlevel5/ptop/internal/process"
)

// Table is the authoritative pid-to-record store. The order slice is
// the persistent flat display order: merges append new pids at the end
// and drop removed ones in place, so row positions survive a deferred
// sort.
type Table struct {
	records    map[int32]*process.Record
	order      []int32
	gen        uint64
	lastScan   time.Time
	haveScan   bool
	memTotal   uint64
	activeCPUs int
	duplicates uint64
}

type MergeReport struct {
	Added      []int32
	Updated    []int32
	Removed    []int32
	Duplicates []int32
}

func (r MergeReport) Empty() bool {
	return len(r.Added) == 0 && len(r.Updated) == 0 && len(r.Removed) == 0 && len(r.Duplicates) == 0
}

func New() *Table {
	return &Table{
		records:    make(map[int32]*process.Record),
		activeCPUs: 1,
	}
}

func (t *Table) Merge(snap *process.Snapshot) MergeReport {
	var rep MergeReport

	var elapsed time.Duration
	if t.haveScan {
		elapsed = snap.Timestamp.Sub(t.lastScan)
	}
	if snap.MemTotal > 0 {
		t.memTotal = snap.MemTotal
	}
	if snap.ActiveCPUs > 0 {
		t.activeCPUs = snap.ActiveCPUs
	}

	seen := make(map[int32]bool, len(snap.Records))
	for i := range snap.Records {
		raw := &snap.Records[i]
		if seen[raw.Pid] {
			rep.Duplicates = append(rep.Duplicates, raw.Pid)
			t.duplicates++
			continue
		}
		seen[raw.Pid] = true

		if cur, ok := t.records[raw.Pid]; ok {
			t.update(cur, raw, elapsed)
			rep.Updated = append(rep.Updated, raw.Pid)
		} else {
			t.insert(raw)
			rep.Added = append(rep.Added, raw.Pid)
		}
	}

	if len(seen) < len(t.records) {
		for pid := range t.records {
			if !seen[pid] {
				delete(t.records, pid)
				rep.Removed = append(rep.Removed, pid)
			}
		}
		kept := t.order[:0]
		for _, pid := range t.order {
			if _, ok := t.records[pid]; ok {
				kept = append(kept, pid)
			}
		}
		t.order = kept
	}

	slices.Sort(rep.Added)
	slices.Sort(rep.Updated)
	slices.Sort(rep.Removed)
	slices.Sort(rep.Duplicates)

	t.gen++
	t.lastScan = snap.Timestamp
	t.haveScan = true
	return rep
}

func (t *Table) insert(raw *process.Record) {
	rec := *raw
	rec.CPUPercent = process.RateUnknown
	rec.ReadRate = process.RateUnknown
	rec.WriteRate = process.RateUnknown
	rec.MemPercent = memPercent(rec.ResBytes, t.memTotal)
	rec.Tagged = false
	rec.Collapsed = false
	t.records[rec.Pid] = &rec
	t.order = append(t.order, rec.Pid)
}

func (t *Table) update(cur, raw *process.Record, elapsed time.Duration) {
	cur.Ppid = raw.Ppid
	cur.State = raw.State
	cur.Nice = raw.Nice
	cur.Priority = raw.Priority
	cur.VirtBytes = raw.VirtBytes
	cur.ResBytes = raw.ResBytes
	cur.Threads = raw.Threads
	cur.StartTime = raw.StartTime
	cur.MemPercent = memPercent(raw.ResBytes, t.memTotal)

	// Unreadable text fields come back empty; keep the last good value.
	if raw.Name != "" {
		cur.Name = raw.Name
	}
	if raw.Command != "" {
		cur.Command = raw.Command
	}
	if raw.User != "" {
		cur.User = raw.User
	}

	sec := elapsed.Seconds()
	if sec <= 0 {
		// No usable interval: keep prior counters and prior rates.
		return
	}

	prev := cur.CPUTime
	switch {
	case raw.CPUTime < 0:
		// Counter unreadable this scan; the previous counter stays so
		// the next cycle can still diff against it.
		cur.CPUPercent = process.RateUnknown
	case prev < 0, raw.CPUTime < prev:
		cur.CPUTime = raw.CPUTime
		cur.CPUPercent = process.RateUnknown
	default:
		pct := (raw.CPUTime - prev) / sec * 100
		if limit := float64(100 * t.activeCPUs); pct > limit {
			pct = limit
		}
		cur.CPUTime = raw.CPUTime
		cur.CPUPercent = pct
	}

	cur.DiskRead, cur.ReadRate = counterRate(cur.DiskRead, raw.DiskRead, sec)
	cur.DiskWrite, cur.WriteRate = counterRate(cur.DiskWrite, raw.DiskWrite, sec)
}

func counterRate(prev, next int64, sec float64) (int64, float64) {
	switch {
	case next < 0:
		return prev, process.RateUnknown
	case prev < 0, next < prev:
		return next, process.RateUnknown
	default:
		return next, float64(next-prev) / sec
	}
}

func memPercent(res, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(res) / float64(total) * 100
}

func (t *Table) Len() int {
	return len(t.records)
}

func (t *Table) Generation() uint64 {
	return t.gen
}

func (t *Table) DuplicateCount() uint64 {
	return t.duplicates
}

func (t *Table) Get(pid int32) (*process.Record, bool) {
	rec, ok := t.records[pid]
	return rec, ok
}

// Order returns the persistent flat display order. Callers must treat
// it as read-only.
func (t *Table) Order() []int32 {
	return t.order
}

func (t *Table) Sort(key Key, desc bool) {
	slices.SortFunc(t.order, func(x, y int32) int {
		return Compare(t.records[x], t.records[y], key, desc)
	})
}

// Counts reports totals for the header line.
func (t *Table) Counts() (tasks, threads, running int) {
	tasks = len(t.records)
	for _, rec := range t.records {
		threads += int(rec.Threads)
		if rec.State == 'R' {
			running++
		}
	}
	return tasks, threads, running
}

func (t *Table) ToggleTag(pid int32) bool {
	rec, ok := t.records[pid]
	if !ok {
		return false
	}
	rec.Tagged = !rec.Tagged
	return rec.Tagged
}

func (t *Table) TagSubtree(pid int32) {
	if _, ok := t.records[pid]; !ok {
		return
	}
	adj, _ := t.adjacency()
	visited := make(map[int32]bool)
	var walk func(int32)
	walk = func(p int32) {
		if visited[p] {
			return
		}
		visited[p] = true
		t.records[p].Tagged = true
		for _, kid := range adj[p] {
			walk(kid)
		}
	}
	walk(pid)
}

func (t *Table) UntagAll() {
	for _, rec := range t.records {
		rec.Tagged = false
	}
}

// Tagged returns tagged pids in display order.
func (t *Table) Tagged() []int32 {
	var pids []int32
	for _, pid := range t.order {
		if t.records[pid].Tagged {
			pids = append(pids, pid)
		}
	}
	return pids
}

func (t *Table) ToggleCollapse(pid int32) {
	if rec, ok := t.records[pid]; ok {
		rec.Collapsed = !rec.Collapsed
	}
}

func (t *Table) SetAllCollapsed(collapsed bool) {
	for _, rec := range t.records {
		rec.Collapsed = collapsed
	}
}
