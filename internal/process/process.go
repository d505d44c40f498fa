package process

import "time"

// RateUnknown marks a rate-style field with no prior sample to diff
// against (or no data this cycle). Distinguishable from an observed 0.
const RateUnknown = -1.0

type Record struct {
	Pid       int32
	Ppid      int32
	Name      string
	Command   string
	User      string
	Port      uint32
	State     byte
	Nice      int32
	Priority  int32
	VirtBytes uint64
	ResBytes  uint64
	Threads   int32
	StartTime int64

	// Cumulative counters from the latest scan. -1 means the counter
	// was unreadable this scan.
	CPUTime   float64
	DiskRead  int64
	DiskWrite int64

	// Derived on merge.
	CPUPercent float64
	MemPercent float64
	ReadRate   float64
	WriteRate  float64

	// UI state, carried across merges by pid.
	Tagged    bool
	Collapsed bool
}

// CommandText is the display command: the full cmdline when readable,
// otherwise the short name.
func (r *Record) CommandText() string {
	if r.Command != "" {
		return r.Command
	}
	return r.Name
}

type Snapshot struct {
	Records    []Record
	Timestamp  time.Time
	ActiveCPUs int
	MemTotal   uint64
	MemUsed    uint64
	CPUPercent float64
	Load1      float64
	Load5      float64
	Load15     float64
	Uptime     time.Duration
}
