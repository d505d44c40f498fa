package table

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/runlevel5/ptop/internal/process"
)

type Key string

const (
	KeyPid      Key = "pid"
	KeyUser     Key = "user"
	KeyPriority Key = "pri"
	KeyNice     Key = "nice"
	KeyVirt     Key = "virt"
	KeyRes      Key = "res"
	KeyState    Key = "state"
	KeyCPU      Key = "cpu"
	KeyMem      Key = "mem"
	KeyTime     Key = "time"
	KeyThreads  Key = "threads"
	KeyRead     Key = "read"
	KeyWrite    Key = "write"
	KeyCommand  Key = "command"
)

func Keys() []Key {
	return []Key{
		KeyPid, KeyUser, KeyPriority, KeyNice, KeyVirt, KeyRes,
		KeyState, KeyCPU, KeyMem, KeyTime, KeyThreads,
		KeyRead, KeyWrite, KeyCommand,
	}
}

func ParseKey(s string) (Key, error) {
	k := Key(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Keys() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// DefaultDescending reports the natural initial direction when the user
// picks key: consumption-style columns start largest-first.
func DefaultDescending(key Key) bool {
	switch key {
	case KeyCPU, KeyMem, KeyVirt, KeyRes, KeyTime, KeyThreads, KeyRead, KeyWrite:
		return true
	default:
		return false
	}
}

// Compare is a pure comparator over two records: the named field's
// natural order, desc reversing the primary comparison only, with an
// ascending-pid tie-break so the order is total.
func Compare(a, b *process.Record, key Key, desc bool) int {
	c := compareField(a, b, key)
	if desc {
		c = -c
	}
	if c == 0 {
		return cmp.Compare(a.Pid, b.Pid)
	}
	return c
}

func compareField(a, b *process.Record, key Key) int {
	switch key {
	case KeyPid:
		return cmp.Compare(a.Pid, b.Pid)
	case KeyUser:
		return strings.Compare(a.User, b.User)
	case KeyPriority:
		return cmp.Compare(a.Priority, b.Priority)
	case KeyNice:
		return cmp.Compare(a.Nice, b.Nice)
	case KeyVirt:
		return cmp.Compare(a.VirtBytes, b.VirtBytes)
	case KeyRes:
		return cmp.Compare(a.ResBytes, b.ResBytes)
	case KeyState:
		return cmp.Compare(a.State, b.State)
	case KeyCPU:
		return cmp.Compare(a.CPUPercent, b.CPUPercent)
	case KeyMem:
		return cmp.Compare(a.MemPercent, b.MemPercent)
	case KeyTime:
		return cmp.Compare(a.CPUTime, b.CPUTime)
	case KeyThreads:
		return cmp.Compare(a.Threads, b.Threads)
	case KeyRead:
		return cmp.Compare(a.ReadRate, b.ReadRate)
	case KeyWrite:
		return cmp.Compare(a.WriteRate, b.WriteRate)
	case KeyCommand:
		return strings.Compare(a.CommandText(), b.CommandText())
	default:
		return 0
	}
}
