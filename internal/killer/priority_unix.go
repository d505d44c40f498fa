//go:build linux || darwin

package killer

import "golang.org/x/sys/unix"

const (
	NiceMin = -20
	NiceMax = 19
)

// SetNice sets a process's nice value, clamped to the scheduler range.
// Lowering nice below zero needs privileges; the raw EPERM/EACCES is
// returned for the caller to surface.
func SetNice(pid int32, nice int) (int, error) {
	if nice < NiceMin {
		nice = NiceMin
	}
	if nice > NiceMax {
		nice = NiceMax
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, int(pid), nice); err != nil {
		return 0, err
	}
	return nice, nil
}
