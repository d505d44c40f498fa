package process

import (
	"syscall"

	gopsProcess "github.com/shirou/gopsutil/v4/process"
)

type linuxProvider struct {
	scanner
}

func New() Provider {
	return &linuxProvider{scanner: newScanner()}
}

func (p *linuxProvider) Kill(pid int32) error {
	return syscall.Kill(int(pid), syscall.SIGKILL)
}

func (p *linuxProvider) Terminate(pid int32) error {
	return syscall.Kill(int(pid), syscall.SIGTERM)
}

func (p *linuxProvider) Signal(pid int32, sig Signal) error {
	return syscall.Kill(int(pid), syscall.Signal(sig))
}

func (p *linuxProvider) IsRunning(pid int32) bool {
	proc, err := gopsProcess.NewProcess(pid)
	if err != nil {
		return false
	}
	running, err := proc.IsRunning()
	if err != nil {
		return false
	}
	return running
}
