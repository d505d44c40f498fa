package process

import (
	"syscall"

	gopsProcess "github.com/shirou/gopsutil/v4/process"
)

type darwinProvider struct {
	scanner
}

func New() Provider {
	return &darwinProvider{scanner: newScanner()}
}

func (p *darwinProvider) Kill(pid int32) error {
	return syscall.Kill(int(pid), syscall.SIGKILL)
}

func (p *darwinProvider) Terminate(pid int32) error {
	return syscall.Kill(int(pid), syscall.SIGTERM)
}

func (p *darwinProvider) Signal(pid int32, sig Signal) error {
	return syscall.Kill(int(pid), syscall.Signal(sig))
}

func (p *darwinProvider) IsRunning(pid int32) bool {
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
