package process

import (
	gopsProcess "github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/windows"
)

type windowsProvider struct {
	scanner
}

func New() Provider {
	return &windowsProvider{scanner: newScanner()}
}

func (p *windowsProvider) Kill(pid int32) error {
	handle, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, uint32(pid))
	if err != nil {
		return err
	}
	defer windows.CloseHandle(handle)
	return windows.TerminateProcess(handle, 1)
}

func (p *windowsProvider) Terminate(pid int32) error {
	return p.Kill(pid)
}

func (p *windowsProvider) Signal(pid int32, _ Signal) error {
	return p.Kill(pid)
}

func (p *windowsProvider) IsRunning(pid int32) bool {
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
