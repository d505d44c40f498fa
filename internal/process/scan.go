package process

import (
	"time"

	gopsCPU "github.com/shirou/gopsutil/v4/cpu"
	gopsHost "github.com/shirou/gopsutil/v4/host"
	gopsLoad "github.com/shirou/gopsutil/v4/load"
	gopsMem "github.com/shirou/gopsutil/v4/mem"
	gopsNet "github.com/shirou/gopsutil/v4/net"
	gopsProcess "github.com/shirou/gopsutil/v4/process"
)

type scanner struct {
	users *userCache
}

func newScanner() scanner {
	return scanner{users: newUserCache()}
}

func (s *scanner) Scan(opts ScanOptions) (*Snapshot, error) {
	procs, err := gopsProcess.Processes()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Timestamp:  time.Now(),
		ActiveCPUs: 1,
	}
	if n, err := gopsCPU.Counts(true); err == nil && n > 0 {
		snap.ActiveCPUs = n
	}
	if vm, err := gopsMem.VirtualMemory(); err == nil {
		snap.MemTotal = vm.Total
		snap.MemUsed = vm.Used
	}
	if avg, err := gopsLoad.Avg(); err == nil {
		snap.Load1, snap.Load5, snap.Load15 = avg.Load1, avg.Load5, avg.Load15
	}
	if up, err := gopsHost.Uptime(); err == nil {
		snap.Uptime = time.Duration(up) * time.Second
	}
	if pct, err := gopsCPU.Percent(0, false); err == nil && len(pct) > 0 {
		snap.CPUPercent = pct[0]
	}

	snap.Records = make([]Record, 0, len(procs))
	for _, proc := range procs {
		rec := s.procToRecord(proc)
		if opts.HideKernelThreads && kernelThread(&rec) {
			continue
		}
		snap.Records = append(snap.Records, rec)
	}
	return snap, nil
}

func (s *scanner) procToRecord(proc *gopsProcess.Process) Record {
	rec := Record{
		Pid:        proc.Pid,
		CPUPercent: RateUnknown,
		ReadRate:   RateUnknown,
		WriteRate:  RateUnknown,
	}

	rec.Ppid, _ = proc.Ppid()
	rec.Name, _ = proc.Name()
	rec.Command, _ = proc.Cmdline()
	rec.User = s.users.username(proc)
	rec.Threads, _ = proc.NumThreads()
	rec.StartTime, _ = proc.CreateTime()

	if nice, err := proc.Nice(); err == nil {
		rec.Nice = nice
		rec.Priority = nice + 20
	}

	status, err := proc.Status()
	rec.State = stateChar(status, err)

	if mi, err := proc.MemoryInfo(); err == nil && mi != nil {
		rec.VirtBytes = mi.VMS
		rec.ResBytes = mi.RSS
	}

	if times, err := proc.Times(); err == nil && times != nil {
		rec.CPUTime = times.User + times.System
	} else {
		rec.CPUTime = -1
	}

	if io, err := proc.IOCounters(); err == nil && io != nil {
		rec.DiskRead = int64(io.ReadBytes)
		rec.DiskWrite = int64(io.WriteBytes)
	} else {
		rec.DiskRead = -1
		rec.DiskWrite = -1
	}

	return rec
}

func stateChar(status []string, err error) byte {
	if err != nil || len(status) == 0 {
		return '?'
	}
	switch status[0] {
	case gopsProcess.Running:
		return 'R'
	case gopsProcess.Sleep:
		return 'S'
	case gopsProcess.Blocked:
		return 'D'
	case gopsProcess.Idle:
		return 'I'
	case gopsProcess.Stop:
		return 'T'
	case gopsProcess.Zombie:
		return 'Z'
	case gopsProcess.Wait:
		return 'W'
	case gopsProcess.Lock:
		return 'L'
	default:
		return '?'
	}
}

// Kernel threads descend from kthreadd (pid 2).
func kernelThread(rec *Record) bool {
	return rec.Pid == 2 || rec.Ppid == 2
}

func (s *scanner) FindByPID(pid int32) (*Record, error) {
	proc, err := gopsProcess.NewProcess(pid)
	if err != nil {
		return nil, err
	}
	rec := s.procToRecord(proc)
	return &rec, nil
}

func (s *scanner) FindByPort(port uint32) ([]Record, error) {
	procs, err := gopsProcess.Processes()
	if err != nil {
		return nil, err
	}
	portMap := buildPortMap()
	var result []Record
	for _, proc := range procs {
		if portMap[proc.Pid] == port {
			rec := s.procToRecord(proc)
			rec.Port = port
			result = append(result, rec)
		}
	}
	return result, nil
}

func (s *scanner) Children(pid int32) ([]int32, error) {
	proc, err := gopsProcess.NewProcess(pid)
	if err != nil {
		return nil, err
	}
	children, err := proc.Children()
	if err != nil {
		return nil, err
	}
	pids := make([]int32, 0, len(children))
	for _, child := range children {
		pids = append(pids, child.Pid)
	}
	return pids, nil
}

func buildPortMap() map[int32]uint32 {
	portMap := make(map[int32]uint32)
	conns, err := gopsNet.Connections("all")
	if err != nil {
		return portMap
	}
	for _, conn := range conns {
		if conn.Status == "LISTEN" && conn.Pid != 0 {
			if _, exists := portMap[conn.Pid]; !exists {
				portMap[conn.Pid] = conn.Laddr.Port
			}
		}
	}
	return portMap
}
