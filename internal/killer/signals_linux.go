package killer

import (
	"syscall"

	"github.com/runlevel5/ptop/internal/process"
)

var Signals = []NamedSignal{
	{process.Signal(syscall.SIGHUP), "SIGHUP"},
	{process.Signal(syscall.SIGINT), "SIGINT"},
	{process.Signal(syscall.SIGQUIT), "SIGQUIT"},
	{process.Signal(syscall.SIGILL), "SIGILL"},
	{process.Signal(syscall.SIGTRAP), "SIGTRAP"},
	{process.Signal(syscall.SIGABRT), "SIGABRT"},
	{process.Signal(syscall.SIGBUS), "SIGBUS"},
	{process.Signal(syscall.SIGFPE), "SIGFPE"},
	{process.Signal(syscall.SIGKILL), "SIGKILL"},
	{process.Signal(syscall.SIGUSR1), "SIGUSR1"},
	{process.Signal(syscall.SIGSEGV), "SIGSEGV"},
	{process.Signal(syscall.SIGUSR2), "SIGUSR2"},
	{process.Signal(syscall.SIGPIPE), "SIGPIPE"},
	{process.Signal(syscall.SIGALRM), "SIGALRM"},
	{process.Signal(syscall.SIGTERM), "SIGTERM"},
	{process.Signal(syscall.SIGSTKFLT), "SIGSTKFLT"},
	{process.Signal(syscall.SIGCHLD), "SIGCHLD"},
	{process.Signal(syscall.SIGCONT), "SIGCONT"},
	{process.Signal(syscall.SIGSTOP), "SIGSTOP"},
	{process.Signal(syscall.SIGTSTP), "SIGTSTP"},
	{process.Signal(syscall.SIGTTIN), "SIGTTIN"},
	{process.Signal(syscall.SIGTTOU), "SIGTTOU"},
	{process.Signal(syscall.SIGURG), "SIGURG"},
	{process.Signal(syscall.SIGXCPU), "SIGXCPU"},
	{process.Signal(syscall.SIGXFSZ), "SIGXFSZ"},
	{process.Signal(syscall.SIGVTALRM), "SIGVTALRM"},
	{process.Signal(syscall.SIGPROF), "SIGPROF"},
	{process.Signal(syscall.SIGWINCH), "SIGWINCH"},
	{process.Signal(syscall.SIGIO), "SIGIO"},
	{process.Signal(syscall.SIGPWR), "SIGPWR"},
	{process.Signal(syscall.SIGSYS), "SIGSYS"},
}
