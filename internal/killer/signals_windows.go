package killer

import (
	"syscall"

	"github.com/runlevel5/ptop/internal/process"
)

// Windows can only terminate; both entries map to TerminateProcess in
// the provider.
var Signals = []NamedSignal{
	{process.Signal(syscall.SIGTERM), "SIGTERM"},
	{process.Signal(syscall.SIGKILL), "SIGKILL"},
}
