package killer

import (
	"fmt"
	"strings"

	"github.com/runlevel5/ptop/internal/process"
)

type Action int

const (
	ActionTerminate Action = iota
	ActionKill
	ActionGraceful
	ActionSignal
)

var actionNames = map[Action]string{
	ActionTerminate: "terminate",
	ActionKill:      "kill",
	ActionGraceful:  "graceful",
	ActionSignal:    "signal",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// NamedSignal pairs a deliverable signal with its display name for the
// signal menu. The per-platform tables live in signals_*.go.
type NamedSignal struct {
	Sig  process.Signal
	Name string
}

func (s NamedSignal) String() string {
	return fmt.Sprintf("%2d %s", int(s.Sig), s.Name)
}

// ParseSignal resolves a name like "TERM", "SIGTERM" or a number from
// this platform's table.
func ParseSignal(raw string) (process.Signal, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	name = strings.TrimPrefix(name, "SIG")
	for _, s := range Signals {
		if strings.TrimPrefix(s.Name, "SIG") == name {
			return s.Sig, nil
		}
		if fmt.Sprintf("%d", int(s.Sig)) == name {
			return s.Sig, nil
		}
	}
	return 0, fmt.Errorf("unknown signal %q", raw)
}
