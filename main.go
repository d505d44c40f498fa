package main

import (
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"

	"github.com/runlevel5/ptop/cmd"
)

// Populated by the release pipeline via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	log.SetPrefix("ptop")
	log.SetReportTimestamp(false)
	log.SetLevel(log.InfoLevel)

	// go install builds carry the module version instead of ldflags.
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}

	cmd.SetVersionInfo(version, commit, date)
	os.Exit(cmd.Execute())
}
