package config

import "time"

var defaultProtected = []string{
	"init",
	"systemd",
	"launchd",
	"kernel_task",
	"WindowServer",
	"loginwindow",
	"sshd",
}

var defaultConfig = Config{
	Delay:             1500 * time.Millisecond,
	SortKey:           "cpu",
	SortDescending:    true,
	TreeView:          false,
	HideKernelThreads: true,
	ShowFullCommand:   true,
	ASCIIGraphics:     false,
	Mouse:             true,
	ReadOnly:          false,
	GracefulTimeout:   5 * time.Second,
	DefaultEditor:     "",
	Protected:         defaultProtected,
	Aliases:           map[string]string{},
}
