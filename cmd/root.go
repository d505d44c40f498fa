package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/runlevel5/ptop/internal/config"
	"github.com/runlevel5/ptop/internal/process"
	"github.com/runlevel5/ptop/internal/table"
	"github.com/runlevel5/ptop/internal/ui"
	"github.com/runlevel5/ptop/internal/view"
)

var versionString = "dev"

func SetVersionInfo(version, commit, date string) {
	versionString = version
	if commit != "none" {
		versionString = fmt.Sprintf("%s\n  commit: %s\n  built:  %s", version, commit, date)
	}
}

type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string { return e.message }

type monitorFlags struct {
	delay      string
	tree       bool
	filter     string
	sort       string
	user       string
	pids       []int32
	iterations int
	readonly   bool
	noColor    bool
	noMouse    bool
	ascii      bool
	completion string
}

func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)

	if err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			log.Error(ee.message)
			return ee.code
		}
		if ctx.Err() != nil {
			return 130
		}
		log.Error("unexpected error", "err", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	f := &monitorFlags{}

	cmd := &cobra.Command{
		Use:     "ptop",
		Short:   "Interactive process viewer",
		Long:    fmt.Sprintf("ptop - an interactive process viewer in the htop tradition.\n\nConfig: %s", config.Path()),
		Version: versionString,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v, _ := cmd.Flags().GetBool("verbose")
			q, _ := cmd.Flags().GetBool("quiet")
			if v {
				log.SetLevel(log.DebugLevel)
			}
			if q {
				log.SetLevel(log.FatalLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.completion != "" {
				return runCompletion(cmd, f.completion)
			}
			if f.sort == "help" {
				printSortKeys()
				return nil
			}
			return runMonitor(f)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddCommand(newKillCmd(), newRecordCmd(), newConfigCmd())

	cmd.Flags().StringVarP(&f.delay, "delay", "d", "", "refresh delay (e.g. 2s or 1.5)")
	cmd.Flags().BoolVarP(&f.tree, "tree", "t", false, "start in tree view")
	cmd.Flags().StringVarP(&f.filter, "filter", "F", "", "initial filter text")
	cmd.Flags().StringVarP(&f.sort, "sort", "s", "", "sort key (\"help\" lists keys)")
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "show only this user's processes")
	cmd.Flags().Int32SliceVarP(&f.pids, "pid", "p", nil, "show only these pids")
	cmd.Flags().IntVarP(&f.iterations, "iterations", "n", 0, "exit after this many refreshes")
	cmd.Flags().BoolVar(&f.readonly, "readonly", false, "disable kill and renice")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "monochrome output")
	cmd.Flags().BoolVar(&f.noMouse, "no-mouse", false, "disable mouse support")
	cmd.Flags().BoolVar(&f.ascii, "ascii", false, "draw the tree with ASCII characters")
	cmd.Flags().StringVarP(&f.completion, "completion", "c", "", "generate completion script (bash|zsh|fish|powershell)")

	cmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "suppress output")

	return cmd
}

func runMonitor(f *monitorFlags) error {
	cfg, err := config.Load()
	if err != nil {
		log.Warn("config load failed", "err", err)
	}

	delay := cfg.Delay
	if f.delay != "" {
		delay, err = parseDelay(f.delay)
		if err != nil {
			return &exitError{code: 1, message: err.Error()}
		}
	}
	if delay < config.MinDelay {
		delay = config.MinDelay
	}
	if delay > config.MaxDelay {
		delay = config.MaxDelay
	}

	sortKey, err := table.ParseKey(cfg.SortKey)
	if err != nil {
		sortKey = table.KeyCPU
	}
	sortDesc := cfg.SortDescending
	if f.sort != "" {
		sortKey, err = table.ParseKey(f.sort)
		if err != nil {
			return &exitError{code: 1, message: fmt.Sprintf("%v (try --sort help)", err)}
		}
		sortDesc = table.DefaultDescending(sortKey)
	}

	if f.noColor || os.Getenv("NO_COLOR") != "" {
		ui.DisableColors()
	}

	settings := view.Settings{
		SortKey:           sortKey,
		SortDesc:          sortDesc,
		TreeView:          cfg.TreeView || f.tree,
		FilterText:        f.filter,
		UserFilter:        f.user,
		PidFilter:         f.pids,
		HideKernelThreads: cfg.HideKernelThreads,
	}
	opts := ui.Options{
		Delay:      delay,
		Iterations: f.iterations,
		Mouse:      cfg.Mouse && !f.noMouse,
		ASCII:      cfg.ASCIIGraphics || f.ascii,
		ReadOnly:   cfg.ReadOnly || f.readonly,
		FullCmd:    cfg.ShowFullCommand,
	}

	if err := ui.Run(process.New(), cfg, settings, opts); err != nil {
		return &exitError{code: 1, message: fmt.Sprintf("monitor: %v", err)}
	}
	return nil
}

// parseDelay accepts a Go duration or a bare number of seconds, the
// way top's -d is commonly typed.
func parseDelay(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	if sec, err := strconv.ParseFloat(s, 64); err == nil && sec > 0 {
		return time.Duration(sec * float64(time.Second)), nil
	}
	return 0, fmt.Errorf("invalid delay %q", s)
}

func printSortKeys() {
	var names []string
	for _, k := range table.Keys() {
		names = append(names, string(k))
	}
	fmt.Println("sort keys:", strings.Join(names, ", "))
}
