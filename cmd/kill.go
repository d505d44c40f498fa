package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/runlevel5/ptop/internal/config"
	"github.com/runlevel5/ptop/internal/detect"
	"github.com/runlevel5/ptop/internal/finder"
	"github.com/runlevel5/ptop/internal/killer"
	"github.com/runlevel5/ptop/internal/process"
	"github.com/runlevel5/ptop/internal/ui"
	"github.com/runlevel5/ptop/internal/view"
)

type killFlags struct {
	port     uint32
	name     string
	pid      int32
	user     string
	force    bool
	all      bool
	yes      bool
	dryRun   bool
	graceful bool
	timeout  string
	tree     bool
	list     bool
	interact bool
}

func newKillCmd() *cobra.Command {
	f := &killFlags{}

	cmd := &cobra.Command{
		Use:   "kill [query]",
		Short: "Kill processes by PID, port, name, or pattern",
		Long:  "Kill processes matched by a pid, a :port, a name, or a glob pattern.\nAliases from the config are resolved first.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !hasQueryFlags(f) {
				return cmd.Help()
			}
			verbose, _ := cmd.Flags().GetBool("verbose")
			quiet, _ := cmd.Flags().GetBool("quiet")
			return runKill(f, args, verbose, quiet)
		},
	}

	cmd.Flags().Uint32VarP(&f.port, "port", "p", 0, "kill by listening port")
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "kill by process name")
	cmd.Flags().Int32Var(&f.pid, "pid", 0, "kill by PID")
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "filter by user")
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "force kill (SIGKILL)")
	cmd.Flags().BoolVarP(&f.all, "all", "a", false, "kill all matching processes")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "skip confirmation")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "show what would be killed")
	cmd.Flags().BoolVarP(&f.graceful, "graceful", "g", false, "graceful shutdown (SIGTERM then SIGKILL)")
	cmd.Flags().StringVar(&f.timeout, "timeout", "", "graceful shutdown timeout (default from config)")
	cmd.Flags().BoolVarP(&f.tree, "tree", "t", false, "kill the process tree, children first")
	cmd.Flags().BoolVarP(&f.list, "list", "l", false, "list matching processes without killing")
	cmd.Flags().BoolVarP(&f.interact, "interactive", "i", false, "interactive process selection")

	return cmd
}

func hasQueryFlags(f *killFlags) bool {
	return f.port > 0 || f.name != "" || f.pid > 0 || f.user != ""
}

func runKill(f *killFlags, args []string, verbose, quiet bool) error {
	cfg, err := config.Load()
	if err != nil {
		log.Warn("config load failed", "err", err)
	}

	provider := process.New()
	find := finder.New(provider)
	kill := killer.New(provider)

	query := resolveKillQuery(f, args, cfg)

	var recs []process.Record
	switch {
	case f.user != "" && query == nil:
		recs, err = find.FindByUser(f.user)
	case query != nil:
		recs, err = find.Find(*query)
		if f.user != "" {
			recs = filterByUser(recs, f.user)
		}
	default:
		return &exitError{code: 1, message: "no query provided: pass a pid, :port, name, or use flags"}
	}
	if err != nil {
		return &exitError{code: 1, message: fmt.Sprintf("find error: %v", err)}
	}

	if len(recs) == 0 {
		log.Info("no matching processes found")
		return nil
	}

	if f.list {
		fmt.Println(ui.RenderTable(recs, verbose))
		return nil
	}

	recs = filterProtected(recs, cfg)
	if len(recs) == 0 {
		return &exitError{code: 1, message: "all matching processes are protected"}
	}

	if f.interact || (len(recs) > 1 && !f.all && !f.yes && !f.dryRun) {
		recs, err = ui.PickProcesses(recs)
		if err != nil {
			return &exitError{code: 130, message: "selection cancelled"}
		}
		if len(recs) == 0 {
			return nil
		}
	} else if len(recs) > 1 && !f.all && !f.dryRun {
		fmt.Println(ui.RenderTable(recs, verbose))
		return &exitError{code: 1, message: fmt.Sprintf("found %d processes: use -a to kill all, -i for interactive selection", len(recs))}
	}

	action := killer.ActionTerminate
	label := "Terminate"
	if f.force {
		action = killer.ActionKill
		label = "Kill"
	} else if f.graceful {
		action = killer.ActionGraceful
	}

	if !f.yes && !f.dryRun {
		fmt.Println(ui.RenderTable(recs, verbose))
		confirmed, err := ui.Confirm(
			fmt.Sprintf("%s %d process(es)?", label, len(recs)),
			summarizeTargets(recs),
			label)
		if err != nil || !confirmed {
			return &exitError{code: 130, message: "cancelled"}
		}
	}

	timeout := cfg.GracefulTimeout
	if f.timeout != "" {
		timeout, err = time.ParseDuration(f.timeout)
		if err != nil {
			return &exitError{code: 1, message: fmt.Sprintf("invalid timeout: %v", err)}
		}
	}

	opts := killer.Options{
		Action:  action,
		Tree:    f.tree,
		Timeout: timeout,
		DryRun:  f.dryRun,
	}

	results := kill.Execute(recs, opts)

	hasFailure := false
	for _, r := range results {
		if !quiet {
			fmt.Println(killer.FormatResult(r))
		}
		if !r.Success {
			hasFailure = true
		}
	}

	if hasFailure {
		return &exitError{code: 1, message: "some processes could not be killed"}
	}
	return nil
}

func resolveKillQuery(f *killFlags, args []string, cfg *config.Config) *detect.Query {
	if f.port > 0 {
		return &detect.Query{Type: detect.TypePort, Port: f.port, Raw: fmt.Sprintf(":%d", f.port)}
	}
	if f.pid > 0 {
		return &detect.Query{Type: detect.TypePID, PID: f.pid, Raw: fmt.Sprintf("%d", f.pid)}
	}
	if f.name != "" {
		input := cfg.ResolveAlias(f.name)
		q := detect.Classify(input)
		if q.Type == detect.TypePID || q.Type == detect.TypePort {
			q.Type = detect.TypeName
			q.Name = input
		}
		return &q
	}
	if len(args) > 0 {
		input := cfg.ResolveAlias(args[0])
		q := detect.Classify(input)
		return &q
	}
	return nil
}

// summarizeTargets names the first few targets for the confirm prompt.
func summarizeTargets(recs []process.Record) string {
	const show = 3
	names := make([]string, 0, show+1)
	for i := 0; i < len(recs) && i < show; i++ {
		names = append(names, fmt.Sprintf("%s (%d)", recs[i].Name, recs[i].Pid))
	}
	if rest := len(recs) - show; rest > 0 {
		names = append(names, fmt.Sprintf("and %d more", rest))
	}
	return strings.Join(names, ", ")
}

func filterByUser(recs []process.Record, user string) []process.Record {
	var result []process.Record
	for i := range recs {
		if view.MatchUser(&recs[i], user) {
			result = append(result, recs[i])
		}
	}
	return result
}

func filterProtected(recs []process.Record, cfg *config.Config) []process.Record {
	var result []process.Record
	for i := range recs {
		if cfg.IsProtected(recs[i].Name) {
			log.Warn("skipping protected process", "name", recs[i].Name, "pid", recs[i].Pid)
			continue
		}
		result = append(result, recs[i])
	}
	return result
}
