package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/runlevel5/ptop/internal/config"
	"github.com/runlevel5/ptop/internal/process"
	"github.com/runlevel5/ptop/internal/recorder"
	"github.com/runlevel5/ptop/internal/table"
)

func newRecordCmd() *cobra.Command {
	var (
		output string
		delay  string
		count  int
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record process samples to a SQLite database",
		Long:  "Sample the process table at a fixed interval, headless, appending every cycle to a SQLite database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd, output, delay, count)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "database path (default in the XDG data dir)")
	cmd.Flags().StringVarP(&delay, "delay", "d", "", "sampling interval (default: config delay)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after this many samples (0 = until interrupted)")

	return cmd
}

func runRecord(cmd *cobra.Command, output, delay string, count int) error {
	cfg, err := config.Load()
	if err != nil {
		log.Warn("config load failed", "err", err)
	}

	every := cfg.Delay
	if delay != "" {
		every, err = parseDelay(delay)
		if err != nil {
			return &exitError{code: 1, message: err.Error()}
		}
	}
	if every < config.MinDelay {
		every = config.MinDelay
	}

	path := output
	if path == "" {
		path = filepath.Join(xdg.DataHome, "ptop", "record.db")
	}

	rec, err := recorder.Open(path)
	if err != nil {
		return &exitError{code: 1, message: fmt.Sprintf("open recorder: %v", err)}
	}
	defer rec.Close()

	provider := process.New()
	tbl := table.New()
	scanOpts := process.ScanOptions{HideKernelThreads: cfg.HideKernelThreads}

	ctx := cmd.Context()
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	log.Info("recording", "path", path, "interval", every)

	written := 0
loop:
	for {
		snap, err := provider.Scan(scanOpts)
		if err != nil {
			log.Warn("scan failed", "err", err)
		} else {
			tbl.Merge(snap)
			recs := make([]*process.Record, 0, tbl.Len())
			for _, pid := range tbl.Order() {
				if r, ok := tbl.Get(pid); ok {
					recs = append(recs, r)
				}
			}
			tasks, threads, running := tbl.Counts()
			sample := recorder.Sample{
				Timestamp:  snap.Timestamp,
				CPUPercent: snap.CPUPercent,
				MemUsed:    snap.MemUsed,
				MemTotal:   snap.MemTotal,
				Load1:      snap.Load1,
				Load5:      snap.Load5,
				Load15:     snap.Load15,
				Tasks:      tasks,
				Threads:    threads,
				Running:    running,
			}
			if err := rec.WriteSample(sample, recs); err != nil {
				return &exitError{code: 1, message: fmt.Sprintf("write sample: %v", err)}
			}
			written++
			log.Debug("sample written", "processes", len(recs))
			if count > 0 && written >= count {
				break
			}
		}

		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
		}
	}

	log.Info("recording complete", "samples", written, "path", path)
	return nil
}
