package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/runlevel5/ptop/internal/process"
)

// PickProcesses is the multi-select fallback when a kill query matches
// more than one process.
func PickProcesses(recs []process.Record) ([]process.Record, error) {
	options := make([]huh.Option[int], 0, len(recs))
	for i := range recs {
		r := &recs[i]
		label := fmt.Sprintf("%-8d %-20s %-12s %8s",
			r.Pid, truncate(r.Name, 20), truncate(r.User, 12), formatBytes(r.ResBytes))
		if r.Port > 0 {
			label += fmt.Sprintf("  :%d", r.Port)
		}
		options = append(options, huh.NewOption(label, i))
	}

	var selected []int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Select processes to kill").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	picked := make([]process.Record, 0, len(selected))
	for _, idx := range selected {
		picked = append(picked, recs[idx])
	}
	return picked, nil
}
