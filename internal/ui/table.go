package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/runlevel5/ptop/internal/process"
)

// RenderTable prints matched processes as a bordered table, for the
// kill subcommand's --list output and its confirmation prompt. CPU%
// reads "-" for records from a single scan; rates need two samples.
func RenderTable(recs []process.Record, verbose bool) string {
	headers := []string{"PID", "Name", "User", "RES", "Port"}
	rightAligned := map[int]bool{0: true, 3: true, 4: true}
	if verbose {
		headers = append(headers, "S", "CPU%", "TIME+", "Cmdline")
		rightAligned[6] = true
		rightAligned[7] = true
	}

	rows := make([][]string, 0, len(recs))
	for i := range recs {
		r := &recs[i]
		port := ""
		if r.Port > 0 {
			port = strconv.Itoa(int(r.Port))
		}
		row := []string{
			strconv.Itoa(int(r.Pid)),
			r.Name,
			r.User,
			formatBytes(r.ResBytes),
			port,
		}
		if verbose {
			row = append(row,
				string(r.State),
				formatPercent(r.CPUPercent),
				formatCPUTime(r.CPUTime),
				truncate(r.CommandText(), 60),
			)
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numStyle := cellStyle.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dimColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if rightAligned[col] {
				return numStyle
			}
			return cellStyle
		})

	return t.Render()
}

func formatBytes(b uint64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case b >= gb:
		return strconv.FormatFloat(float64(b)/float64(gb), 'f', 1, 64) + "G"
	case b >= mb:
		return strconv.FormatFloat(float64(b)/float64(mb), 'f', 1, 64) + "M"
	case b >= kb:
		return strconv.FormatFloat(float64(b)/float64(kb), 'f', 1, 64) + "K"
	default:
		return strconv.FormatUint(b, 10) + "B"
	}
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
