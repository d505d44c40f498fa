package view

import (
	"strconv"
	"strings"

	"github.com/runlevel5/ptop/internal/table"
)

// Settings is the per-cycle view state the core reads. Owned by the
// shell; never persisted by the core.
type Settings struct {
	SortKey           table.Key
	SortDesc          bool
	TreeView          bool
	FilterText        string
	SearchText        string
	UserFilter        string
	PidFilter         []int32
	FollowPid         int32
	HideKernelThreads bool
}

// Narrowed reports whether any membership filter is active. Narrowing
// suspends tree layout.
func (s Settings) Narrowed() bool {
	return s.FilterText != "" || s.UserFilter != "" || len(s.PidFilter) > 0
}

// Fingerprint covers exactly the fields that change display-list
// membership or order. Search text and the follow target move the
// selection only, so they are excluded.
func (s Settings) Fingerprint() string {
	var b strings.Builder
	b.WriteString(string(s.SortKey))
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(s.SortDesc))
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(s.TreeView))
	b.WriteByte('|')
	b.WriteString(s.FilterText)
	b.WriteByte('|')
	b.WriteString(s.UserFilter)
	b.WriteByte('|')
	for _, pid := range s.PidFilter {
		b.WriteString(strconv.Itoa(int(pid)))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(s.HideKernelThreads))
	return b.String()
}
