package view

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/runlevel5/ptop/internal/process"
)

// MatchCommand is the filter predicate: case-insensitive substring over
// the command text. Empty text matches everything.
func MatchCommand(rec *process.Record, text string) bool {
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.CommandText()), strings.ToLower(text))
}

func MatchUser(rec *process.Record, user string) bool {
	if user == "" {
		return true
	}
	return strings.EqualFold(rec.User, user)
}

func MatchPids(rec *process.Record, pids []int32) bool {
	if len(pids) == 0 {
		return true
	}
	return slices.Contains(pids, rec.Pid)
}

// MatchName matches an exact process name or a cmdline substring, both
// case-insensitive. Used by one-shot queries.
func MatchName(rec *process.Record, name string) bool {
	lower := strings.ToLower(name)
	if strings.ToLower(rec.Name) == lower {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Command), lower)
}

func MatchGlob(rec *process.Record, pattern string) bool {
	return matchGlob(rec.Name, pattern) || matchGlob(rec.Command, pattern)
}

func matchGlob(value, pattern string) bool {
	matched, err := filepath.Match(strings.ToLower(pattern), strings.ToLower(value))
	if err != nil {
		return false
	}
	return matched
}
