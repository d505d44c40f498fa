package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

type Kind int

const (
	Bool Kind = iota
	String
	Select
	Duration
	StringSlice
	StringMap
)

type Field struct {
	Key     string
	Label   string
	Group   string
	Kind    Kind
	Default any
	Options []string
	Desc    string
}

func (f *Field) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}

var sortKeyOptions = []string{
	"pid", "user", "pri", "nice", "virt", "res", "state",
	"cpu", "mem", "time", "threads", "read", "write", "command",
}

var Schema = []Field{
	{
		Key:     "delay",
		Label:   "Refresh delay",
		Group:   "monitor",
		Kind:    Duration,
		Default: 1500 * time.Millisecond,
		Desc:    "Time between process list refreshes",
	},
	{
		Key:     "sort_key",
		Label:   "Sort key",
		Group:   "monitor",
		Kind:    Select,
		Default: "cpu",
		Options: sortKeyOptions,
		Desc:    "Column the process list is sorted by",
	},
	{
		Key:     "sort_descending",
		Label:   "Sort descending",
		Group:   "monitor",
		Kind:    Bool,
		Default: true,
		Desc:    "Sort largest values first",
	},
	{
		Key:     "hide_kernel_threads",
		Label:   "Hide kernel threads",
		Group:   "monitor",
		Kind:    Bool,
		Default: true,
		Desc:    "Skip kernel threads when scanning",
	},
	{
		Key:     "tree_view",
		Label:   "Tree view",
		Group:   "display",
		Kind:    Bool,
		Default: false,
		Desc:    "Start with the parent/child tree layout",
	},
	{
		Key:     "show_full_command",
		Label:   "Full command line",
		Group:   "display",
		Kind:    Bool,
		Default: true,
		Desc:    "Show the full command line instead of the short name",
	},
	{
		Key:     "ascii_graphics",
		Label:   "ASCII graphics",
		Group:   "display",
		Kind:    Bool,
		Default: false,
		Desc:    "Draw the tree with plain ASCII characters",
	},
	{
		Key:     "mouse",
		Label:   "Mouse support",
		Group:   "display",
		Kind:    Bool,
		Default: true,
		Desc:    "React to mouse wheel scrolling",
	},
	{
		Key:     "readonly",
		Label:   "Read-only mode",
		Group:   "actions",
		Kind:    Bool,
		Default: false,
		Desc:    "Disable kill and renice",
	},
	{
		Key:     "graceful_timeout",
		Label:   "Graceful timeout",
		Group:   "actions",
		Kind:    Duration,
		Default: 5 * time.Second,
		Desc:    "Graceful shutdown timeout before SIGKILL",
	},
	{
		Key:     "default_editor",
		Label:   "Config editor",
		Kind:    Select,
		Default: "",
		Options: []string{"", "vim", "nvim", "nano", "vi"},
		Desc:    "Preferred editor for ptop config edit",
	},
	{
		Key:   "protected",
		Label: "Protected processes",
		Group: "protected",
		Kind:  StringSlice,
		Default: []string{
			"init", "systemd", "launchd", "kernel_task",
			"WindowServer", "loginwindow", "sshd",
		},
		Desc: "Processes that cannot be killed or reniced",
	},
	{
		Key:     "aliases",
		Label:   "Aliases",
		Group:   "aliases",
		Kind:    StringMap,
		Default: map[string]string{},
		Desc:    "Kill query shortcuts, alias name to target",
	},
}

func LookupField(key string) *Field {
	for i := range Schema {
		if Schema[i].Key == key {
			return &Schema[i]
		}
	}
	return nil
}

// ParseValue converts a raw string into a field's native type, with
// the field's options enforced for selects.
func ParseValue(f *Field, raw string) (any, error) {
	switch f.Kind {
	case Bool:
		return strconv.ParseBool(raw)
	case String:
		return raw, nil
	case Select:
		v := strings.TrimSpace(raw)
		if len(f.Options) > 0 && !slices.Contains(f.Options, v) {
			return nil, fmt.Errorf("invalid value %q for %s (options: %s)",
				raw, f.Key, strings.Join(f.Options, ", "))
		}
		return v, nil
	case Duration:
		return time.ParseDuration(raw)
	case StringSlice:
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	case StringMap:
		return nil, fmt.Errorf("%q is a collection type and cannot be set directly", f.Key)
	default:
		return nil, fmt.Errorf("unknown kind %d", f.Kind)
	}
}

// FormatValue renders a field value the way it would appear in the
// config file.
func FormatValue(f *Field, val any) string {
	switch f.Kind {
	case Bool:
		return strconv.FormatBool(val.(bool))
	case String, Select:
		return fmt.Sprintf("%q", val.(string))
	case Duration:
		return fmt.Sprintf("%q", val.(time.Duration).String())
	case StringSlice:
		s := val.([]string)
		quoted := make([]string, len(s))
		for i, v := range s {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case StringMap:
		m := val.(map[string]string)
		if len(m) == 0 {
			return "(none)"
		}
		lines := make([]string, 0, len(m))
		for _, k := range slices.Sorted(maps.Keys(m)) {
			lines = append(lines, fmt.Sprintf("  %s = %q", k, m[k]))
		}
		return strings.Join(lines, "\n")
	default:
		return fmt.Sprintf("%v", val)
	}
}
