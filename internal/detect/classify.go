package detect

import (
	"strconv"
	"strings"
)

type QueryType int

const (
	TypePID QueryType = iota
	TypePort
	TypeGlob
	TypeName
)

func (t QueryType) String() string {
	switch t {
	case TypePID:
		return "pid"
	case TypePort:
		return "port"
	case TypeGlob:
		return "glob"
	case TypeName:
		return "name"
	default:
		return "unknown"
	}
}

type Query struct {
	Type QueryType
	Raw  string
	Port uint32
	PID  int32
	Name string
}

// Classify turns a kill query into a typed lookup. A bare number is a
// pid, a ":8080" form is a listening port, wildcard characters make a
// glob, anything else matches by name.
func Classify(input string) Query {
	input = strings.TrimSpace(input)
	q := Query{Raw: input}

	if num, err := strconv.ParseUint(input, 10, 31); err == nil {
		q.Type = TypePID
		q.PID = int32(num)
		return q
	}

	if rest, ok := strings.CutPrefix(input, ":"); ok {
		if port, err := strconv.ParseUint(rest, 10, 32); err == nil && port >= 1 && port <= 65535 {
			q.Type = TypePort
			q.Port = uint32(port)
			return q
		}
	}

	if strings.ContainsAny(input, "*?") {
		q.Type = TypeGlob
		q.Name = input
		return q
	}

	q.Type = TypeName
	q.Name = input
	return q
}
