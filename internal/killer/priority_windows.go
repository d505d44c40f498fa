package killer

import "errors"

const (
	NiceMin = -20
	NiceMax = 19
)

var errNoNice = errors.New("priority adjustment is not supported on windows")

func SetNice(pid int32, nice int) (int, error) {
	return 0, errNoNice
}
