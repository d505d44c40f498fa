package finder

import (
	"github.com/runlevel5/ptop/internal/detect"
	"github.com/runlevel5/ptop/internal/process"
	"github.com/runlevel5/ptop/internal/view"
)

// findByText serves both the name and glob query forms; the matcher
// is picked up front.
func findByText(provider process.Provider, query detect.Query) ([]process.Record, error) {
	match := view.MatchName
	if query.Type == detect.TypeGlob {
		match = view.MatchGlob
	}

	all, err := scanAll(provider)
	if err != nil {
		return nil, err
	}

	var result []process.Record
	for i := range all {
		if match(&all[i], query.Name) {
			result = append(result, all[i])
		}
	}
	return result, nil
}
