package finder

import (
	"github.com/runlevel5/ptop/internal/detect"
	"github.com/runlevel5/ptop/internal/process"
	"github.com/runlevel5/ptop/internal/view"
)

func findByUser(provider process.Provider, query detect.Query) ([]process.Record, error) {
	all, err := scanAll(provider)
	if err != nil {
		return nil, err
	}

	var result []process.Record
	for i := range all {
		if view.MatchUser(&all[i], query.Name) {
			result = append(result, all[i])
		}
	}
	return result, nil
}
