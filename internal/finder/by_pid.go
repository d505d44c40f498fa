package finder

import (
	"github.com/runlevel5/ptop/internal/detect"
	"github.com/runlevel5/ptop/internal/process"
)

func findByPID(provider process.Provider, query detect.Query) ([]process.Record, error) {
	rec, err := provider.FindByPID(query.PID)
	if err != nil {
		return nil, err
	}
	return []process.Record{*rec}, nil
}
