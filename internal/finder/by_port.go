package finder

import (
	"github.com/runlevel5/ptop/internal/detect"
	"github.com/runlevel5/ptop/internal/process"
)

func findByPort(provider process.Provider, query detect.Query) ([]process.Record, error) {
	return provider.FindByPort(query.Port)
}
