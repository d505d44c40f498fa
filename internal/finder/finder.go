package finder

import (
	"fmt"

	"github.com/runlevel5/ptop/internal/detect"
	"github.com/runlevel5/ptop/internal/process"
)

// A strategy resolves one query form against the provider.
type strategy func(provider process.Provider, query detect.Query) ([]process.Record, error)

type Finder struct {
	provider   process.Provider
	strategies map[detect.QueryType]strategy
}

func New(provider process.Provider) *Finder {
	return &Finder{
		provider: provider,
		strategies: map[detect.QueryType]strategy{
			detect.TypePID:  findByPID,
			detect.TypePort: findByPort,
			detect.TypeName: findByText,
			detect.TypeGlob: findByText,
		},
	}
}

func (f *Finder) Find(query detect.Query) ([]process.Record, error) {
	resolve, ok := f.strategies[query.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported query type: %s", query.Type)
	}
	return resolve(f.provider, query)
}

func (f *Finder) FindByUser(username string) ([]process.Record, error) {
	return findByUser(f.provider, detect.Query{Name: username})
}

// scanAll is the shared full-scan path for the text strategies. Kernel
// threads are never kill targets, so they stay hidden here.
func scanAll(provider process.Provider) ([]process.Record, error) {
	snap, err := provider.Scan(process.ScanOptions{HideKernelThreads: true})
	if err != nil {
		return nil, err
	}
	return snap.Records, nil
}
