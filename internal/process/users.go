package process

import (
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	gopsProcess "github.com/shirou/gopsutil/v4/process"
)

// Username lookups hit the passwd database, so resolutions are cached
// per pid. The TTL bounds staleness across pid reuse.
const userCacheTTL = 10 * time.Minute

type userCache struct {
	names *cache.Cache[int32, string]
}

func newUserCache() *userCache {
	return &userCache{names: cache.New[int32, string]()}
}

func (u *userCache) username(proc *gopsProcess.Process) string {
	if name, ok := u.names.Get(proc.Pid); ok {
		return name
	}
	name, err := proc.Username()
	if err != nil || name == "" {
		return ""
	}
	u.names.Set(proc.Pid, name, cache.WithExpiration(userCacheTTL))
	return name
}
