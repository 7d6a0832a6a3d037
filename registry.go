package thread

import (
	"github.com/gocommons/go-commons-thread/collections"
)

// liveThreads maps goroutine id to the run record of every managed thread
// currently between bridge entry and exit. It backs FromCurrent and
// Checkpoint; entries are removed by the bridge itself, so the table never
// outlives a run.
var liveThreads = threadRegistry{m: collections.NewSyncIDMap()}

type threadRegistry struct {
	m *collections.SyncIDMap
}

func (r *threadRegistry) put(gid int64, s *runState) {
	r.m.Put(gid, s)
}

func (r *threadRegistry) remove(gid int64) {
	r.m.Remove(gid)
}

func (r *threadRegistry) get(gid int64) (*runState, bool) {
	v := r.m.Get(gid)
	if v == nil {
		return nil, false
	}
	return v.(*runState), true
}

// GetNumLive returns the number of managed threads currently running,
// including detached ones. Diagnostic.
func GetNumLive() int {
	return liveThreads.m.Size()
}
