package thread

import (
	"github.com/gocommons/go-commons-thread/concurrent"
)

const (
	// WAIT_INFINITE disables the deadline on Join, WaitForThreads and
	// WaitForWakeUp. A timeout of 0 polls.
	WAIT_INFINITE = concurrent.WAIT_INFINITE

	DEFAULT_SUSPENDED      = false
	DEFAULT_LOCK_OS_THREAD = false
)

// PriorityLevel is the dynamic priority of a run within the process.
type PriorityLevel int

const (
	PRIORITY_LOWEST       PriorityLevel = -2
	PRIORITY_BELOW_NORMAL PriorityLevel = -1
	PRIORITY_NORMAL       PriorityLevel = 0
	PRIORITY_ABOVE_NORMAL PriorityLevel = 1
	PRIORITY_HIGHEST      PriorityLevel = 2
)

// StartOptions configures one Start call.
type StartOptions struct {
	// Suspended delays user code until Resume is called on the handle.
	Suspended bool

	// LockOSThread pins the run to a dedicated OS thread for its whole
	// lifetime. Required for the native name, priority and affinity
	// controls to reach the kernel.
	LockOSThread bool

	// Name is a debug-visible thread name, best effort.
	Name string

	// Priority is applied once the run is pinned; PRIORITY_NORMAL is a
	// no-op. Ignored unless LockOSThread is set.
	Priority PriorityLevel

	// AffinityMask restricts the pinned thread to the given logical CPUs,
	// encoded as 1<<cpu bits (see CPU and CPUMask). 0 leaves the mask
	// untouched. Ignored unless LockOSThread is set.
	AffinityMask uint64
}

func NewDefaultStartOptions() *StartOptions {
	return &StartOptions{
		Suspended:    DEFAULT_SUSPENDED,
		LockOSThread: DEFAULT_LOCK_OS_THREAD,
		Priority:     PRIORITY_NORMAL,
	}
}

// CPU returns the affinity mask bit for one logical CPU, or 0 for an index
// outside the 0..63 range a mask can express.
func CPU(idx int) uint64 {
	if idx < 0 || idx > 63 {
		return 0
	}
	return 1 << uint(idx)
}

// CPUMask combines several logical CPU indexes into one affinity mask.
func CPUMask(idxs ...int) uint64 {
	var mask uint64
	for _, idx := range idxs {
		mask |= CPU(idx)
	}
	return mask
}
