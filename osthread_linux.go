//go:build linux

package thread

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func currentThreadID() int64 {
	return int64(unix.Gettid())
}

// applyThreadName writes the kernel comm of the target thread, visible in
// debuggers and /proc. The kernel caps comm at 15 bytes.
func applyThreadName(tid int, name string) bool {
	if tid <= 0 || name == "" {
		return false
	}
	if len(name) > 15 {
		name = name[:15]
	}
	err := os.WriteFile(fmt.Sprintf("/proc/self/task/%d/comm", tid), []byte(name), 0o644)
	return err == nil
}

func setNativePriority(tid int, level PriorityLevel) bool {
	if tid <= 0 {
		return false
	}
	var nice int
	switch level {
	case PRIORITY_LOWEST:
		nice = 19
	case PRIORITY_BELOW_NORMAL:
		nice = 10
	case PRIORITY_NORMAL:
		nice = 0
	case PRIORITY_ABOVE_NORMAL:
		nice = -10
	case PRIORITY_HIGHEST:
		nice = -20
	default:
		return false
	}
	return unix.Setpriority(unix.PRIO_PROCESS, tid, nice) == nil
}

// setNativeAffinity pins the thread to the CPUs in mask. The mask must name
// only CPUs the process itself is allowed to run on.
func setNativeAffinity(tid int, mask uint64) bool {
	if tid <= 0 || mask == 0 {
		return false
	}
	var allowed unix.CPUSet
	if err := unix.SchedGetaffinity(os.Getpid(), &allowed); err != nil {
		return false
	}
	var set unix.CPUSet
	for i := 0; i < 64; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		if !allowed.IsSet(i) {
			return false
		}
		set.Set(i)
	}
	return unix.SchedSetaffinity(tid, &set) == nil
}
