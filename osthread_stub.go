//go:build !linux

package thread

// Native thread controls are only wired on Linux; elsewhere they fail
// gracefully and the library degrades to bookkeeping-only naming.

func currentThreadID() int64 {
	return 0
}

func applyThreadName(tid int, name string) bool {
	return false
}

func setNativePriority(tid int, level PriorityLevel) bool {
	return false
}

func setNativeAffinity(tid int, mask uint64) bool {
	return false
}
