package thread

import (
	"reflect"
	"time"
)

// MAX_WAIT_THREADS bounds how many handles a single WaitForThreads call can
// watch. Only the first MAX_WAIT_THREADS joinable handles are honored;
// callers with more must partition the wait into sequential groups.
const MAX_WAIT_THREADS = 64

// WaitForThreads blocks until at least one of the listed runs finishes or
// timeoutMillis elapses, and returns the index (in threads) of one finished
// handle. Empty, nil and non-joinable entries are skipped. It returns -1 on
// timeout or when no entry is joinable. The signaled handle is not joined
// or released; the caller still owns it and must Join to reclaim it.
func WaitForThreads(threads []*Thread, timeoutMillis int64) int {
	cases := make([]reflect.SelectCase, 0, MAX_WAIT_THREADS+1)
	index := make([]int, 0, MAX_WAIT_THREADS)
	for i, t := range threads {
		if t == nil || !t.IsJoinable() {
			continue
		}
		done := t.Done()
		if done == nil {
			continue
		}
		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(done),
		})
		index = append(index, i)
		if len(index) == MAX_WAIT_THREADS {
			break
		}
	}
	if len(index) == 0 {
		return -1
	}

	// Poll first so an already-finished run always wins over the timer.
	poll := append(cases[:len(cases):len(cases)], reflect.SelectCase{Dir: reflect.SelectDefault})
	if chosen, _, _ := reflect.Select(poll); chosen < len(index) {
		return index[chosen]
	}
	if timeoutMillis == 0 {
		return -1
	}

	timerIdx := -1
	if timeoutMillis > 0 {
		timer := time.NewTimer(time.Duration(timeoutMillis) * time.Millisecond)
		defer timer.Stop()
		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(timer.C),
		})
		timerIdx = len(cases) - 1
	}
	chosen, _, _ := reflect.Select(cases)
	if chosen == timerIdx {
		return -1
	}
	return index[chosen]
}
