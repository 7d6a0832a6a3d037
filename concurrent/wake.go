package concurrent

import (
	"sync"
	"time"
)

const (
	// WAKE_TABLE_SIZE is the number of signal slots; ids are a single byte.
	WAKE_TABLE_SIZE = 256
	// WAIT_INFINITE disables the deadline on blocking waits.
	WAIT_INFINITE = int64(-1)
)

// wakeEntry pairs a generation counter with the channel the current
// generation of waiters blocks on. WakeUp swaps the channel under the lock
// and closes the old one, so every waiter that snapshotted before the
// increment is woken exactly by that close.
type wakeEntry struct {
	lock sync.Mutex
	gen  AtomicLong
	ch   chan struct{}
}

// WakeTable is a table of broadcast signals addressed by a one-byte id.
// It answers exactly one question: has WakeUp(id) been called since the
// waiter last looked. There is no payload and no per-waiter delivery; a
// WakeUp before the wait started is invisible (edge-triggered).
//
// The table is caller-owned; create one with NewWakeTable and hand it to
// whatever needs signaling.
type WakeTable struct {
	entries [WAKE_TABLE_SIZE]wakeEntry
}

func NewWakeTable() *WakeTable {
	t := new(WakeTable)
	for i := range t.entries {
		t.entries[i].ch = make(chan struct{})
	}
	return t
}

// WakeUp publishes a new generation for id and wakes every goroutine
// currently blocked in WaitForWakeUp(id). The increment happens before the
// broadcast, under the entry lock, so anything written before WakeUp is
// visible to the woken waiters.
func (t *WakeTable) WakeUp(id uint8) {
	e := &t.entries[id]
	e.lock.Lock()
	e.gen.IncrementAndGet()
	close(e.ch)
	e.ch = make(chan struct{})
	e.lock.Unlock()
}

// WaitForWakeUp blocks until a WakeUp(id) that happens after the call takes
// its generation snapshot, or until timeoutMillis elapses. It returns true
// as soon as a generation change is observed and false only when the time
// budget is exhausted with no change. A timeout of WAIT_INFINITE blocks
// until signaled; 0 polls.
//
// A WakeUp racing the snapshot is never lost: the snapshot takes the live
// channel under the entry lock, and any later WakeUp closes exactly that
// channel. The generation is still re-checked on every wake, so the wait
// loops rather than trusting a stale channel.
func (t *WakeTable) WaitForWakeUp(id uint8, timeoutMillis int64) bool {
	e := &t.entries[id]
	e.lock.Lock()
	snap := e.gen.Get()
	ch := e.ch
	e.lock.Unlock()

	var timeout <-chan time.Time
	if timeoutMillis >= 0 {
		timer := time.NewTimer(time.Duration(timeoutMillis) * time.Millisecond)
		defer timer.Stop()
		timeout = timer.C
	}
	for {
		select {
		case <-ch:
		case <-timeout:
			return e.gen.Get() != snap
		}
		if e.gen.Get() != snap {
			return true
		}
		// Stale channel; re-arm and keep waiting.
		e.lock.Lock()
		ch = e.ch
		e.lock.Unlock()
	}
}

// Generation returns the current generation for id, for diagnostics.
func (t *WakeTable) Generation(id uint8) int64 {
	return t.entries[id].gen.Get()
}
