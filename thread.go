package thread

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/petermattis/goid"
	"github.com/sirupsen/logrus"

	"github.com/gocommons/go-commons-thread/concurrent"
)

// noCopy trips `go vet` on value copies of the types that embed it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// runState is the record shared between a handle and the goroutine it
// started. The goroutine keeps it alive after a Detach, so queries through
// a still-owning handle and the run itself never race on freed state.
type runState struct {
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	gid concurrent.AtomicLong // goroutine id, set by the bridge before user code
	tid concurrent.AtomicLong // kernel thread id, only when pinned

	finished  concurrent.AtomicBool
	exitCode  concurrent.AtomicInteger
	startedAt int64 // unix millis, written once before the spawn
	endedAt   concurrent.AtomicLong

	locked bool

	gateLock sync.Mutex
	gateCh   chan struct{} // non-nil while suspended

	nameLock sync.Mutex
	name     string
}

func (s *runState) getName() string {
	s.nameLock.Lock()
	defer s.nameLock.Unlock()
	return s.name
}

func (s *runState) setName(name string) {
	s.nameLock.Lock()
	s.name = name
	s.nameLock.Unlock()
}

func (s *runState) suspendGate() {
	s.gateLock.Lock()
	if s.gateCh == nil {
		s.gateCh = make(chan struct{})
	}
	s.gateLock.Unlock()
}

func (s *runState) resumeGate() {
	s.gateLock.Lock()
	if s.gateCh != nil {
		close(s.gateCh)
		s.gateCh = nil
	}
	s.gateLock.Unlock()
}

// awaitGate parks while the gate is closed. It returns false once the run
// context is cancelled, whether or not the gate is open.
func (s *runState) awaitGate() bool {
	for {
		s.gateLock.Lock()
		ch := s.gateCh
		s.gateLock.Unlock()
		if ch == nil {
			select {
			case <-s.ctx.Done():
				return false
			default:
				return true
			}
		}
		select {
		case <-ch:
		case <-s.ctx.Done():
			return false
		}
	}
}

// Thread owns at most one live run. Handles are move-only: pass them by
// pointer and transfer ownership with TakeFrom; `go vet` rejects value
// copies. Query methods are safe to call from any goroutine while the run
// is in flight; the mutating operations belong to the single owner.
type Thread struct {
	noCopy noCopy

	lock      sync.Mutex
	state     *runState
	lastExit  ExitCode
	exitValid bool
	suspended bool
	borrowed  bool // FromCurrent wrapper: identification only, never joinable
	name      string
}

// New returns an empty handle that owns no run.
func New() *Thread {
	return &Thread{}
}

// Start packages fn and a by-value copy of args into a Closure and runs it
// on a new goroutine. It fails when the handle already owns a live run or
// when fn/args cannot be bound; on failure nothing is retained. If fn's
// first parameter is a context.Context, the run context is injected (it is
// cancelled by Terminate).
func (t *Thread) Start(fn interface{}, args ...interface{}) bool {
	return t.StartWithOptions(nil, fn, args...)
}

// StartSuspended is Start with the new run held before user code until
// Resume is called.
func (t *Thread) StartSuspended(fn interface{}, args ...interface{}) bool {
	opts := NewDefaultStartOptions()
	opts.Suspended = true
	return t.StartWithOptions(opts, fn, args...)
}

// StartRunnable starts r.Run on a new goroutine.
func (t *Thread) StartRunnable(r Runnable) bool {
	if r == nil {
		return false
	}
	return t.Start(r.Run)
}

// StartRunnableWithContext starts r.RunContext with the run context.
func (t *Thread) StartRunnableWithContext(r RunnableWithContext) bool {
	if r == nil {
		return false
	}
	return t.Start(r.RunContext)
}

// StartWithOptions is Start with explicit options; opts may be nil for the
// defaults. Suspend/Resume/Start must not race each other on one handle
// without external synchronization.
func (t *Thread) StartWithOptions(opts *StartOptions, fn interface{}, args ...interface{}) bool {
	if opts == nil {
		opts = NewDefaultStartOptions()
	}
	c, err := NewClosure(fn, args...)
	if err != nil {
		logrus.Debugf("thread: start rejected: %v", err)
		return false
	}

	t.lock.Lock()
	if t.state != nil || t.borrowed {
		t.lock.Unlock()
		return false
	}
	suspended := t.suspended || opts.Suspended
	t.suspended = suspended

	ctx, cancel := context.WithCancel(context.Background())
	s := &runState{
		done:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
		locked:    opts.LockOSThread,
		startedAt: currentTimeMillis(),
		name:      opts.Name,
	}
	s.exitCode.Set(int32(STILL_ACTIVE))
	if suspended {
		s.gateCh = make(chan struct{})
	}
	if opts.Name == "" {
		s.setName(t.name)
	} else {
		t.name = opts.Name
	}
	t.exitValid = false
	t.state = s
	t.lock.Unlock()

	go s.run(c, opts)
	logrus.WithField("name", s.getName()).Debug("thread: started")
	return true
}

// run is the bridge: the fixed entry point every run goes through. It
// registers the run, honors the suspend gate, invokes the closure exactly
// once with fault containment, then publishes the exit code and closes the
// done channel.
func (s *runState) run(c *Closure, opts *StartOptions) {
	gid := goid.Get()
	s.gid.Set(gid)
	liveThreads.put(gid, s)

	code := THREAD_TERMINATED
	defer func() {
		s.exitCode.Set(int32(code))
		s.endedAt.Set(currentTimeMillis())
		s.finished.Set(true)
		close(s.done)
		liveThreads.remove(gid)
		s.cancel()
	}()

	if s.locked {
		// Deliberately never unlocked: the runtime discards the OS thread
		// when a locked goroutine exits, instead of reusing it.
		runtime.LockOSThread()
		tid := currentThreadID()
		s.tid.Set(tid)
		if name := s.getName(); name != "" {
			applyThreadName(int(tid), name)
		}
		if opts.Priority != PRIORITY_NORMAL {
			setNativePriority(int(tid), opts.Priority)
		}
		if opts.AffinityMask != 0 {
			setNativeAffinity(int(tid), opts.AffinityMask)
		}
	}

	if !s.awaitGate() {
		// Terminated before user code ran.
		return
	}
	code, _ = c.Invoke(s.ctx)
}

// Join blocks until the run finishes or timeoutMillis elapses. On
// completion it caches the exit code, releases the run record exactly once
// and returns true; on timeout the handle keeps owning the live run and a
// later Join may succeed. Join fails immediately on an empty or non-owning
// handle and on self-join.
func (t *Thread) Join(timeoutMillis int64) bool {
	t.lock.Lock()
	s := t.state
	if s == nil || t.borrowed {
		t.lock.Unlock()
		return false
	}
	if s.gid.Get() == goid.Get() {
		// A thread cannot wait for its own end.
		t.lock.Unlock()
		return false
	}
	t.lock.Unlock()

	if !waitDone(s.done, timeoutMillis) {
		return false
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	if t.state != s {
		// Released by a concurrent Detach/Terminate/TakeFrom.
		return false
	}
	t.lastExit = ExitCode(s.exitCode.Get())
	t.exitValid = true
	t.state = nil
	logrus.WithField("exitCode", t.lastExit).Debug("thread: joined")
	return true
}

func waitDone(done <-chan struct{}, timeoutMillis int64) bool {
	if timeoutMillis < 0 {
		<-done
		return true
	}
	select {
	case <-done:
		return true
	default:
	}
	if timeoutMillis == 0 {
		return false
	}
	timer := time.NewTimer(time.Duration(timeoutMillis) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

// Detach releases the run record without waiting; the run continues on its
// own. The cached status becomes THREAD_DETACHED and the suspended flag is
// cleared. Calling Detach on an empty handle is a no-op. Detach is the
// scope-exit release path: `defer t.Detach()` mirrors the destructor of the
// wrapped resource.
func (t *Thread) Detach() {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.detachLocked()
}

func (t *Thread) detachLocked() {
	s := t.state
	if s == nil || t.borrowed {
		return
	}
	t.state = nil
	t.lastExit = THREAD_DETACHED
	t.exitValid = true
	t.suspended = false
	// A parked run with no owner left to resume it would leak; let it go.
	s.resumeGate()
	logrus.Debug("thread: detached")
}

// Terminate requests an immediate stop: the run context is cancelled, the
// status is cached as THREAD_TERMINATED and the record is released. A
// callable that watches its context (or calls Checkpoint) stops promptly;
// one that ignores it keeps running detached. Last resort — prefer a
// cooperative stop through the run context.
func (t *Thread) Terminate() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	s := t.state
	if s == nil || t.borrowed {
		return false
	}
	s.cancel()
	t.state = nil
	t.lastExit = THREAD_TERMINATED
	t.exitValid = true
	t.suspended = false
	logrus.Debug("thread: terminated")
	return true
}

// Suspend asks the run to pause. The flag is also consulted by the next
// Start, so Suspend on an empty handle arms a suspended start. A run
// already past the start gate pauses only at Checkpoint calls; this is a
// diagnostic control, not a synchronization primitive. Returns false when
// no run is owned.
func (t *Thread) Suspend() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.borrowed {
		return false
	}
	t.suspended = true
	s := t.state
	if s == nil {
		return false
	}
	s.suspendGate()
	return true
}

// Resume reopens the gate and clears the suspended flag. Returns false when
// no run is owned.
func (t *Thread) Resume() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.borrowed {
		return false
	}
	t.suspended = false
	s := t.state
	if s == nil {
		return false
	}
	s.resumeGate()
	return true
}

// IsJoinable reports whether the handle owns a run that Join could wait on.
func (t *Thread) IsJoinable() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.state != nil && !t.borrowed
}

// IsRunning reports whether an owned run has not finished yet.
func (t *Thread) IsRunning() bool {
	s := t.snapshotState()
	return s != nil && !s.finished.Get()
}

// HasFinished reports whether the run reached a terminal state. On an empty
// handle it is true only when a terminal status was cached earlier; an
// empty handle that never ran reports false.
func (t *Thread) HasFinished() bool {
	t.lock.Lock()
	s := t.state
	valid := t.exitValid
	t.lock.Unlock()
	if s == nil {
		return valid
	}
	return s.finished.Get()
}

// GetExitCode returns the live or cached exit code: STILL_ACTIVE while the
// owned run is in flight, the cached code after a release, and
// EXIT_CODE_INVALID when nothing is known.
func (t *Thread) GetExitCode() ExitCode {
	t.lock.Lock()
	s := t.state
	valid := t.exitValid
	last := t.lastExit
	t.lock.Unlock()
	if s != nil {
		if !s.finished.Get() {
			return STILL_ACTIVE
		}
		return ExitCode(s.exitCode.Get())
	}
	if valid {
		return last
	}
	return EXIT_CODE_INVALID
}

// GetID returns the goroutine id of the run, or 0 when empty. The id is
// published by the bridge, so it can read 0 for an instant after Start.
func (t *Thread) GetID() int64 {
	s := t.snapshotState()
	if s == nil {
		return 0
	}
	return s.gid.Get()
}

// GetNativeID returns the kernel thread id of a pinned run, or 0 when the
// run is not pinned (or not started on this platform).
func (t *Thread) GetNativeID() int64 {
	s := t.snapshotState()
	if s == nil {
		return 0
	}
	return s.tid.Get()
}

// Done exposes the run's completion channel, the closest thing to the
// native handle: it is closed exactly once when the run ends, and is usable
// directly in select statements. Nil for an empty handle.
func (t *Thread) Done() <-chan struct{} {
	s := t.snapshotState()
	if s == nil {
		return nil
	}
	return s.done
}

func (t *Thread) GetName() string {
	t.lock.Lock()
	s := t.state
	name := t.name
	t.lock.Unlock()
	if s != nil {
		return s.getName()
	}
	return name
}

// SetName names the run, printf style. The name is always recorded on the
// handle; for a pinned run it is also pushed to the kernel, best effort.
// Returns false on an empty handle or when the kernel rejects the name.
func (t *Thread) SetName(format string, args ...interface{}) bool {
	name := fmt.Sprintf(format, args...)
	t.lock.Lock()
	s := t.state
	t.name = name
	t.lock.Unlock()
	if s == nil {
		return false
	}
	s.setName(name)
	if tid := s.tid.Get(); tid != 0 {
		return applyThreadName(int(tid), name)
	}
	return true
}

// SetPriority adjusts the dynamic priority of a pinned run. Returns false
// when the handle is empty, the run is not pinned, or the platform refuses.
func (t *Thread) SetPriority(level PriorityLevel) bool {
	s := t.snapshotState()
	if s == nil {
		return false
	}
	tid := s.tid.Get()
	if tid == 0 {
		return false
	}
	return setNativePriority(int(tid), level)
}

// SetAffinity restricts a pinned run to the CPUs in mask. The mask must be
// non-empty and a subset of the CPUs the process is allowed to use.
func (t *Thread) SetAffinity(mask uint64) bool {
	if mask == 0 {
		return false
	}
	s := t.snapshotState()
	if s == nil {
		return false
	}
	tid := s.tid.Get()
	if tid == 0 {
		return false
	}
	return setNativeAffinity(int(tid), mask)
}

// ActiveTimeMillis returns how long the run has been (or was) executing.
func (t *Thread) ActiveTimeMillis() int64 {
	s := t.snapshotState()
	if s == nil || s.startedAt == 0 {
		return 0
	}
	if end := s.endedAt.Get(); end != 0 {
		return end - s.startedAt
	}
	return currentTimeMillis() - s.startedAt
}

// TakeFrom transfers ownership from src to t, the move-assignment of this
// library. Any run t already owned is released first, exactly as a Detach.
// src is left empty. TakeFrom of a handle onto itself is a no-op. Moving a
// handle that another goroutine is concurrently operating on is outside
// the contract; handles are moved, not shared.
func (t *Thread) TakeFrom(src *Thread) {
	if src == nil || src == t {
		return
	}
	t.lock.Lock()
	src.lock.Lock()
	t.detachLocked()
	t.state = src.state
	t.lastExit = src.lastExit
	t.exitValid = src.exitValid
	t.suspended = src.suspended
	t.borrowed = src.borrowed
	t.name = src.name
	src.state = nil
	src.exitValid = false
	src.suspended = false
	src.borrowed = false
	src.lock.Unlock()
	t.lock.Unlock()
}

// FromCurrent returns a non-owning wrapper identifying the calling
// goroutine, for identification and self-inspection. The wrapper is never
// joinable: a thread waiting on itself through this path makes no sense, so
// Join and the other ownership operations fail on it.
func FromCurrent() *Thread {
	gid := goid.Get()
	t := &Thread{borrowed: true}
	if s, ok := liveThreads.get(gid); ok {
		t.state = s
		t.name = s.getName()
		return t
	}
	s := &runState{}
	s.gid.Set(gid)
	t.state = s
	return t
}

// Checkpoint lets the callable of a managed thread honor Suspend and
// Terminate mid-run: it parks while the thread is suspended and returns
// false once the thread has been terminated, in which case the callable
// should return. On an unmanaged goroutine it returns true immediately.
func Checkpoint() bool {
	s, ok := liveThreads.get(goid.Get())
	if !ok {
		return true
	}
	return s.awaitGate()
}

func (t *Thread) snapshotState() *runState {
	t.lock.Lock()
	s := t.state
	t.lock.Unlock()
	return s
}

func currentTimeMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
