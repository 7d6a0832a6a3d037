package concurrent

import "sync/atomic"

type AtomicInteger int32

func (i *AtomicInteger) IncrementAndGet() int32 {
	return atomic.AddInt32((*int32)(i), int32(1))
}

func (i *AtomicInteger) GetAndIncrement() int32 {
	return atomic.AddInt32((*int32)(i), int32(1)) - 1
}

func (i *AtomicInteger) DecrementAndGet() int32 {
	return atomic.AddInt32((*int32)(i), int32(-1))
}

func (i *AtomicInteger) GetAndDecrement() int32 {
	return atomic.AddInt32((*int32)(i), int32(-1)) + 1
}

func (i *AtomicInteger) Get() int32 {
	return atomic.LoadInt32((*int32)(i))
}

func (i *AtomicInteger) Set(v int32) {
	atomic.StoreInt32((*int32)(i), v)
}

type AtomicLong int64

func (l *AtomicLong) IncrementAndGet() int64 {
	return atomic.AddInt64((*int64)(l), int64(1))
}

func (l *AtomicLong) Get() int64 {
	return atomic.LoadInt64((*int64)(l))
}

func (l *AtomicLong) Set(v int64) {
	atomic.StoreInt64((*int64)(l), v)
}

type AtomicBool int32

func (b *AtomicBool) Get() bool {
	return atomic.LoadInt32((*int32)(b)) != 0
}

func (b *AtomicBool) Set(v bool) {
	if v {
		atomic.StoreInt32((*int32)(b), 1)
	} else {
		atomic.StoreInt32((*int32)(b), 0)
	}
}

// CompareAndSet sets the value to update only if it currently equals expect,
// reporting whether the swap happened.
func (b *AtomicBool) CompareAndSet(expect, update bool) bool {
	var o, n int32
	if expect {
		o = 1
	}
	if update {
		n = 1
	}
	return atomic.CompareAndSwapInt32((*int32)(b), o, n)
}
