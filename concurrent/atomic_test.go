package concurrent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtomicIncrement(t *testing.T) {
	i := AtomicInteger(int32(0))
	v := i.IncrementAndGet()
	assert.Equal(t, int32(1), v)
	assert.Equal(t, int32(1), i.Get())
	v = i.GetAndIncrement()
	assert.Equal(t, int32(1), v)
	assert.Equal(t, int32(2), i.Get())
}

func TestAtomicDecrement(t *testing.T) {
	i := AtomicInteger(int32(2))
	v := i.DecrementAndGet()
	assert.Equal(t, int32(1), v)
	assert.Equal(t, int32(1), i.Get())
	v = i.GetAndDecrement()
	assert.Equal(t, int32(1), v)
	assert.Equal(t, int32(0), i.Get())
}

func TestAtomicSet(t *testing.T) {
	i := AtomicInteger(0)
	i.Set(259)
	assert.Equal(t, int32(259), i.Get())
}

func TestAtomicConcurrentIncrement(t *testing.T) {
	integer := AtomicInteger(int32(0))
	count := 100
	wait := sync.WaitGroup{}
	wait.Add(count)
	start := sync.WaitGroup{}
	start.Add(1)
	for i := 0; i < count; i++ {
		go func() {
			start.Wait()
			integer.IncrementAndGet()
			wait.Done()
		}()
	}
	start.Done()
	wait.Wait()
	assert.Equal(t, int32(count), integer.Get())
}

func TestAtomicLong(t *testing.T) {
	l := AtomicLong(0)
	assert.Equal(t, int64(1), l.IncrementAndGet())
	l.Set(41)
	assert.Equal(t, int64(42), l.IncrementAndGet())
	assert.Equal(t, int64(42), l.Get())
}

func TestAtomicLongConcurrentIncrement(t *testing.T) {
	l := AtomicLong(0)
	count := 100
	wait := sync.WaitGroup{}
	wait.Add(count)
	start := sync.WaitGroup{}
	start.Add(1)
	for i := 0; i < count; i++ {
		go func() {
			start.Wait()
			l.IncrementAndGet()
			wait.Done()
		}()
	}
	start.Done()
	wait.Wait()
	assert.Equal(t, int64(count), l.Get())
}

func TestAtomicBool(t *testing.T) {
	b := AtomicBool(0)
	assert.False(t, b.Get())
	b.Set(true)
	assert.True(t, b.Get())
	b.Set(false)
	assert.False(t, b.Get())
}

func TestAtomicBoolCompareAndSet(t *testing.T) {
	b := AtomicBool(0)
	assert.True(t, b.CompareAndSet(false, true))
	assert.True(t, b.Get())
	assert.False(t, b.CompareAndSet(false, true))
	assert.True(t, b.CompareAndSet(true, false))
	assert.False(t, b.Get())
}

func TestAtomicBoolConcurrentCompareAndSet(t *testing.T) {
	b := AtomicBool(0)
	var winners AtomicInteger
	count := 100
	wait := sync.WaitGroup{}
	wait.Add(count)
	start := sync.WaitGroup{}
	start.Add(1)
	for i := 0; i < count; i++ {
		go func() {
			start.Wait()
			if b.CompareAndSet(false, true) {
				winners.IncrementAndGet()
			}
			wait.Done()
		}()
	}
	start.Done()
	wait.Wait()
	assert.Equal(t, int32(1), winners.Get())
}
