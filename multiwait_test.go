package thread

import (
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/assert"
)

func TestWaitForThreadsFinishedFirst(t *testing.T) {
	defer leaktest.Check(t)()
	release := make(chan struct{})
	running1 := New()
	running2 := New()
	finished := New()
	assert.True(t, running1.Start(func() { <-release }))
	assert.True(t, running2.Start(func() { <-release }))
	assert.True(t, finished.Start(func() {}))
	<-finished.Done()

	idx := WaitForThreads([]*Thread{running1, finished, running2}, 5000)
	assert.Equal(t, 1, idx)
	// the winner is not released; the caller still joins it
	assert.True(t, finished.IsJoinable())
	assert.True(t, finished.Join(WAIT_INFINITE))

	close(release)
	assert.True(t, running1.Join(WAIT_INFINITE))
	assert.True(t, running2.Join(WAIT_INFINITE))
}

func TestWaitForThreadsTimeout(t *testing.T) {
	defer leaktest.Check(t)()
	release := make(chan struct{})
	thread := New()
	assert.True(t, thread.Start(func() { <-release }))

	assert.Equal(t, -1, WaitForThreads([]*Thread{thread}, 50))
	assert.Equal(t, -1, WaitForThreads([]*Thread{thread}, 0)) // poll

	close(release)
	<-thread.Done()
	assert.Equal(t, 0, WaitForThreads([]*Thread{thread}, 0))
	assert.True(t, thread.Join(WAIT_INFINITE))
}

func TestWaitForThreadsBlocking(t *testing.T) {
	defer leaktest.Check(t)()
	thread := New()
	assert.True(t, thread.Start(func() { time.Sleep(100 * time.Millisecond) }))
	assert.Equal(t, 0, WaitForThreads([]*Thread{thread}, WAIT_INFINITE))
	assert.True(t, thread.Join(WAIT_INFINITE))
}

func TestWaitForThreadsNoJoinable(t *testing.T) {
	assert.Equal(t, -1, WaitForThreads(nil, 1000))
	assert.Equal(t, -1, WaitForThreads([]*Thread{}, 1000))
	// nil, empty and non-owning entries are all skipped
	assert.Equal(t, -1, WaitForThreads([]*Thread{nil, New(), FromCurrent()}, WAIT_INFINITE))
}

func TestWaitForThreadsSkipsReleasedHandles(t *testing.T) {
	defer leaktest.Check(t)()
	joined := New()
	assert.True(t, joined.Start(func() {}))
	assert.True(t, joined.Join(WAIT_INFINITE))

	slow := New()
	assert.True(t, slow.Start(func() { time.Sleep(100 * time.Millisecond) }))
	// joined is empty now; only slow is watched
	assert.Equal(t, 1, WaitForThreads([]*Thread{joined, slow}, 5000))
	assert.True(t, slow.Join(WAIT_INFINITE))
}
