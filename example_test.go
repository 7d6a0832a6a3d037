package thread

import (
	"context"
	"fmt"
	"time"
)

func ExampleThread_Start() {
	t := New()
	t.Start(func(a, b int) {
		fmt.Println(a + b)
	}, 19, 23)
	t.Join(WAIT_INFINITE)
	fmt.Println(t.GetExitCode())
	// Output:
	// 42
	// ENDED_SUCCESSFULLY
}

func ExampleThread_Terminate() {
	t := New()
	t.Start(func(ctx context.Context) {
		<-ctx.Done()
		fmt.Println("stopping")
	})
	done := t.Done()
	t.Terminate()
	<-done
	fmt.Println(t.GetExitCode())
	// Output:
	// stopping
	// THREAD_TERMINATED
}

func ExampleWaitForThreads() {
	slow := New()
	fast := New()
	slow.Start(func() { time.Sleep(200 * time.Millisecond) })
	fast.Start(func() {})
	fmt.Println(WaitForThreads([]*Thread{slow, fast}, 5000))
	fast.Join(WAIT_INFINITE)
	slow.Join(WAIT_INFINITE)
	// Output: 1
}
