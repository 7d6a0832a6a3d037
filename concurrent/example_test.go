package concurrent

import (
	"fmt"
	"time"
)

func ExampleWakeTable() {
	table := NewWakeTable()
	go func() {
		time.Sleep(10 * time.Millisecond)
		table.WakeUp(7)
	}()
	if table.WaitForWakeUp(7, WAIT_INFINITE) {
		fmt.Println("signaled")
	}
	// Output: signaled
}
