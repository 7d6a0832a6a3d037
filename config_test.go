package thread

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultStartOptions(t *testing.T) {
	opts := NewDefaultStartOptions()
	assert.False(t, opts.Suspended)
	assert.False(t, opts.LockOSThread)
	assert.Equal(t, "", opts.Name)
	assert.Equal(t, PRIORITY_NORMAL, opts.Priority)
	assert.Equal(t, uint64(0), opts.AffinityMask)
}

func TestCPUMasks(t *testing.T) {
	assert.Equal(t, uint64(0x01), CPU(0))
	assert.Equal(t, uint64(0x80), CPU(7))
	assert.Equal(t, uint64(0), CPU(-1))
	assert.Equal(t, uint64(0), CPU(64))
	assert.Equal(t, uint64(0x05), CPUMask(0, 2))
	assert.Equal(t, uint64(0), CPUMask())
}

func TestExitCodeString(t *testing.T) {
	assert.Equal(t, "ENDED_SUCCESSFULLY", ENDED_SUCCESSFULLY.String())
	assert.Equal(t, "EXCEPTION_CAUGHT", EXCEPTION_CAUGHT.String())
	assert.Equal(t, "THREAD_TERMINATED", THREAD_TERMINATED.String())
	assert.Equal(t, "THREAD_DETACHED", THREAD_DETACHED.String())
	assert.Equal(t, "EXIT_CODE_INVALID", EXIT_CODE_INVALID.String())
	assert.Equal(t, "STILL_ACTIVE", STILL_ACTIVE.String())
	assert.Equal(t, "UNKNOWN", ExitCode(42).String())
}
