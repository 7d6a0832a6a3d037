package thread

// ExitCode is the terminal state of a thread run. While a run is in flight
// the queries report STILL_ACTIVE; once it ends, the code says how.
type ExitCode int32

const (
	// ENDED_SUCCESSFULLY means the callable returned normally.
	ENDED_SUCCESSFULLY ExitCode = 0
	// EXCEPTION_CAUGHT means the callable panicked; the panic was contained
	// at the bridge and never escaped into the runtime.
	EXCEPTION_CAUGHT ExitCode = 1
	// THREAD_TERMINATED means Terminate was called on the owning handle.
	THREAD_TERMINATED ExitCode = 2
	// THREAD_DETACHED means the handle was released while the run was
	// still in flight.
	THREAD_DETACHED ExitCode = 3
	// EXIT_CODE_INVALID is reported when no exit information is available,
	// e.g. the handle was released without caching a code.
	EXIT_CODE_INVALID ExitCode = 4
	// STILL_ACTIVE is reported while the run has not reached a terminal
	// state. The value keeps the platform convention.
	STILL_ACTIVE ExitCode = 259
)

func (c ExitCode) String() string {
	switch c {
	case ENDED_SUCCESSFULLY:
		return "ENDED_SUCCESSFULLY"
	case EXCEPTION_CAUGHT:
		return "EXCEPTION_CAUGHT"
	case THREAD_TERMINATED:
		return "THREAD_TERMINATED"
	case THREAD_DETACHED:
		return "THREAD_DETACHED"
	case EXIT_CODE_INVALID:
		return "EXIT_CODE_INVALID"
	case STILL_ACTIVE:
		return "STILL_ACTIVE"
	}
	return "UNKNOWN"
}
