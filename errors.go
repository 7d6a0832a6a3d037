package thread

type baseErr struct {
	msg string
}

func (e *baseErr) Error() string {
	return e.msg
}

// IllegalStateErr reports an operation attempted in a state that forbids it.
type IllegalStateErr struct {
	baseErr
}

func NewIllegalStateErr(msg string) *IllegalStateErr {
	return &IllegalStateErr{baseErr{msg}}
}

// IllegalArgumentErr reports a callable or argument list that cannot be bound.
type IllegalArgumentErr struct {
	baseErr
}

func NewIllegalArgumentErr(msg string) *IllegalArgumentErr {
	return &IllegalArgumentErr{baseErr{msg}}
}
