package thread

import (
	"context"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/gocommons/go-commons-thread/concurrent"
)

// Runnable is the classic single-method task interface, for callers that
// prefer passing an object over a func.
type Runnable interface {
	Run()
}

// RunnableWithContext receives the thread's run context, which Terminate
// cancels. Long-running tasks should watch it for cooperative stop.
type RunnableWithContext interface {
	RunContext(ctx context.Context)
}

// FuncRun adapts a plain func to Runnable.
type FuncRun struct {
	F func()
}

func (r *FuncRun) Run() {
	r.F()
}

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()

// Closure is a heap snapshot of a callable plus a by-value copy of its
// arguments, type-erased so the bridge can invoke it through a single fixed
// entry point. The copy is shallow: pointer, slice, map and channel
// arguments still share their referents with the caller; use pointers on
// purpose when state is meant to be shared.
//
// A Closure is single-use. It is built once per Start and consumed by
// exactly one invocation.
type Closure struct {
	fn       reflect.Value
	args     []reflect.Value
	wantsCtx bool
	consumed concurrent.AtomicBool
}

// NewClosure binds fn to args. fn may be any func; its return values are
// discarded. If fn's first parameter is a context.Context it is not bound
// from args: the thread's run context is injected at invocation time.
// Binding is validated eagerly, so a Closure that constructs will also call.
func NewClosure(fn interface{}, args ...interface{}) (*Closure, error) {
	if fn == nil {
		return nil, NewIllegalArgumentErr("thread: callable must not be nil")
	}
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, NewIllegalArgumentErr(fmt.Sprintf("thread: callable must be a func, got %T", fn))
	}

	offset := 0
	wantsCtx := false
	if t.NumIn() > 0 && t.In(0) == contextType {
		wantsCtx = true
		offset = 1
	}
	want := t.NumIn() - offset
	if t.IsVariadic() {
		if len(args) < want-1 {
			return nil, NewIllegalArgumentErr(fmt.Sprintf(
				"thread: callable expects at least %d arguments, got %d", want-1, len(args)))
		}
	} else if len(args) != want {
		return nil, NewIllegalArgumentErr(fmt.Sprintf(
			"thread: callable expects %d arguments, got %d", want, len(args)))
	}

	bound := make([]reflect.Value, 0, len(args))
	for i, a := range args {
		pt := paramType(t, i+offset)
		if a == nil {
			switch pt.Kind() {
			case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
				reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
				bound = append(bound, reflect.Zero(pt))
			default:
				return nil, NewIllegalArgumentErr(fmt.Sprintf(
					"thread: argument %d: nil is not assignable to %s", i, pt))
			}
			continue
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(pt) {
			return nil, NewIllegalArgumentErr(fmt.Sprintf(
				"thread: argument %d: cannot use %s as %s", i, av.Type(), pt))
		}
		bound = append(bound, av)
	}
	return &Closure{fn: v, args: bound, wantsCtx: wantsCtx}, nil
}

func paramType(t reflect.Type, i int) reflect.Type {
	if t.IsVariadic() && i >= t.NumIn()-1 {
		return t.In(t.NumIn() - 1).Elem()
	}
	return t.In(i)
}

// Invoke runs the callable exactly once and reports how the run ended. A
// panic inside the callable is recovered here and surfaced as
// EXCEPTION_CAUGHT; it never propagates to the caller. A second Invoke
// fails without running anything.
func (c *Closure) Invoke(ctx context.Context) (ExitCode, error) {
	if !c.consumed.CompareAndSet(false, true) {
		return EXIT_CODE_INVALID, NewIllegalStateErr("thread: closure already invoked")
	}
	return c.call(ctx), nil
}

func (c *Closure) call(ctx context.Context) (code ExitCode) {
	defer func() {
		if r := recover(); r != nil {
			code = EXCEPTION_CAUGHT
			logrus.WithField("panic", r).Debug("thread: callable panicked")
		}
	}()
	args := c.args
	if c.wantsCtx {
		if ctx == nil {
			ctx = context.Background()
		}
		args = append([]reflect.Value{reflect.ValueOf(ctx)}, args...)
	}
	c.fn.Call(args)
	return ENDED_SUCCESSFULLY
}
