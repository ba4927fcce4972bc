package async

import (
	"context"
	"fmt"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Settled is the outcome of one future, collected by AllSettled.
type Settled[U any] struct {
	Value U
	Err   error
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// Async executes fn in its own goroutine and returns a Future.
// A panic inside fn completes the future with an error wrapping ErrPanic
// whose message carries the panic value, so callers never lose a task.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.result = zero
				f.err = &PanicError{Value: r}
			}
		}()

		// Early exit prevents running work for an already canceled caller
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Resolved returns an already completed future.
func Resolved[U any](value U, err error) *Future[U] {
	f := &Future[U]{result: value, err: err, done: make(chan struct{})}
	close(f.done)
	return f
}

// AllSettled waits for every future and returns their outcomes in argument order,
// regardless of completion order or failures.
func AllSettled[U any](futures ...*Future[U]) []Settled[U] {
	out := make([]Settled[U], len(futures))
	for i, f := range futures {
		out[i].Value, out[i].Err = f.Await()
	}
	return out
}

// PanicError is returned by a future whose task panicked.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}

func (e *PanicError) Unwrap() error { return ErrPanic }
