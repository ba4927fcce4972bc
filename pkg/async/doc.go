// Package async provides small generic helpers for running computations in
// goroutines and joining their results.
//
// Async starts a function in its own goroutine and returns a *Future, and
// Resolved wraps a value that is already known. Callers wait with Await.
// AllSettled joins many futures and returns every outcome in argument order,
// which lets callers merge results deterministically no matter which task
// finished first. The async validator relies on this to keep its error list in
// schema order.
//
// # Usage
//
//	f1 := async.Async(ctx, "a@b.co", lookupEmail)
//	f2 := async.Async(ctx, "acme", lookupSlug)
//	for i, s := range async.AllSettled(f1, f2) {
//	    if s.Err != nil {
//	        log.Printf("task %d: %v", i, s.Err)
//	    }
//	}
//
// # Error Handling
//
// A task's own error is returned unchanged. A panic inside a task is recovered
// and surfaces as *PanicError (errors.Is(err, ErrPanic) holds). A context that
// is already canceled when the goroutine starts completes the future with the
// context error without calling the task.
//
// There is no cancellation primitive beyond the context handed to the task:
// once started, a task runs until it returns.
package async
